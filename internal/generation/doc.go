// Package generation defines the interfaces between the application core
// and external AI/LLM completion services. It abstracts the details of
// the Gemini integration so services can request lesson slide decks and
// parent guidance without coupling to a specific provider.
package generation
