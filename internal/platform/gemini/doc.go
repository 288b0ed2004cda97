// Package gemini implements the generation interfaces on top of the
// Google Gemini completion service. Prompts are rendered from
// text/template, responses are cleaned of markdown fences and parsed as
// strict JSON, and every failure path degrades to a fixed fallback value
// instead of an error.
package gemini
