// Package api contains the HTTP handlers, request/response models, and
// error mapping for the Nevo REST API. Handlers depend on narrow service
// interfaces so tests can substitute fakes.
package api
