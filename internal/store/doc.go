// Package store defines the persistence interfaces for the Nevo API and
// the errors their implementations return.
package store
