// Package domain contains the core business entities of the Nevo API:
// users, learning profiles, lessons with per-profile slide variants, and
// assessments. Entities validate themselves and carry no persistence or
// transport concerns.
package domain
