// Package service implements the application's use cases on top of the
// store and generation interfaces: account registration and login, lesson
// creation with per-profile variant generation, assessment submission,
// and the dashboard read models.
package service
