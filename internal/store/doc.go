// Package store defines the persistence contracts for users and tasks,
// together with the sentinel errors every implementation returns.
//
// Implementations live elsewhere (internal/platform/postgres for the
// production database, internal/mocks for in-memory fakes used in tests).
// Callers match errors with errors.Is against the values in errors.go and
// never inspect driver-specific errors directly.
package store
