// Package service contains the application use cases: registering users,
// issuing login tokens, and the owner-scoped task operations.
//
// Services depend on the narrow repository interfaces declared here, never
// on a concrete store. Expected failures are reported as sentinel errors
// (ErrNotOwned, ErrInvalidCredentials, and the store and domain errors they
// pass through) so the API layer can map them to status codes with errors.Is.
package service
