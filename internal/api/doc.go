// Package api implements the HTTP handlers for the task manager API.
//
// Handlers decode and validate requests, call into the service layer and
// translate service errors into status codes with MapErrorToStatusCode and
// GetSafeErrorMessage. Routing and middleware assembly live in cmd/server.
package api
