// Package middleware contains the HTTP middleware specific to this API:
// request tracing and bearer token authentication. Generic middleware
// (request ids, panic recovery, access logs) comes from chi.
package middleware
