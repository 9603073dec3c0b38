// Package client is the HTTP client used by the task command-line tool.
//
// Client wraps the task manager API, TokenStore keeps the bearer token on
// disk between invocations, and Describe turns client errors into the
// one-line messages printed to the user.
package client
