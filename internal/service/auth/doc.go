// Package auth issues and validates HS256 bearer tokens and hashes
// passwords with bcrypt.
package auth
