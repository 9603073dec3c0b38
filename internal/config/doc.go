// Package config handles configuration loading, parsing, and validation
// from various sources (.env file, config.yaml, environment variables). The
// resulting Config is built once at startup and passed explicitly to the
// components that need it; nothing in the application mutates it afterwards.
package config
