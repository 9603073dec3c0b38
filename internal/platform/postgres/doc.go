// Package postgres provides the PostgreSQL implementations of the store
// interfaces for users and tasks, the embedded goose migrations that create
// their schema, and the mapping from PostgreSQL error codes to store errors.
//
// Stores run on database/sql with the pgx stdlib driver and accept a
// store.DBTX, so the same code serves a connection pool or a transaction.
package postgres
