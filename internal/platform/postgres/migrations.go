package postgres

import "embed"

// MigrationsDir is the directory inside Migrations holding the goose SQL files.
const MigrationsDir = "migrations"

// MigrationsTable is the goose version table name.
const MigrationsTable = "schema_migrations"

// Migrations holds the SQL migrations that create the users and tasks tables.
//
//go:embed migrations/*.sql
var Migrations embed.FS
