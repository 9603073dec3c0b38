//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests open one connection pool in TestMain, migrate the schema once with
// SetupTestDatabaseSchema, and wrap every test body in WithTx. The
// transaction is always rolled back, so tests never see each other's rows.
//
//	func TestSomething(t *testing.T) {
//		testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
//			userStore := postgres.NewPostgresUserStore(tx, nil)
//			// ...
//		})
//	}
//
// The database URL is read from DATABASE_URL, falling back to
// TASKMGR_DATABASE_URL.
package testdb
