//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/phrazzld/task-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, tx *sql.Tx, username, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, email, "password")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	user.Password = ""

	require.NoError(t, postgres.NewPostgresUserStore(tx, nil).Create(context.Background(), user))
	return user
}

func TestPostgresUserStore_CreateAndGet(t *testing.T) {
	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		userStore := postgres.NewPostgresUserStore(tx, nil)

		user := createTestUser(t, tx, "alice", "alice@example.com")
		assert.Positive(t, user.ID)

		byID, err := userStore.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
		assert.Equal(t, user.HashedPassword, byID.HashedPassword)
		assert.Empty(t, byID.Password)

		byName, err := userStore.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		byEmail, err := userStore.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})
}

func TestPostgresUserStore_NotFound(t *testing.T) {
	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		userStore := postgres.NewPostgresUserStore(tx, nil)

		_, err := userStore.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		_, err = userStore.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		_, err = userStore.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_UniqueConstraints(t *testing.T) {
	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		userStore := postgres.NewPostgresUserStore(tx, nil)
		createTestUser(t, tx, "alice", "alice@example.com")

		// Each violation aborts the transaction, so use savepoints.
		_, err := tx.ExecContext(ctx, "SAVEPOINT dup_username")
		require.NoError(t, err)
		dupName := &domain.User{Username: "alice", Email: "other@example.com", HashedPassword: "hash"}
		err = userStore.Create(ctx, dupName)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		_, err = tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT dup_username")
		require.NoError(t, err)

		dupEmail := &domain.User{Username: "bob", Email: "alice@example.com", HashedPassword: "hash"}
		err = userStore.Create(ctx, dupEmail)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}
