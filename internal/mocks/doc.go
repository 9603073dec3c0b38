// Package mocks provides shared test doubles.
//
// MockUserStore and MockTaskStore are in-memory implementations of the
// store interfaces that behave like the PostgreSQL stores (sequential ids,
// uniqueness checks, not-found errors) and can be overridden per method
// through function fields. MockJWTService and the password mocks follow the
// same function-field pattern.
//
//	users := mocks.NewMockUserStore()
//	users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
//		return nil, errors.New("connection refused")
//	}
package mocks
