package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2)

	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)
}

func TestFallbackTraceID(t *testing.T) {
	assert.Len(t, generateFallbackTraceID(), TraceIDLength*2)
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	userID, ok := UserIDFromContext(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)

	_, ok = UserIDFromContext(WithUserID(context.Background(), 0))
	assert.False(t, ok, "zero is never a valid user id")

	wrongType := context.WithValue(context.Background(), UserIDContextKey, "42")
	_, ok = UserIDFromContext(wrongType)
	assert.False(t, ok)
}
