package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	traceID := GetTraceID(traced)
	assert.Len(t, traceID, 32)

	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	// The parent context is untouched.
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceIDWithWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestWithTraceID(t *testing.T) {
	ctx := WithTraceID(context.Background(), "fixed")
	assert.Equal(t, "fixed", GetTraceID(ctx))
}

func TestTraceIDsAreUnique(t *testing.T) {
	const iterations = 500
	seen := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		assert.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}

func TestFallbackTraceID(t *testing.T) {
	a, b := fallbackTraceID(), fallbackTraceID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
