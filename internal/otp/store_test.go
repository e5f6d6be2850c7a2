package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	session := &Session{
		Phone:     "9876543210",
		Code:      "1234",
		CreatedAt: now,
		ExpiresAt: now.Add(10 * time.Minute),
	}
	require.NoError(t, store.Set(ctx, session))

	got, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1234", got.Code)
}

func TestMemoryStoreMissingPhone(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "9000000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	session := &Session{
		Phone:     "9876543210",
		Code:      "1234",
		CreatedAt: time.Now().Add(-11 * time.Minute),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.Set(ctx, session))

	got, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	assert.Nil(t, got, "expired sessions read as absent")
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Set(ctx, &Session{Phone: "9876543210", Code: "1111", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Set(ctx, &Session{Phone: "9876543210", Code: "2222", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))

	got, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2222", got.Code)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Set(ctx, &Session{Phone: "9876543210", Code: "1234", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Delete(ctx, "9876543210"))

	got, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	assert.Nil(t, got)
}
