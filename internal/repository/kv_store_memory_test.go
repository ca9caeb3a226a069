package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVStoreSetGet(t *testing.T) {
	kv := NewMemoryKVStore()
	ctx := context.Background()

	val, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), time.Hour))
	val, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	ok, err := kv.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryKVStoreExpiry(t *testing.T) {
	kv := NewMemoryKVStore()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	val, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)

	ok, err := kv.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryKVStoreExtendTTL(t *testing.T) {
	store := &memoryKVStore{entries: make(map[string]memEntry)}
	ctx := context.Background()

	// Remaining lifetime below the threshold: bumped to target.
	require.NoError(t, store.Set(ctx, "low", []byte("v"), time.Minute))
	require.NoError(t, store.ExtendTTL(ctx, "low", time.Hour, 3*time.Hour))
	remaining := time.Until(store.entries["low"].expiresAt)
	assert.Greater(t, remaining, 2*time.Hour)

	// Remaining lifetime above the threshold: untouched.
	require.NoError(t, store.Set(ctx, "high", []byte("v"), 5*time.Hour))
	before := store.entries["high"].expiresAt
	require.NoError(t, store.ExtendTTL(ctx, "high", time.Hour, 10*time.Hour))
	assert.Equal(t, before, store.entries["high"].expiresAt)

	// No TTL at all: untouched.
	require.NoError(t, store.Set(ctx, "pinned", []byte("v"), 0))
	require.NoError(t, store.ExtendTTL(ctx, "pinned", time.Hour, 3*time.Hour))
	assert.False(t, store.entries["pinned"].hasTTL)

	// Missing key: no error, no entry created.
	require.NoError(t, store.ExtendTTL(ctx, "gone", time.Hour, 3*time.Hour))
	_, ok := store.entries["gone"]
	assert.False(t, ok)
}
