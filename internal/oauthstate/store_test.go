package oauthstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreConsumeOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "state-1", "user-1", time.Minute))

	userID, err := store.Consume(ctx, "state-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = store.Consume(ctx, "state-1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "state-1", "user-1", time.Minute))
	now = now.Add(2 * time.Minute)

	_, err := store.Consume(ctx, "state-1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStoreUnknownState(t *testing.T) {
	_, err := NewMemoryStore().Consume(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestNewStateIsRandom(t *testing.T) {
	a, err := NewState()
	require.NoError(t, err)
	b, err := NewState()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestStateKey(t *testing.T) {
	assert.Equal(t, "oauth_state:abc", stateKey("abc"))
}
