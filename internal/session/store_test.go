package session

import (
	"context"
	"testing"
	"time"

	"parkassist/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, 30*time.Minute), mr
}

func sampleContext(userID string) *models.ConversationContext {
	cc := models.NewConversationContext(userID)
	cc.Location = "oxford street"
	cc.TimePhrase = "morning"
	cc.DurationHours = 3
	cc.Preferences.EVCharging = true
	return cc
}

// ==========================
// RedisStore Tests
// ==========================

func TestRedisStore_PutGet_RoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "oxford street", got.Location)
	assert.Equal(t, 3, got.DurationHours)
	assert.True(t, got.Preferences.EVCharging)
}

func TestRedisStore_Get_Missing(t *testing.T) {
	store, _ := setupRedisStore(t)

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTL_Expires(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))

	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Evict(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))
	require.NoError(t, store.Evict(ctx, "user-1"))

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Evicting again is not an error.
	assert.NoError(t, store.Evict(ctx, "user-1"))
}

func TestRedisStore_CorruptValue_TreatedAsMiss(t *testing.T) {
	store, mr := setupRedisStore(t)

	mr.Set(keyPrefix+"user-1", "{not json")

	_, err := store.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Transport failures are not misses: they must surface so GetOrNew's
// fresh-context behavior is a deliberate choice, not silent data loss.
// miniredis cannot simulate these, hence the mock.
func TestRedisStore_TransportErrors_Propagate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, 30*time.Minute)
	ctx := context.Background()

	mock.ExpectGet(keyPrefix + "user-1").SetErr(context.DeadlineExceeded)
	_, err := store.Get(ctx, "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	mock.Regexp().ExpectSet(keyPrefix+"user-1", `.*`, 30*time.Minute).SetErr(context.DeadlineExceeded)
	err = store.Put(ctx, "user-1", sampleContext("user-1"))
	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// MemoryStore Tests
// ==========================

func TestMemoryStore_PutGet_RoundTrip(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "oxford street", got.Location)
}

func TestMemoryStore_Get_ReturnsCopy(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))

	first, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	first.Location = "mutated"

	second, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "oxford street", second.Location)
}

func TestMemoryStore_TTL_Expires(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	defer store.Close()
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))

	store.now = func() time.Time { return base.Add(11 * time.Minute) }

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Evict(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))
	require.NoError(t, store.Evict(ctx, "user-1"))

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ==========================
// GetOrNew Tests
// ==========================

func TestGetOrNew_MissYieldsFresh(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	defer store.Close()

	cc := GetOrNew(context.Background(), store, "fresh-user")
	require.NotNil(t, cc)
	assert.Equal(t, "fresh-user", cc.UserID)
	assert.Empty(t, cc.Location)
}

func TestGetOrNew_HitReturnsStored(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", sampleContext("user-1")))

	cc := GetOrNew(ctx, store, "user-1")
	assert.Equal(t, "oxford street", cc.Location)
}
