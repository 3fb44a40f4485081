package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgcs/experience-api/internal/config"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionStore(rdb, "", time.Hour), mr
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	id, err := store.Create(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, time.Hour, mr.TTL("experience:session:"+id))

	email, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	id, err := store.Create(ctx, "admin@example.com")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_UnknownID(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_KeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := NewSessionStore(rdb, "staging:", time.Minute)

	id, err := store.Create(context.Background(), "admin@example.com")
	require.NoError(t, err)
	got, err := mr.Get("staging:session:" + id)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got)
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions(config.RedisCfg{Addr: "redis:6379", DB: 2, PoolSize: 4}, "experience-api")
	assert.Equal(t, "redis:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, defaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, "experience-api-sessions", opts.ClientName)
	assert.Nil(t, opts.TLSConfig)

	opts = clientOptions(config.RedisCfg{EnableTLS: true, DialTimeoutSec: 1}, "experience-api")
	assert.Equal(t, time.Second, opts.DialTimeout)
	require.NotNil(t, opts.TLSConfig)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{Redis: config.RedisCfg{Addr: mr.Addr(), DialTimeoutSec: 1}}

	rdb, err := Dial(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	mr.Close()
	_, err = Dial(context.Background(), cfg)
	assert.ErrorContains(t, err, "ping redis")
}
