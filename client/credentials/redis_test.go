package credentials

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := ConnectRedis(context.Background(), RedisConfig{Addr: mr.Addr(), PingAttempts: 1})
	require.NoError(t, err)
	s := NewRedisStore(client, "test:", ttl)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	s, mr := setupRedisStore(t, 0)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, AdminTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, AdminTokenKey, "a1"))
	assert.True(t, mr.Exists("test:adminToken"))

	v, ok, err := s.Get(ctx, AdminTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a1", v)

	require.NoError(t, s.Delete(ctx, AdminTokenKey, UserTokenKey))
	assert.False(t, mr.Exists("test:adminToken"))
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := setupRedisStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, UserTokenKey, "u1"))
	assert.Equal(t, time.Minute, mr.TTL("test:kissanbandi_token"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := s.Get(ctx, UserTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_KeyringPriority(t *testing.T) {
	s, _ := setupRedisStore(t, 0)
	ctx := context.Background()
	session := NewMemoryStore()
	k := NewKeyring(s, session)

	require.NoError(t, k.Save(ctx, User, Durable, "durable-user"))
	require.NoError(t, k.Save(ctx, User, Session, "session-user"))
	tok, err := k.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "durable-user", tok)

	require.NoError(t, k.Save(ctx, Admin, Session, "session-admin"))
	tok, err = k.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-admin", tok)
}

func TestRedisStore_ServerDown(t *testing.T) {
	s, mr := setupRedisStore(t, 0)
	mr.Close()
	_, _, err := s.Get(context.Background(), AdminTokenKey)
	assert.Error(t, err)
}

func TestConnectRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := ConnectRedis(ctx, RedisConfig{Addr: "127.0.0.1:1", PingAttempts: 2})
	assert.Error(t, err)
}
