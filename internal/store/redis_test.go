package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBlobStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, err := NewRedisBlobStore(ctx, RedisOptions{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, LessonsKey)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, LessonsKey, `[{"id":"1"}]`))

	got, err := s.Get(ctx, LessonsKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)

	raw, err := mr.Get("test:" + LessonsKey)
	require.NoError(t, err)
	assert.Equal(t, got, raw, "value should live under the prefixed key")
}

func TestRedisBlobStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisBlobStore(context.Background(), RedisOptions{Addr: addr})
	assert.Error(t, err)
}

func TestRedisBlobStore_MissingAddr(t *testing.T) {
	_, err := NewRedisBlobStore(context.Background(), RedisOptions{})
	assert.Error(t, err)
}
