package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uklc/lessons/internal/model"
)

func TestRecordStore_LoadEmpty(t *testing.T) {
	r := NewRecordStore(NewMemoryBlobStore())

	lessons, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, lessons)
	assert.Empty(t, lessons)

	assert.Zero(t, r.Size())
}

func TestRecordStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	r := NewRecordStore(newTestStore(t))

	created := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	in := []model.Lesson{
		{ID: "a", Title: "One", Week: "Week A", Programme: "Action", Level: "Level 1", Focus: "Culture Focus", Tags: []string{"A1"}, CreatedAt: created, Revision: 1},
		{ID: "b", Title: "Two", Week: "Week B", Programme: "Purpose", Level: "Level 3", Focus: "Language Focus", Tags: []string{}, CreatedAt: created, Revision: 2},
	}
	require.NoError(t, r.Save(ctx, in))

	out, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	assert.Positive(t, r.Size())

	reopened := NewRecordStore(r.blobs)
	_, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, r.Size(), reopened.Size())
}

func TestRecordStore_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	require.NoError(t, blobs.Set(ctx, LessonsKey, "{not json"))

	_, err := NewRecordStore(blobs).Load(ctx)
	assert.Error(t, err)
}

func TestRecordStore_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	require.NoError(t, NewRecordStore(blobs).Save(ctx, nil))

	raw, err := blobs.Get(ctx, LessonsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBlobStore{}, s)

	s, err = Open(ctx, Options{SQLitePath: t.TempDir() + "/lessons.db"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBlobStore{}, s)
	s.Close()

	_, err = Open(ctx, Options{Backend: BackendPostgres})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)
}
