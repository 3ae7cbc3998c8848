package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/uklc/lessons/internal/model"
)

// LessonsKey is the single key holding the whole lesson collection.
const LessonsKey = "uklc-lessons"

// RecordStore persists the lesson collection as one JSON blob.
type RecordStore struct {
	blobs BlobStore
	key   string
	size  atomic.Int64
}

// NewRecordStore wraps blobs, addressing the collection by LessonsKey.
func NewRecordStore(blobs BlobStore) *RecordStore {
	return &RecordStore{blobs: blobs, key: LessonsKey}
}

// Load reads the collection. A missing key yields an empty collection.
func (r *RecordStore) Load(ctx context.Context) ([]model.Lesson, error) {
	raw, err := r.blobs.Get(ctx, r.key)
	if errors.Is(err, ErrKeyNotFound) {
		r.size.Store(0)
		return []model.Lesson{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lessons []model.Lesson
	if err := json.Unmarshal([]byte(raw), &lessons); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	if lessons == nil {
		lessons = []model.Lesson{}
	}
	r.size.Store(int64(len(raw)))
	return lessons, nil
}

// Save rewrites the entire collection.
func (r *RecordStore) Save(ctx context.Context, lessons []model.Lesson) error {
	if lessons == nil {
		lessons = []model.Lesson{}
	}
	b, err := json.Marshal(lessons)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.blobs.Set(ctx, r.key, string(b)); err != nil {
		return err
	}
	r.size.Store(int64(len(b)))
	return nil
}

// Size returns the payload size in bytes as of the last successful Load or
// Save.
func (r *RecordStore) Size() int {
	return int(r.size.Load())
}

// Close closes the underlying blob store.
func (r *RecordStore) Close() error {
	return r.blobs.Close()
}
