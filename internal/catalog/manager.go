package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/uklc/lessons/internal/filter"
	"github.com/uklc/lessons/internal/logger"
	"github.com/uklc/lessons/internal/model"
)

// ExportFilename is the suggested name for an exported backup.
const ExportFilename = "uklc-lessons-backup.json"

// Records loads and saves the whole lesson collection.
type Records interface {
	Load(ctx context.Context) ([]model.Lesson, error)
	Save(ctx context.Context, lessons []model.Lesson) error
}

// ConfirmFunc is asked before a lesson is deleted. Returning false cancels
// the deletion.
type ConfirmFunc func(l model.Lesson) bool

// Manager owns the in-memory state and applies lifecycle operations to it.
// The state only ever reflects the last successfully persisted collection.
type Manager struct {
	mu      sync.Mutex
	records Records
	log     *logger.Logger
	now     func() time.Time
	newID   func(time.Time) string
	state   State
	loadErr error
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDs overrides the id generator.
func WithIDs(newID func(time.Time) string) Option {
	return func(m *Manager) { m.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(m *Manager) { m.log = log.With("service", "catalog") }
}

// Open loads the collection from records. A load failure is logged and the
// manager starts with an empty collection for reads; mutations retry the
// load and fail with ErrPersistence until it succeeds, so an empty view is
// never written over the stored collection.
func Open(ctx context.Context, records Records, opts ...Option) *Manager {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	m := &Manager{
		records: records,
		log:     logger.Nop(),
		now:     func() time.Time { return time.Now().UTC() },
		newID: func(t time.Time) string {
			return ulid.MustNew(ulid.Timestamp(t), entropy).String()
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	lessons, err := records.Load(ctx)
	if err != nil {
		m.log.Warn("no existing lessons loaded, starting empty", "error", err)
		m.loadErr = err
		lessons = nil
	}
	m.state = Reduce(State{}, replaceLessons{lessons: lessons})
	m.log.Debug("lessons loaded", "count", len(m.state.Lessons))
	return m
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Reduce(m.state, replaceLessons{lessons: m.state.Lessons})
}

// Dispatch applies a view action (search text, filters, tags) and returns
// the resulting state.
func (m *Manager) Dispatch(a Action) State {
	if _, ok := a.(replaceLessons); ok {
		return m.State()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, a)
	return Reduce(m.state, replaceLessons{lessons: m.state.Lessons})
}

// Lessons returns a copy of the whole collection.
func (m *Manager) Lessons() []model.Lesson {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneLessons(m.state.Lessons)
}

// Filter returns the lessons matching c without touching the view state.
func (m *Manager) Filter(c filter.Criteria) []model.Lesson {
	return filter.Apply(m.Lessons(), c)
}

// Get returns the lesson with the given id.
func (m *Manager) Get(id string) (*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.state.Lessons, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	l := m.state.Lessons[i].Clone()
	return &l, nil
}

// Create validates the draft, assigns a fresh id and createdAt, appends it
// and persists the collection.
func (m *Manager) Create(ctx context.Context, d model.Draft) (*model.Lesson, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	now := m.now()
	l := d.Lesson()
	l.ID = m.uniqueID(now)
	l.CreatedAt = now
	l.Revision = 1
	if l.Tags == nil {
		l.Tags = []string{}
	}

	next := append(cloneLessons(m.state.Lessons), l)
	if err := m.commit(ctx, next); err != nil {
		return nil, err
	}
	m.log.Info("lesson created", "id", l.ID, "title", l.Title)
	out := l.Clone()
	return &out, nil
}

// Update replaces the lesson with the same id. createdAt is preserved and
// the revision is bumped. A non-zero Revision must match the stored one.
func (m *Manager) Update(ctx context.Context, l model.Lesson) (*model.Lesson, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	i := indexOf(m.state.Lessons, l.ID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, l.ID)
	}
	cur := m.state.Lessons[i]
	if l.Revision != 0 && l.Revision != cur.Revision {
		return nil, fmt.Errorf("%w: %s is at revision %d, update was based on %d",
			model.ErrConflict, l.ID, cur.Revision, l.Revision)
	}

	updated := l.Clone()
	updated.CreatedAt = cur.CreatedAt
	updated.Revision = cur.Revision + 1
	if updated.Tags == nil {
		updated.Tags = []string{}
	}

	next := cloneLessons(m.state.Lessons)
	next[i] = updated
	if err := m.commit(ctx, next); err != nil {
		return nil, err
	}
	m.log.Info("lesson updated", "id", l.ID, "revision", updated.Revision)
	out := updated.Clone()
	return &out, nil
}

// Delete removes the lesson with the given id once confirm approves it.
func (m *Manager) Delete(ctx context.Context, id string, confirm ConfirmFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}

	i := indexOf(m.state.Lessons, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	if confirm == nil || !confirm(m.state.Lessons[i].Clone()) {
		return model.ErrNotConfirmed
	}

	next := slices.Delete(cloneLessons(m.state.Lessons), i, i+1)
	if err := m.commit(ctx, next); err != nil {
		return err
	}
	m.log.Info("lesson deleted", "id", id)
	return nil
}

// Export writes the whole collection as indented JSON.
func (m *Manager) Export(w io.Writer) error {
	lessons := m.Lessons()
	b, err := json.MarshalIndent(lessons, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lessons: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Import parses a JSON array of lessons and replaces the whole collection
// with it. Every record must pass validation and carry a unique id; any
// failure rejects the import and leaves the collection untouched.
func (m *Manager) Import(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrImportParse, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return 0, fmt.Errorf("%w: expected a JSON array of lessons", model.ErrImportParse)
	}

	var lessons []model.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrImportParse, err)
	}

	seen := make(map[string]bool, len(lessons))
	for i := range lessons {
		l := &lessons[i]
		if l.ID == "" {
			return 0, fmt.Errorf("%w: record %d has no id", model.ErrValidation, i)
		}
		if seen[l.ID] {
			return 0, fmt.Errorf("%w: duplicate id %s", model.ErrValidation, l.ID)
		}
		seen[l.ID] = true
		if err := l.Validate(); err != nil {
			return 0, fmt.Errorf("record %s: %w", l.ID, err)
		}
		if l.Revision < 1 {
			l.Revision = 1
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	if err := m.commit(ctx, lessons); err != nil {
		return 0, err
	}
	m.log.Info("lessons imported", "count", len(lessons))
	return len(lessons), nil
}

// ensureLoaded retries a failed initial load. Callers hold m.mu.
func (m *Manager) ensureLoaded(ctx context.Context) error {
	if m.loadErr == nil {
		return nil
	}
	lessons, err := m.records.Load(ctx)
	if err != nil {
		m.loadErr = err
		return fmt.Errorf("%w: collection not loaded: %w", model.ErrPersistence, err)
	}
	m.loadErr = nil
	m.state = Reduce(m.state, replaceLessons{lessons: lessons})
	m.log.Info("lessons loaded after retry", "count", len(m.state.Lessons))
	return nil
}

// commit persists next and, only once the write succeeded, makes it the
// current collection. Callers hold m.mu.
func (m *Manager) commit(ctx context.Context, next []model.Lesson) error {
	if err := m.records.Save(ctx, next); err != nil {
		m.log.Error("failed to save lessons", "error", err)
		return fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	m.state = Reduce(m.state, replaceLessons{lessons: next})
	return nil
}

// uniqueID draws ids until one is unused. Callers hold m.mu.
func (m *Manager) uniqueID(now time.Time) string {
	for {
		id := m.newID(now)
		if indexOf(m.state.Lessons, id) < 0 {
			return id
		}
	}
}

func indexOf(lessons []model.Lesson, id string) int {
	return slices.IndexFunc(lessons, func(l model.Lesson) bool { return l.ID == id })
}
