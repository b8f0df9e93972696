// Package progress tracks per-level results and derives which levels are
// unlocked.
package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/store"
)

// Store holds one LevelProgress per attempted level. Persistence is best
// effort: read and write failures are logged and the store keeps working
// from memory.
type Store struct {
	kv  store.KV
	cat *catalog.Catalog
	log *zap.Logger
	now func() time.Time

	mu       sync.RWMutex
	records  map[int]LevelProgress
	order    []int // first-write order, preserved in the persisted array
	unlocked map[int]bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed persistence errors.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source for completedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store. kv may be nil for memory-only use.
func NewStore(kv store.KV, cat *catalog.Catalog, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		cat:     cat,
		log:     zap.NewNop(),
		now:     time.Now,
		records: make(map[int]LevelProgress),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unlocked = DeriveUnlocks(cat, s.records)
	return s
}

// Load replaces the in-memory records with the persisted ones. Missing or
// corrupt data yields an empty store.
func (s *Store) Load(ctx context.Context) {
	records := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[int]LevelProgress, len(records))
	s.order = s.order[:0]
	for _, r := range records {
		if !s.cat.Has(r.LevelID) {
			s.log.Warn("dropping progress for unknown level", zap.Int("level_id", r.LevelID))
			continue
		}
		if _, seen := s.records[r.LevelID]; !seen {
			s.order = append(s.order, r.LevelID)
		}
		s.records[r.LevelID] = r
	}
	s.unlocked = DeriveUnlocks(s.cat, s.records)
}

func (s *Store) read(ctx context.Context) []LevelProgress {
	if s.kv == nil {
		return nil
	}
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.log.Warn("read progress failed", zap.Error(err))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	records, err := Unmarshal([]byte(raw))
	if err != nil {
		s.log.Warn("discarding corrupt progress", zap.Error(err))
		return nil
	}
	return records
}

// RecordCompletion stores the result of a finished session for levelID,
// replacing any earlier record, then persists and recomputes unlocks.
// Unknown level ids are ignored.
func (s *Store) RecordCompletion(ctx context.Context, levelID, score, attempts int) {
	level, err := s.cat.Get(levelID)
	if err != nil {
		s.log.Warn("ignoring completion for unknown level", zap.Int("level_id", levelID))
		return
	}

	// Same precision and zone the codec persists, so a reload reads back
	// an equal record.
	at := s.now().UTC().Truncate(time.Millisecond)
	rec := LevelProgress{
		LevelID:     levelID,
		Completed:   level.Passes(score),
		Score:       score,
		Attempts:    attempts,
		CompletedAt: &at,
	}

	s.mu.Lock()
	if _, seen := s.records[levelID]; !seen {
		s.order = append(s.order, levelID)
	}
	s.records[levelID] = rec
	s.unlocked = DeriveUnlocks(s.cat, s.records)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.write(ctx, snapshot)
}

// Reset deletes every record and the persisted key.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.records = make(map[int]LevelProgress)
	s.order = nil
	s.unlocked = DeriveUnlocks(s.cat, s.records)
	s.mu.Unlock()

	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(ctx, Key); err != nil {
		s.log.Warn("delete progress failed", zap.Error(err))
	}
}

func (s *Store) write(ctx context.Context, records []LevelProgress) {
	if s.kv == nil {
		return
	}
	data, err := Marshal(records)
	if err != nil {
		s.log.Warn("encode progress failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		s.log.Warn("persist progress failed", zap.Error(err))
	}
}

func (s *Store) snapshotLocked() []LevelProgress {
	out := make([]LevelProgress, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// UnlockedLevels returns the ids of unlocked levels in catalog order.
func (s *Store) UnlockedLevels() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int
	for _, l := range s.cat.All() {
		if s.unlocked[l.ID] {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// IsUnlocked reports whether levelID may be started.
func (s *Store) IsUnlocked(levelID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked[levelID]
}

// ProgressFor returns the record for levelID; ok is false if it was never attempted.
func (s *Store) ProgressFor(levelID int) (LevelProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[levelID]
	return r, ok
}

// All returns every record ordered by level id.
func (s *Store) All() []LevelProgress {
	s.mu.RLock()
	out := s.snapshotLocked()
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].LevelID < out[j].LevelID })
	return out
}

// CompletedCount returns how many levels have a completed record.
func (s *Store) CompletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.records {
		if r.Completed {
			n++
		}
	}
	return n
}

// OverallPercent returns completed levels as a percentage of the catalog.
func (s *Store) OverallPercent() float64 {
	total := s.cat.Len()
	if total == 0 {
		return 0
	}
	return float64(s.CompletedCount()) / float64(total) * 100
}
