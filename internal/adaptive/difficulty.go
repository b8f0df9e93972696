// Package adaptive implements the standalone difficulty drill: difficulty
// rises after a streak of correct answers and falls after any miss.
package adaptive

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/store"
)

// Key is the persisted key holding the current difficulty.
const Key = "difficulty"

const (
	MinDifficulty = 1
	MaxDifficulty = 3

	// StreakToRaise is the number of consecutive correct answers that raises difficulty.
	StreakToRaise = 2
)

// Tracker holds the current difficulty and the running correct streak.
type Tracker struct {
	kv  store.KV
	log *zap.Logger

	level  int
	streak int
}

// NewTracker returns a tracker at MinDifficulty. kv may be nil.
func NewTracker(kv store.KV, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{kv: kv, log: log, level: MinDifficulty}
}

// Load reads the persisted difficulty. Missing, corrupt or out-of-range
// values leave the tracker at MinDifficulty.
func (t *Tracker) Load(ctx context.Context) {
	t.level, t.streak = MinDifficulty, 0
	if t.kv == nil {
		return
	}
	raw, ok, err := t.kv.Get(ctx, Key)
	if err != nil {
		t.log.Warn("read difficulty failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < MinDifficulty || n > MaxDifficulty {
		t.log.Warn("discarding invalid difficulty", zap.String("value", raw))
		return
	}
	t.level = n
}

// Level returns the current difficulty.
func (t *Tracker) Level() int { return t.level }

// Streak returns the current run of correct answers.
func (t *Tracker) Streak() int { return t.streak }

// Record applies one answer and persists the resulting difficulty. It
// returns the new difficulty.
func (t *Tracker) Record(ctx context.Context, correct bool) int {
	t.level, t.streak = Next(t.level, t.streak, correct)
	t.persist(ctx)
	return t.level
}

// Reset returns to MinDifficulty and removes the persisted value.
func (t *Tracker) Reset(ctx context.Context) {
	t.level, t.streak = MinDifficulty, 0
	if t.kv == nil {
		return
	}
	if err := t.kv.Delete(ctx, Key); err != nil {
		t.log.Warn("delete difficulty failed", zap.Error(err))
	}
}

func (t *Tracker) persist(ctx context.Context) {
	if t.kv == nil {
		return
	}
	if err := t.kv.Set(ctx, Key, strconv.Itoa(t.level)); err != nil {
		t.log.Warn("persist difficulty failed", zap.Error(err))
	}
}

// Next is the pure difficulty transition.
func Next(level, streak int, correct bool) (newLevel, newStreak int) {
	if !correct {
		return max(MinDifficulty, level-1), 0
	}
	streak++
	if streak >= StreakToRaise {
		return min(MaxDifficulty, level+1), 0
	}
	return level, streak
}
