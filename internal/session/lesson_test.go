package session

import (
	"context"
	"testing"

	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/catalog/catalogtest"
	"github.com/abhisek/adaptly/internal/progress"
	"github.com/abhisek/adaptly/internal/store"
)

// Every catalogtest question has "right" at 0 and "wrong" at 1.
const (
	right = 0
	wrong = 1
)

func answer(l *Lesson, opt int) {
	l.SelectOption(opt)
	l.Submit()
}

func recorder() (*[]Result, func(Result)) {
	var got []Result
	return &got, func(r Result) { got = append(got, r) }
}

func TestWrongThenRightOnSameQuestion(t *testing.T) {
	l := New(catalogtest.Level(1, 1, 2), nil)

	answer(l, wrong)
	if l.Phase() != PhaseSubmitted || l.LastCorrect() {
		t.Fatalf("phase = %v, correct = %v; want submitted, false", l.Phase(), l.LastCorrect())
	}
	if l.Explanation() != "" {
		t.Error("explanation shown after wrong answer")
	}
	l.Retry()
	if _, ok := l.Selected(); ok {
		t.Error("selection not cleared by retry")
	}
	if l.QuestionIndex() != 0 {
		t.Errorf("retry moved to question %d", l.QuestionIndex())
	}
	answer(l, right)

	if l.Attempts() != 2 || l.Score() != 1 {
		t.Errorf("attempts = %d, score = %d; want 2, 1", l.Attempts(), l.Score())
	}
	if l.Explanation() != "because" {
		t.Errorf("explanation = %q", l.Explanation())
	}
}

func TestAllCorrectFirstTry(t *testing.T) {
	got, onComplete := recorder()
	level := catalogtest.Level(1, 3, 3)
	l := New(level, onComplete)

	for i := 0; i < level.QuestionCount(); i++ {
		answer(l, right)
		l.Advance()
	}

	if l.Phase() != PhaseCompleted {
		t.Fatalf("phase = %v, want completed", l.Phase())
	}
	if len(*got) != 1 {
		t.Fatalf("completion reported %d times, want 1", len(*got))
	}
	r := (*got)[0]
	if r.Score != 3 || r.Attempts != 3 || r.LevelID != 1 {
		t.Errorf("result = %+v", r)
	}
	if r.SessionID != l.ID() || r.SessionID == "" {
		t.Errorf("session id = %q, want %q", r.SessionID, l.ID())
	}
}

func TestCompletionReportedOnce(t *testing.T) {
	got, onComplete := recorder()
	l := New(catalogtest.Level(1, 1, 1), onComplete)

	answer(l, right)
	l.Advance()
	l.Advance()
	l.Finish()
	l.Submit()

	if len(*got) != 1 {
		t.Errorf("completion reported %d times, want 1", len(*got))
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	l := New(catalogtest.Level(1, 1, 2), nil)

	// Submit without selection.
	l.Submit()
	if l.Phase() != PhaseAnswering || l.Attempts() != 0 {
		t.Fatalf("submit without selection changed state: %v, %d", l.Phase(), l.Attempts())
	}

	// Advance and retry while answering.
	l.Advance()
	l.Retry()
	if l.Phase() != PhaseAnswering || l.QuestionIndex() != 0 {
		t.Fatal("advance/retry while answering changed state")
	}

	// Out-of-range selection.
	l.SelectOption(5)
	l.SelectOption(-1)
	if _, ok := l.Selected(); ok {
		t.Error("out-of-range option selected")
	}

	// Retry after a correct answer and advance after a wrong one.
	answer(l, right)
	l.Retry()
	if l.Phase() != PhaseSubmitted {
		t.Error("retry after correct answer changed phase")
	}
	l.SelectOption(wrong)
	if sel, _ := l.Selected(); sel != right {
		t.Error("selection changed while submitted")
	}
	l.Advance()
	answer(l, wrong)
	l.Advance()
	if l.QuestionIndex() != 1 || l.Phase() != PhaseSubmitted {
		t.Errorf("advance after wrong answer moved on: index %d, phase %v", l.QuestionIndex(), l.Phase())
	}
	if !l.Can(ActionRetry) || l.Can(ActionAdvance) {
		t.Errorf("actions = %v, want [retry]", l.Actions())
	}
}

func TestSelectionOverwrites(t *testing.T) {
	l := New(catalogtest.Level(1, 1, 1), nil)
	l.SelectOption(wrong)
	l.SelectOption(right)
	l.Submit()
	if !l.LastCorrect() {
		t.Error("latest selection was not the one graded")
	}
}

func TestActions(t *testing.T) {
	l := New(catalogtest.Level(1, 1, 1), nil)
	if got := l.Actions(); len(got) != 1 || got[0] != ActionSelect {
		t.Errorf("initial actions = %v", got)
	}
	l.SelectOption(right)
	if !l.Can(ActionSubmit) {
		t.Error("submit not offered after selection")
	}
	l.Submit()
	if !l.Can(ActionAdvance) || l.Can(ActionSubmit) {
		t.Errorf("actions after correct = %v", l.Actions())
	}
	l.Advance()
	if l.Actions() != nil {
		t.Errorf("actions after completion = %v", l.Actions())
	}
}

func TestCountersMonotonic(t *testing.T) {
	l := New(catalogtest.Level(1, 1, 3), nil)
	prevScore, prevAttempts := 0, 0
	moves := []int{wrong, right, wrong, wrong, right, right}
	for _, m := range moves {
		answer(l, m)
		if l.Score() < prevScore || l.Attempts() < prevAttempts {
			t.Fatalf("counters decreased: score %d->%d attempts %d->%d", prevScore, l.Score(), prevAttempts, l.Attempts())
		}
		prevScore, prevAttempts = l.Score(), l.Attempts()
		if l.LastCorrect() {
			l.Advance()
		} else {
			l.Retry()
		}
	}
	if l.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, want completed", l.Phase())
	}
}

func TestRestartResetsCounters(t *testing.T) {
	got, onComplete := recorder()
	l := New(catalogtest.Level(1, 1, 1), onComplete)
	answer(l, wrong)

	fresh := l.Restart()
	if fresh.Score() != 0 || fresh.Attempts() != 0 || fresh.Phase() != PhaseAnswering {
		t.Errorf("restart kept state: %+v", fresh.Result())
	}
	if fresh.ID() == l.ID() {
		t.Error("restart reused session id")
	}
	answer(fresh, right)
	fresh.Advance()
	if len(*got) != 1 || (*got)[0].Attempts != 1 {
		t.Errorf("results = %+v", *got)
	}
}

func newProgress(t *testing.T, levels ...catalog.Level) *progress.Store {
	t.Helper()
	return progress.NewStore(store.NewMemoryKV(), catalogtest.New(t, levels...))
}

func reportTo(ps *progress.Store) func(Result) {
	return func(r Result) {
		ps.RecordCompletion(context.Background(), r.LevelID, r.Score, r.Attempts)
	}
}

func TestCompletingLevelUnlocksNext(t *testing.T) {
	ps := newProgress(t, catalogtest.Level(1, 2, 2), catalogtest.Level(2, 1, 1))
	level, _ := catalogtest.New(t, catalogtest.Level(1, 2, 2)).Get(1)
	l := New(level, reportTo(ps))

	answer(l, right)
	l.Advance()
	answer(l, wrong)
	l.Retry()
	answer(l, right)
	l.Advance()

	rec, ok := ps.ProgressFor(1)
	if !ok {
		t.Fatal("no progress recorded")
	}
	if rec.Score != 2 || rec.Attempts != 3 || !rec.Completed {
		t.Errorf("record = %+v; want score 2, attempts 3, completed", rec)
	}
	if !ps.IsUnlocked(2) {
		t.Error("level 2 still locked")
	}
}

func TestFinishingBelowRequiredScoreKeepsNextLocked(t *testing.T) {
	ps := newProgress(t, catalogtest.Level(1, 3, 3), catalogtest.Level(2, 1, 1))
	l := New(catalogtest.Level(1, 3, 3), reportTo(ps))

	answer(l, right)
	l.Advance()
	answer(l, right)
	l.Advance()
	answer(l, wrong)
	l.Finish()

	rec, ok := ps.ProgressFor(1)
	if !ok {
		t.Fatal("no progress recorded")
	}
	if rec.Score != 2 || rec.Completed {
		t.Errorf("record = %+v; want score 2, not completed", rec)
	}
	if ps.IsUnlocked(2) {
		t.Error("level 2 unlocked without completion")
	}
}
