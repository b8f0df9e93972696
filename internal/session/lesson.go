// Package session runs one attempt at a level as a state machine.
package session

import (
	"github.com/google/uuid"

	"github.com/abhisek/adaptly/internal/catalog"
)

// Phase is the current phase of a lesson.
type Phase int

const (
	PhaseAnswering Phase = iota // Choosing an option for the current question
	PhaseSubmitted              // Showing the verdict for the submitted option
	PhaseCompleted              // Terminal; result has been reported
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitted:
		return "submitted"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Action is a user action that may be valid in the current phase.
type Action string

const (
	ActionSelect  Action = "select"
	ActionSubmit  Action = "submit"
	ActionAdvance Action = "advance"
	ActionRetry   Action = "retry"
)

// Result is reported exactly once when a lesson completes.
type Result struct {
	SessionID string
	LevelID   int
	Score     int
	Attempts  int
}

// Lesson is the state machine for one session at one level. Actions that are
// invalid for the current phase are ignored.
type Lesson struct {
	id    string
	level catalog.Level

	// phase is the current phase.
	phase Phase

	// index is the position of the current question.
	index int

	// selected is the chosen option, or -1 when nothing is selected.
	selected int

	// lastCorrect is the verdict of the latest submit.
	lastCorrect bool

	// score counts correct submissions.
	score int

	// attempts counts all submissions.
	attempts int

	onComplete func(Result)
	reported   bool
}

// New starts a lesson at the first question of level. onComplete may be nil.
func New(level catalog.Level, onComplete func(Result)) *Lesson {
	return &Lesson{
		id:         uuid.NewString(),
		level:      level,
		selected:   -1,
		onComplete: onComplete,
	}
}

// Restart returns a fresh lesson for the same level with zeroed counters.
func (l *Lesson) Restart() *Lesson {
	return New(l.level, l.onComplete)
}

// SelectOption records option i as the selection. Only valid while answering.
func (l *Lesson) SelectOption(i int) {
	if l.phase != PhaseAnswering {
		return
	}
	if i < 0 || i >= len(l.current().Options) {
		return
	}
	l.selected = i
}

// Submit grades the current selection. Without a selection it does nothing.
func (l *Lesson) Submit() {
	if l.phase != PhaseAnswering || l.selected < 0 {
		return
	}
	l.attempts++
	l.lastCorrect = l.current().IsCorrect(l.selected)
	if l.lastCorrect {
		l.score++
	}
	l.phase = PhaseSubmitted
}

// Advance moves past a correctly answered question. After the last question
// the lesson completes and reports its result.
func (l *Lesson) Advance() {
	if l.phase != PhaseSubmitted || !l.lastCorrect {
		return
	}
	if l.IsLastQuestion() {
		l.complete()
		return
	}
	l.index++
	l.selected = -1
	l.phase = PhaseAnswering
}

// Retry returns to the same question after an incorrect answer.
func (l *Lesson) Retry() {
	if l.phase != PhaseSubmitted || l.lastCorrect {
		return
	}
	l.selected = -1
	l.phase = PhaseAnswering
}

// Finish ends the lesson early with the counters accumulated so far.
func (l *Lesson) Finish() {
	if l.phase == PhaseCompleted {
		return
	}
	l.complete()
}

func (l *Lesson) complete() {
	l.phase = PhaseCompleted
	if l.reported {
		return
	}
	l.reported = true
	if l.onComplete != nil {
		l.onComplete(l.Result())
	}
}

func (l *Lesson) current() catalog.Question {
	return l.level.Questions[l.index]
}

// Actions lists the actions valid in the current phase.
func (l *Lesson) Actions() []Action {
	switch l.phase {
	case PhaseAnswering:
		if l.selected >= 0 {
			return []Action{ActionSelect, ActionSubmit}
		}
		return []Action{ActionSelect}
	case PhaseSubmitted:
		if l.lastCorrect {
			return []Action{ActionAdvance}
		}
		return []Action{ActionRetry}
	default:
		return nil
	}
}

// Can reports whether a is valid in the current phase.
func (l *Lesson) Can(a Action) bool {
	for _, v := range l.Actions() {
		if v == a {
			return true
		}
	}
	return false
}

func (l *Lesson) ID() string           { return l.id }
func (l *Lesson) Level() catalog.Level { return l.level }
func (l *Lesson) Phase() Phase         { return l.phase }
func (l *Lesson) Score() int           { return l.score }
func (l *Lesson) Attempts() int        { return l.attempts }

// Question returns the current question.
func (l *Lesson) Question() catalog.Question { return l.current() }

// QuestionIndex is the zero-based position of the current question.
func (l *Lesson) QuestionIndex() int { return l.index }

// IsLastQuestion reports whether the current question is the final one.
func (l *Lesson) IsLastQuestion() bool { return l.index == len(l.level.Questions)-1 }

// Selected returns the selected option; ok is false when nothing is selected.
func (l *Lesson) Selected() (int, bool) {
	return l.selected, l.selected >= 0
}

// LastCorrect reports the verdict of the latest submit. Meaningful only in
// PhaseSubmitted.
func (l *Lesson) LastCorrect() bool { return l.lastCorrect }

// Explanation returns the current question's explanation after a correct
// submit, and "" otherwise.
func (l *Lesson) Explanation() string {
	if l.phase == PhaseSubmitted && l.lastCorrect {
		return l.current().Explanation
	}
	return ""
}

// Result returns the counters as they stand.
func (l *Lesson) Result() Result {
	return Result{
		SessionID: l.id,
		LevelID:   l.level.ID,
		Score:     l.score,
		Attempts:  l.attempts,
	}
}
