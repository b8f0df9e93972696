// Package lesson runs one level: the teaching block in the learner's style,
// the questions, and the hint panel.
package lesson

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/content"
	"github.com/abhisek/adaptly/internal/hint"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/router"
	"github.com/abhisek/adaptly/internal/screen"
	"github.com/abhisek/adaptly/internal/session"
	"github.com/abhisek/adaptly/internal/ui/components"
	"github.com/abhisek/adaptly/internal/ui/layout"
)

// LessonScreen implements screen.Screen for one run through a level.
type LessonScreen struct {
	env      *screen.Env
	lesson   *session.Lesson
	renderer content.Renderer

	ctx    context.Context
	cancel context.CancelFunc

	cursor int

	hintLoading bool
	hintSeq     uint64
	hint        *hint.Hint
	spinner     spinner.Model

	// status is a one-line notice, e.g. a narration failure.
	status string

	result *session.Result
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.Leaver = (*LessonScreen)(nil)

// New starts a lesson at level. The result is recorded in env.Progress when the
// lesson completes.
func New(env *screen.Env, level catalog.Level) *LessonScreen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &LessonScreen{
		env:      env,
		renderer: content.For(env.Style, env.Narrator),
		ctx:      ctx,
		cancel:   cancel,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.lesson = session.New(level, s.record)
	return s
}

func (s *LessonScreen) record(r session.Result) {
	s.result = &r
	s.env.Progress.RecordCompletion(s.ctx, r.LevelID, r.Score, r.Attempts)
	s.env.Log.Info("lesson completed",
		zap.String("session_id", r.SessionID),
		zap.Int("level_id", r.LevelID),
		zap.Int("score", r.Score),
		zap.Int("attempts", r.Attempts))
}

func (s *LessonScreen) Init() tea.Cmd { return nil }

func (s *LessonScreen) Title() string {
	return s.lesson.Level().Title
}

// Leave stops narration and drops any pending hint.
func (s *LessonScreen) Leave() {
	s.cancel()
	if s.env.Narrator != nil {
		s.env.Narrator.Cancel()
	}
	if s.env.Hints != nil {
		s.env.Hints.Invalidate()
	}
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.lesson.Phase() == session.PhaseCompleted {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to levels"},
			{Key: "r", Description: "Replay"},
		}
	}

	var hints []layout.KeyHint
	switch {
	case s.lesson.Can(session.ActionAdvance):
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	case s.lesson.Can(session.ActionRetry):
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Try again"})
	default:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓/1-4", Description: "Choose"},
			layout.KeyHint{Key: "Enter", Description: "Submit"},
		)
	}
	hints = append(hints, s.renderer.KeyHints()...)
	hints = append(hints,
		layout.KeyHint{Key: "h", Description: "Hint"},
		layout.KeyHint{Key: "f", Description: "Finish"},
		layout.KeyHint{Key: "Esc", Description: "Leave"},
	)
	return hints
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case hintMsg:
		return s, s.handleHint(hint.Result(msg))

	case effectDoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			s.status = effectStatus(msg.Err)
			s.env.Log.Warn("narration failed", zap.Error(msg.Err))
		}
		return s, nil

	case spinner.TickMsg:
		if !s.hintLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func effectStatus(err error) string {
	if errors.Is(err, narration.ErrUnsupported) {
		return "Narration is not available. Set ADAPTLY_NARRATION=tts to enable it."
	}
	return "Narration failed"
}

func (s *LessonScreen) handleKey(key string) tea.Cmd {
	if s.lesson.Phase() == session.PhaseCompleted {
		switch key {
		case "enter":
			return func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			s.lesson = s.lesson.Restart()
			s.result = nil
			s.questionChanged()
		}
		return nil
	}

	options := len(s.lesson.Question().Options)
	switch key {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
		return nil
	case "down", "j":
		s.cursor = min(s.cursor+1, options-1)
		return nil
	case "1", "2", "3", "4", "5", "6":
		i := int(key[0] - '1')
		if i < options && s.lesson.Phase() == session.PhaseAnswering {
			s.cursor = i
			s.lesson.SelectOption(i)
		}
		return nil
	case "space":
		s.lesson.SelectOption(s.cursor)
		return nil
	case "enter":
		return s.primary()
	case "h":
		return s.fetchHint()
	case "f":
		s.lesson.Finish()
		return nil
	}

	handled, effect := s.renderer.HandleKey(s.lesson.Level(), key)
	if !handled {
		return nil
	}
	s.status = ""
	if effect == nil {
		return nil
	}
	ctx := s.ctx
	return func() tea.Msg {
		return effectDoneMsg{Err: effect(ctx)}
	}
}

// primary performs the one action enter stands for in the current phase.
func (s *LessonScreen) primary() tea.Cmd {
	switch {
	case s.lesson.Can(session.ActionAdvance):
		s.lesson.Advance()
		if s.lesson.Phase() != session.PhaseCompleted {
			s.questionChanged()
		}
	case s.lesson.Can(session.ActionRetry):
		s.lesson.Retry()
	default:
		if _, ok := s.lesson.Selected(); !ok {
			s.lesson.SelectOption(s.cursor)
		}
		s.lesson.Submit()
	}
	return nil
}

func (s *LessonScreen) questionChanged() {
	s.cursor = 0
	s.hint = nil
	s.hintLoading = false
	if s.env.Hints != nil {
		s.env.Hints.Invalidate()
	}
}

func (s *LessonScreen) fetchHint() tea.Cmd {
	if s.env.Hints == nil {
		s.hint = &hint.Hint{Text: hint.NoHintText}
		return nil
	}
	ctx, seq := s.env.Hints.Begin(s.ctx)
	s.hintSeq = seq
	s.hintLoading = true
	s.hint = nil

	svc := s.env.Hints
	prompt := s.lesson.Question().Prompt
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return hintMsg(svc.Run(ctx, seq, prompt))
	})
}

func (s *LessonScreen) handleHint(r hint.Result) tea.Cmd {
	if s.env.Hints == nil || !s.env.Hints.IsCurrent(r.Seq) || r.Seq != s.hintSeq {
		return nil
	}
	s.hintLoading = false
	h := r.Hint
	s.hint = &h
	return nil
}

// choice mirrors the lesson state into the multiple-choice component.
func (s *LessonScreen) choice() components.MultiChoice {
	q := s.lesson.Question()
	mc := components.NewMultiChoice(q.Prompt, q.Options)
	mc.Cursor = s.cursor
	if sel, ok := s.lesson.Selected(); ok {
		mc.Selected = sel
	}
	if s.lesson.Phase() == session.PhaseSubmitted {
		mc.Revealed = true
		mc.Correct = s.lesson.LastCorrect()
	}
	return mc
}
