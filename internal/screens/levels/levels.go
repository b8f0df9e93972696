// Package levels lists the catalog with lock state and past results.
package levels

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/router"
	"github.com/abhisek/adaptly/internal/screen"
	"github.com/abhisek/adaptly/internal/screens/lesson"
	"github.com/abhisek/adaptly/internal/screens/placeholder"
	"github.com/abhisek/adaptly/internal/screens/survey"
	"github.com/abhisek/adaptly/internal/style"
	"github.com/abhisek/adaptly/internal/ui/components"
	"github.com/abhisek/adaptly/internal/ui/layout"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

// LevelsScreen is the home screen. Lock state is read from the progress store
// on every update so results recorded by a lesson show up on return.
type LevelsScreen struct {
	env      *screen.Env
	selected int
}

var _ screen.Screen = (*LevelsScreen)(nil)
var _ screen.KeyHintProvider = (*LevelsScreen)(nil)

// New selects the first unlocked level that is not yet completed.
func New(env *screen.Env) *LevelsScreen {
	s := &LevelsScreen{env: env}
	for i, l := range env.Catalog.All() {
		rec, _ := env.Progress.ProgressFor(l.ID)
		if env.Progress.IsUnlocked(l.ID) && !rec.Completed {
			s.selected = i
			break
		}
	}
	return s
}

func (s *LevelsScreen) Init() tea.Cmd { return nil }

func (s *LevelsScreen) Title() string { return "Levels" }

func (s *LevelsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "s", Description: "Learning style"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *LevelsScreen) menu() components.Menu {
	var items []components.MenuItem
	for _, l := range s.env.Catalog.All() {
		items = append(items, components.MenuItem{
			Label:    s.label(l),
			Detail:   s.detail(l),
			Action:   s.open(l),
			Disabled: !s.env.Progress.IsUnlocked(l.ID),
		})
	}
	return components.Menu{Items: items, Selected: s.selected}
}

func (s *LevelsScreen) label(l catalog.Level) string {
	badge := ""
	rec, ok := s.env.Progress.ProgressFor(l.ID)
	switch {
	case !s.env.Progress.IsUnlocked(l.ID):
		badge = "  🔒"
	case ok && rec.Completed:
		badge = "  ✓"
	}
	return fmt.Sprintf("%d. %s  %s%s", l.ID, l.Title, difficulty(l.Difficulty), badge)
}

func (s *LevelsScreen) detail(l catalog.Level) string {
	if !s.env.Progress.IsUnlocked(l.ID) {
		if prev, ok := s.env.Catalog.Prerequisite(l.ID); ok {
			return fmt.Sprintf("Complete level %d to unlock", prev)
		}
		return "Locked"
	}
	rec, ok := s.env.Progress.ProgressFor(l.ID)
	if !ok {
		return fmt.Sprintf("%s  ·  %d questions, %d to pass", summary(l, s.env.Style), l.QuestionCount(), l.RequiredScore)
	}
	out := fmt.Sprintf("Score %d/%d  ·  Attempts %d", rec.Score, l.QuestionCount(), rec.Attempts)
	if rec.CompletedAt != nil {
		out += "  ·  " + rec.CompletedAt.Local().Format("2 Jan 2006")
	}
	return out
}

func summary(l catalog.Level, st style.Style) string {
	c := l.Content
	switch st {
	case style.Visual:
		return c.Visual.Summary
	case style.Auditory:
		return c.Auditory.Summary
	case style.Kinesthetic:
		return c.Kinesthetic.Summary
	case style.Reading:
		return c.Reading.Summary
	}
	return l.Description
}

func difficulty(d int) string {
	d = min(max(d, 0), 5)
	return strings.Repeat("●", d) + strings.Repeat("○", 5-d)
}

func (s *LevelsScreen) open(l catalog.Level) func() tea.Cmd {
	return func() tea.Cmd {
		var next screen.Screen
		if level, err := s.env.Catalog.Get(l.ID); err != nil {
			next = placeholder.New("Unavailable", err.Error())
		} else {
			next = lesson.New(s.env, level)
		}
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *LevelsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "q":
		return s, tea.Quit
	case "s":
		retake := survey.New(s.env, func() tea.Msg { return router.PopScreenMsg{} })
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: retake} }
	}

	m, cmd := s.menu().Update(kmsg)
	s.selected = m.Selected
	return s, cmd
}

func (s *LevelsScreen) View(width, height int) string {
	inner := min(width-4, 80)
	var b strings.Builder

	b.WriteString(theme.Title.Render("Fraction levels"))
	b.WriteString("\n")
	done, total := s.env.Progress.CompletedCount(), s.env.Catalog.Len()
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d completed", done, total)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Overall", s.env.Progress.OverallPercent()/100, true, inner).View())
	b.WriteString("\n\n")
	b.WriteString(s.menu().View())

	return lipgloss.NewStyle().Width(width).Height(height).Padding(1, 2).Render(b.String())
}
