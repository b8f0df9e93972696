// Package survey asks the learner how they prefer to learn.
package survey

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/screen"
	"github.com/abhisek/adaptly/internal/style"
	"github.com/abhisek/adaptly/internal/ui/components"
	"github.com/abhisek/adaptly/internal/ui/layout"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

// SurveyScreen offers the four learning styles. Choosing one persists it and
// emits the message produced by done, typically a navigation message.
type SurveyScreen struct {
	env  *screen.Env
	done func() tea.Msg
	menu components.Menu
}

var _ screen.Screen = (*SurveyScreen)(nil)
var _ screen.KeyHintProvider = (*SurveyScreen)(nil)

// New builds the survey. The current style, if any, starts selected.
func New(env *screen.Env, done func() tea.Msg) *SurveyScreen {
	s := &SurveyScreen{env: env, done: done}

	var items []components.MenuItem
	for _, st := range style.All() {
		items = append(items, components.MenuItem{
			Label:  st.Label(),
			Detail: st.Helper(),
			Action: s.choose(st),
		})
	}
	s.menu = components.NewMenu(items)
	for i, st := range style.All() {
		if st == env.Style {
			s.menu.Selected = i
		}
	}
	return s
}

func (s *SurveyScreen) choose(st style.Style) func() tea.Cmd {
	return func() tea.Cmd {
		if err := style.Save(context.Background(), s.env.KV, st); err != nil {
			s.env.Log.Warn("save learning style failed", zap.String("style", st.String()), zap.Error(err))
		}
		s.env.Style = st
		return s.done
	}
}

func (s *SurveyScreen) Init() tea.Cmd { return nil }

func (s *SurveyScreen) Title() string { return "How do you learn best?" }

func (s *SurveyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-4", Description: "Pick"},
		{Key: "Enter", Description: "Choose"},
	}
}

func (s *SurveyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if k := kmsg.String(); len(k) == 1 && k >= "1" && k <= "4" {
			s.menu.Selected = int(k[0] - '1')
			return s, s.menu.Items[s.menu.Selected].Action()
		}
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SurveyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Pick the way you like to learn"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Lessons will be shown in this style. You can retake the survey any time."))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
