// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptly/internal/router"
	"github.com/abhisek/adaptly/internal/screen"
	"github.com/abhisek/adaptly/internal/screens/levels"
	"github.com/abhisek/adaptly/internal/screens/survey"
	"github.com/abhisek/adaptly/internal/screens/welcome"
	"github.com/abhisek/adaptly/internal/ui/layout"
)

// Options configures the interactive program.
type Options struct {
	Env *screen.Env

	// SkipSplash starts directly on the survey or the level list.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screen.Env
	router *router.Router
	width  int
	height int
}

// newAppModel starts on the survey when no style has been chosen yet and on
// the level list otherwise.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	first := func() screen.Screen {
		if env.Style == "" {
			return survey.New(env, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: levels.New(env)}
			})
		}
		return levels.New(env)
	}

	initial := first()
	if !opts.SkipSplash {
		initial = welcome.New(first)
	}
	return AppModel{env: env, router: router.New(initial)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if l, ok := m.router.Active().(screen.Leaver); ok {
				l.Leave()
			}
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	styleLabel := ""
	if m.env.Style != "" {
		styleLabel = m.env.Style.Label()
	}

	header := layout.RenderHeader(title, styleLabel, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Env == nil {
		return fmt.Errorf("app: no environment")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
