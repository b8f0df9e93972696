package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/catalog/catalogtest"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/progress"
	"github.com/abhisek/adaptly/internal/screen"
	"github.com/abhisek/adaptly/internal/screens/levels"
	"github.com/abhisek/adaptly/internal/screens/survey"
	"github.com/abhisek/adaptly/internal/screens/welcome"
	"github.com/abhisek/adaptly/internal/store"
	"github.com/abhisek/adaptly/internal/style"
	"github.com/abhisek/adaptly/internal/ui/layout"
)

func newEnv(t *testing.T, st style.Style) *screen.Env {
	t.Helper()
	cat := catalogtest.New(t, catalogtest.Level(1, 1, 1))
	return &screen.Env{
		KV:       store.NewMemoryKV(),
		Catalog:  cat,
		Progress: progress.NewStore(store.NewMemoryKV(), cat),
		Narrator: narration.Silent{},
		Log:      zap.NewNop(),
		Style:    st,
	}
}

func TestInitialScreen(t *testing.T) {
	tests := []struct {
		name   string
		style  style.Style
		splash bool
		check  func(screen.Screen) bool
	}{
		{"splash", style.Visual, true, func(s screen.Screen) bool { _, ok := s.(*welcome.WelcomeScreen); return ok }},
		{"no style goes to survey", "", false, func(s screen.Screen) bool { _, ok := s.(*survey.SurveyScreen); return ok }},
		{"style goes to levels", style.Visual, false, func(s screen.Screen) bool { _, ok := s.(*levels.LevelsScreen); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newAppModel(Options{Env: newEnv(t, tt.style), SkipSplash: !tt.splash})
			if !tt.check(m.router.Active()) {
				t.Errorf("unexpected initial screen %T", m.router.Active())
			}
		})
	}
}

func TestHeaderShowsStyle(t *testing.T) {
	m := newAppModel(Options{Env: newEnv(t, style.Reading), SkipSplash: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app := updated.(AppModel)
	if app.width != 100 || app.height != 40 {
		t.Fatalf("size = %dx%d", app.width, app.height)
	}
	app.View()

	header := layout.RenderHeader(app.router.Active().Title(), app.env.Style.Label(), app.width)
	if !strings.Contains(header, "Reading/Writing learner") {
		t.Error("header does not show the learning style")
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newAppModel(Options{Env: newEnv(t, style.Visual), SkipSplash: true})
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc at the root should not navigate")
	}
}

func TestRunRequiresEnv(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("expected error without environment")
	}
}
