package levels

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/catalog/catalogtest"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/progress"
	"github.com/abhisek/adaptly/internal/router"
	"github.com/abhisek/adaptly/internal/screen"
	"github.com/abhisek/adaptly/internal/screens/lesson"
	"github.com/abhisek/adaptly/internal/screens/survey"
	"github.com/abhisek/adaptly/internal/store"
	"github.com/abhisek/adaptly/internal/style"
)

func newEnv(t *testing.T) *screen.Env {
	t.Helper()
	cat := catalogtest.New(t, catalogtest.Level(1, 1, 1), catalogtest.Level(2, 1, 1), catalogtest.Level(3, 1, 1))
	return &screen.Env{
		KV:       store.NewMemoryKV(),
		Catalog:  cat,
		Progress: progress.NewStore(store.NewMemoryKV(), cat),
		Narrator: narration.Silent{},
		Log:      zap.NewNop(),
		Style:    style.Visual,
	}
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestLockedLevelsCannotBeSelected(t *testing.T) {
	s := New(newEnv(t))

	s.Update(key(tea.KeyDown))
	assert.Equal(t, 0, s.selected, "cursor moved onto a locked level")

	view := s.View(100, 40)
	assert.Contains(t, view, "Complete level 1 to unlock")
	assert.Contains(t, view, "0 of 3 completed")
}

func TestEnterPushesLesson(t *testing.T) {
	s := New(newEnv(t))

	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, isLesson := msg.Screen.(*lesson.LessonScreen)
	assert.True(t, isLesson, "pushed %T", msg.Screen)
}

func TestReflectsRecordedProgress(t *testing.T) {
	env := newEnv(t)
	s := New(env)

	env.Progress.RecordCompletion(context.Background(), 1, 1, 2)

	s.Update(key(tea.KeyDown))
	assert.Equal(t, 1, s.selected)

	view := s.View(100, 40)
	assert.Contains(t, view, "Score 1/1")
	assert.Contains(t, view, "Attempts 2")
	assert.Contains(t, view, "1 of 3 completed")
	assert.True(t, strings.Contains(view, "✓"))
}

func TestStartsOnFirstIncompleteLevel(t *testing.T) {
	env := newEnv(t)
	env.Progress.RecordCompletion(context.Background(), 1, 1, 1)
	assert.Equal(t, 1, New(env).selected)
}

func TestRetakeSurveyPushes(t *testing.T) {
	s := New(newEnv(t))

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, isSurvey := msg.Screen.(*survey.SurveyScreen)
	assert.True(t, isSurvey)
}
