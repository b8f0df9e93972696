package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/hint"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/progress"
	"github.com/abhisek/adaptly/internal/store"
	"github.com/abhisek/adaptly/internal/style"
	"github.com/abhisek/adaptly/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens that hold resources while on top of the
// stack. Leave is called when the screen is popped or replaced.
type Leaver interface {
	Leave()
}

// Env carries the collaborators shared by every screen. It is owned by the
// UI loop and must not be touched from commands.
type Env struct {
	KV       store.KV
	Catalog  *catalog.Catalog
	Progress *progress.Store
	Narrator narration.Narrator
	Log      *zap.Logger

	// Hints is nil when hints are disabled.
	Hints *hint.Service

	// Style is the learner's style; empty until the survey is answered.
	Style style.Style
}
