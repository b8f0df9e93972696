package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptly/internal/ui/theme"
)

// MultiChoice renders a question and its options. It holds no answer state of
// its own; the caller fills in the fields from the lesson.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Selected int // -1 when nothing is selected

	// Revealed marks the selected option right or wrong.
	Revealed bool
	Correct  bool
}

// NewMultiChoice returns a component with no selection.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{Question: question, Options: options, Selected: -1}
}

// Move shifts the cursor by delta, clamped to the options.
func (m *MultiChoice) Move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Options)-1)
}

func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		marker := "○"
		if i == m.Selected {
			marker = "●"
		}
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, marker, i+1, opt)

		switch {
		case m.Revealed && i == m.Selected && m.Correct:
			line = theme.Correct.Render(line + "  ✓")
		case m.Revealed && i == m.Selected:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.Revealed:
			line = theme.Subtitle.Render(line)
		case i == m.Cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
