package components

import (
	"strings"

	"github.com/abhisek/adaptly/internal/ui/theme"
)

// Button is a labelled action. Only active buttons respond.
type Button struct {
	Key    string
	Label  string
	Active bool
}

func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		parts = append(parts, b.View())
	}
	return strings.Join(parts, "  ")
}
