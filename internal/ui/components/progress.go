package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptly/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a fraction in [0, 1].
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar returns a bar filling width columns including the label.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := 0
	if p.ShowPercent {
		suffix = 6
	}
	barWidth := max(p.Width-lipgloss.Width(out)-suffix, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	out += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		out += theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}
	return out
}
