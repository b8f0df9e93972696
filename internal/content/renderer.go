// Package content presents a level in the learner's preferred style.
package content

import (
	"context"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/style"
	"github.com/abhisek/adaptly/internal/ui/layout"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

// Effect is slow work triggered by a key, run off the UI loop by the caller.
type Effect func(ctx context.Context) error

// Renderer draws a level's teaching block for one learning style and handles
// the keys that block owns.
type Renderer interface {
	Style() style.Style
	Render(level catalog.Level, width int) string
	KeyHints() []layout.KeyHint

	// HandleKey applies key. handled is false for keys the renderer ignores.
	// A non-nil effect must be run by the caller.
	HandleKey(level catalog.Level, key string) (handled bool, effect Effect)
}

// For returns the renderer for s. Unknown styles fall back to reading.
func For(s style.Style, n narration.Narrator) Renderer {
	switch s {
	case style.Visual:
		return &visualRenderer{}
	case style.Auditory:
		if n == nil {
			n = narration.Silent{}
		}
		return &auditoryRenderer{narrator: n}
	case style.Kinesthetic:
		return &kinestheticRenderer{byLevel: make(map[int]*Manipulative)}
	default:
		return &readingRenderer{}
	}
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

type visualRenderer struct{}

func (*visualRenderer) Style() style.Style { return style.Visual }

func (*visualRenderer) Render(level catalog.Level, width int) string {
	c := level.Content.Visual
	diagram := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.TrimRight(c.Diagram, "\n"))
	return diagram + "\n\n" + theme.Hint.Render(wrap(c.Caption, width))
}

func (*visualRenderer) KeyHints() []layout.KeyHint { return nil }

func (*visualRenderer) HandleKey(catalog.Level, string) (bool, Effect) { return false, nil }

type readingRenderer struct{}

func (*readingRenderer) Style() style.Style { return style.Reading }

func (*readingRenderer) Render(level catalog.Level, width int) string {
	c := level.Content.Reading
	var b strings.Builder
	b.WriteString(theme.Body.Render(wrap(c.Intro, width)))
	for _, p := range c.Points {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(wrap("• "+p, width)))
	}
	return b.String()
}

func (*readingRenderer) KeyHints() []layout.KeyHint { return nil }

func (*readingRenderer) HandleKey(catalog.Level, string) (bool, Effect) { return false, nil }

type auditoryRenderer struct {
	narrator narration.Narrator
}

func (*auditoryRenderer) Style() style.Style { return style.Auditory }

func (r *auditoryRenderer) Render(level catalog.Level, width int) string {
	label := "▶ Play narration"
	if r.narrator.IsSpeaking() {
		label = "■ Stop narration"
	}
	return theme.ButtonActive.Render(label) + "\n\n" +
		theme.Hint.Render(wrap(level.Content.Auditory.Blurb, width))
}

func (r *auditoryRenderer) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "n", Description: "Narration"}}
}

// HandleKey toggles narration: a running narration is cancelled at once,
// otherwise speaking is returned as an effect.
func (r *auditoryRenderer) HandleKey(level catalog.Level, key string) (bool, Effect) {
	if key != "n" {
		return false, nil
	}
	if r.narrator.IsSpeaking() {
		r.narrator.Cancel()
		return true, nil
	}
	text := level.Content.Auditory.Narration
	return true, func(ctx context.Context) error {
		return r.narrator.Speak(ctx, text)
	}
}

type kinestheticRenderer struct {
	byLevel map[int]*Manipulative
}

func (*kinestheticRenderer) Style() style.Style { return style.Kinesthetic }

func (r *kinestheticRenderer) manipulative(level catalog.Level) *Manipulative {
	m, ok := r.byLevel[level.ID]
	if !ok {
		m = NewManipulative(level.Content.Kinesthetic.Manipulative)
		r.byLevel[level.ID] = m
	}
	return m
}

func (r *kinestheticRenderer) Render(level catalog.Level, width int) string {
	return theme.Hint.Render(wrap(level.Content.Kinesthetic.Prompt, width)) + "\n\n" +
		theme.Body.Render(r.manipulative(level).View())
}

func (r *kinestheticRenderer) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: ",/.", Description: "Numerator"},
		{Key: "</>", Description: "Denominator"},
		{Key: "Tab", Description: "Switch"},
		{Key: "o", Description: "Operator"},
	}
}

func (r *kinestheticRenderer) HandleKey(level catalog.Level, key string) (bool, Effect) {
	m := r.manipulative(level)
	switch key {
	case ",":
		m.Numerator(-1)
	case ".":
		m.Numerator(1)
	case "<":
		m.Denominator(-1)
	case ">":
		m.Denominator(1)
	case "tab":
		m.Switch()
	case "o":
		m.CycleOp()
	default:
		return false, nil
	}
	return true, nil
}
