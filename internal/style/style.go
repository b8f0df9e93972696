// Package style models the learner's preferred learning style.
package style

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/adaptly/internal/store"
)

// Key is the persisted key holding the chosen style.
const Key = "learningStyle"

// Style is one of the four supported learning styles.
type Style string

const (
	Visual      Style = "visual"
	Auditory    Style = "auditory"
	Reading     Style = "reading"
	Kinesthetic Style = "kinesthetic"
)

// All returns every style in survey order.
func All() []Style {
	return []Style{Visual, Auditory, Reading, Kinesthetic}
}

// Parse accepts a style tag case-insensitively.
func Parse(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown learning style %q (want one of visual, auditory, reading, kinesthetic)", s)
	}
	return st, nil
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	switch s {
	case Visual, Auditory, Reading, Kinesthetic:
		return true
	}
	return false
}

func (s Style) String() string { return string(s) }

var titler = cases.Title(language.English)

// Title returns the capitalized tag, e.g. "Visual".
func (s Style) Title() string {
	return titler.String(string(s))
}

// Label returns the survey label.
func (s Style) Label() string {
	if s == Reading {
		return "Reading/Writing"
	}
	return s.Title()
}

// Helper returns the one-line survey description.
func (s Style) Helper() string {
	switch s {
	case Visual:
		return "Diagrams, charts, and images"
	case Auditory:
		return "Listen to explanations"
	case Reading:
		return "Detailed text and notes"
	case Kinesthetic:
		return "Hands-on, interactive demos"
	default:
		return ""
	}
}

// Load returns the persisted style; ok is false when none is stored or the
// stored value is not a known style.
func Load(ctx context.Context, kv store.KV, log *zap.Logger) (Style, bool) {
	if log == nil {
		log = zap.NewNop()
	}
	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		log.Warn("read learning style failed", zap.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}
	st, err := Parse(raw)
	if err != nil {
		log.Warn("ignoring stored learning style", zap.String("value", raw))
		return "", false
	}
	return st, true
}

// Save persists s.
func Save(ctx context.Context, kv store.KV, s Style) error {
	if !s.Valid() {
		return fmt.Errorf("unknown learning style %q", s)
	}
	return kv.Set(ctx, Key, string(s))
}

// Clear removes the persisted style.
func Clear(ctx context.Context, kv store.KV) error {
	return kv.Delete(ctx, Key)
}
