package content

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/style"
)

func level(t *testing.T, id int) catalog.Level {
	t.Helper()
	l, err := catalog.Default().Get(id)
	require.NoError(t, err)
	return l
}

type fakeNarrator struct {
	speaking bool
	spoken   []string
	cancels  int
}

func (f *fakeNarrator) Speak(_ context.Context, text string) error {
	f.spoken = append(f.spoken, text)
	f.speaking = true
	return nil
}
func (f *fakeNarrator) Cancel()          { f.cancels++; f.speaking = false }
func (f *fakeNarrator) IsSpeaking() bool { return f.speaking }

func TestForSelectsVariant(t *testing.T) {
	for _, s := range style.All() {
		r := For(s, nil)
		assert.Equal(t, s, r.Style())
	}
	assert.Equal(t, style.Reading, For(style.Style("unknown"), nil).Style())
}

func TestRenderShowsStyleContent(t *testing.T) {
	l := level(t, 2)
	tests := []struct {
		style style.Style
		want  string
	}{
		{style.Visual, "2/3 is larger than 3/5"},
		{style.Reading, "Cross multiplication"},
		{style.Auditory, "Hear fraction comparison methods"},
		{style.Kinesthetic, "Adjust the fractions"},
	}
	for _, tt := range tests {
		out := For(tt.style, &fakeNarrator{}).Render(l, 80)
		assert.Contains(t, out, tt.want, "style %s", tt.style)
	}
}

func TestAuditoryToggle(t *testing.T) {
	n := &fakeNarrator{}
	r := For(style.Auditory, n)
	l := level(t, 3)

	handled, effect := r.HandleKey(l, "x")
	assert.False(t, handled)
	assert.Nil(t, effect)

	handled, effect = r.HandleKey(l, "n")
	require.True(t, handled)
	require.NotNil(t, effect)
	require.NoError(t, effect(context.Background()))
	assert.Equal(t, []string{l.Content.Auditory.Narration}, n.spoken)
	assert.Contains(t, r.Render(l, 80), "Stop narration")

	handled, effect = r.HandleKey(l, "n")
	assert.True(t, handled)
	assert.Nil(t, effect, "stopping runs inline")
	assert.Equal(t, 1, n.cancels)
	assert.Contains(t, r.Render(l, 80), "Play narration")
}

func TestKinestheticKeys(t *testing.T) {
	r := For(style.Kinesthetic, nil)
	l := level(t, 1)

	for _, k := range []string{".", ".", ">"} {
		handled, effect := r.HandleKey(l, k)
		assert.True(t, handled)
		assert.Nil(t, effect)
	}
	handled, _ := r.HandleKey(l, "q")
	assert.False(t, handled)

	assert.Contains(t, r.Render(l, 80), "Fraction: 3/5 ≈ 0.60")
}

func TestManipulativeBounds(t *testing.T) {
	m := NewManipulative(catalog.ManipulativeFraction)
	for i := 0; i < 20; i++ {
		m.Numerator(1)
	}
	assert.Equal(t, Fraction{4, 4}, m.Left)
	m.Denominator(-2)
	assert.Equal(t, Fraction{2, 2}, m.Left, "numerator follows denominator down")
	for i := 0; i < 20; i++ {
		m.Denominator(-1)
		m.Numerator(-1)
	}
	assert.Equal(t, Fraction{0, 1}, m.Left)
	for i := 0; i < 20; i++ {
		m.Denominator(1)
	}
	assert.Equal(t, 12, m.Left.Den)

	m.Switch()
	assert.Equal(t, 0, m.Active, "single-fraction tool has nothing to switch to")
}

func TestManipulativeOutcomes(t *testing.T) {
	cmp := NewManipulative(catalog.ManipulativeCompare)
	assert.Equal(t, "1/3 is larger than 1/4", cmp.Outcome())
	cmp.Switch()
	cmp.Denominator(1) // right becomes 1/4
	assert.Equal(t, "1/4 and 1/4 are equal", cmp.Outcome())

	add := NewManipulative(catalog.ManipulativeAdd)
	assert.Equal(t, "1/4 + 1/4 = 1/2", add.Outcome())

	op := NewManipulative(catalog.ManipulativeOperate)
	assert.True(t, strings.HasPrefix(op.Outcome(), "1/4 × 1/3 = 1/12"))
	op.CycleOp()
	assert.True(t, strings.HasPrefix(op.Outcome(), "1/4 ÷ 1/3 = 3/4"))
	op.Switch()
	op.Numerator(-1)
	assert.Equal(t, "Cannot divide by zero", op.Outcome())
	op.CycleOp()
	op.CycleOp()
	assert.True(t, strings.HasPrefix(op.Outcome(), "1/4 - 0/3 = 1/4"))
}

func TestFractionArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Fraction
		want Fraction
	}{
		{"simplify", Fraction{6, 8}.Simplify(), Fraction{3, 4}},
		{"negative den", Fraction{1, -2}.Simplify(), Fraction{-1, 2}},
		{"add", Fraction{1, 3}.Add(Fraction{1, 6}), Fraction{1, 2}},
		{"sub", Fraction{2, 3}.Sub(Fraction{1, 6}), Fraction{1, 2}},
		{"mul", Fraction{1, 2}.Mul(Fraction{3, 4}), Fraction{3, 8}},
		{"div", Fraction{3, 4}.Div(Fraction{1, 2}), Fraction{3, 2}},
		{"zero", Fraction{0, 5}.Simplify(), Fraction{0, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got, tt.name)
	}
	assert.Equal(t, 1, Fraction{2, 3}.Compare(Fraction{3, 5}))
	assert.Equal(t, 0, Fraction{1, 2}.Compare(Fraction{2, 4}))
	assert.Equal(t, -1, Fraction{1, 4}.Compare(Fraction{1, 3}))
	assert.Zero(t, Fraction{1, 0}.Float())
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██░░", Bar(Fraction{1, 2}, 4))
	assert.Equal(t, "░░░░", Bar(Fraction{0, 3}, 4))
	assert.Equal(t, "████", Bar(Fraction{3, 3}, 4))
	assert.Empty(t, Bar(Fraction{1, 2}, 0))
}
