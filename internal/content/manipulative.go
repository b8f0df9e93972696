package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/adaptly/internal/catalog"
)

const (
	maxDenominator = 12
	barWidth       = 24
)

// Operator is the operation applied by the "operate" manipulative.
type Operator int

const (
	OpMul Operator = iota
	OpDiv
	OpAdd
	OpSub
)

func (o Operator) String() string {
	return [...]string{"×", "÷", "+", "-"}[o]
}

// Manipulative is the adjustable state behind the kinesthetic view.
type Manipulative struct {
	Kind   catalog.Manipulative
	Left   Fraction
	Right  Fraction
	Op     Operator
	Active int // 0 = Left, 1 = Right
}

// NewManipulative returns the starting state for kind.
func NewManipulative(kind catalog.Manipulative) *Manipulative {
	m := &Manipulative{Kind: kind, Left: Fraction{1, 4}, Right: Fraction{1, 3}}
	if kind == catalog.ManipulativeAdd {
		m.Right = Fraction{1, 4}
	}
	return m
}

func (m *Manipulative) twoFractions() bool {
	return m.Kind != catalog.ManipulativeFraction
}

func (m *Manipulative) active() *Fraction {
	if m.Active == 1 && m.twoFractions() {
		return &m.Right
	}
	return &m.Left
}

// Numerator moves the active numerator by delta, keeping 0 <= num <= den.
func (m *Manipulative) Numerator(delta int) {
	f := m.active()
	f.Num = min(max(f.Num+delta, 0), f.Den)
}

// Denominator moves the active denominator by delta within 1..12, pulling the
// numerator down if needed.
func (m *Manipulative) Denominator(delta int) {
	f := m.active()
	f.Den = min(max(f.Den+delta, 1), maxDenominator)
	if f.Num > f.Den {
		f.Num = f.Den
	}
}

// Switch toggles which fraction the adjust keys act on.
func (m *Manipulative) Switch() {
	if m.twoFractions() {
		m.Active = 1 - m.Active
	}
}

// CycleOp moves to the next operator.
func (m *Manipulative) CycleOp() {
	if m.Kind == catalog.ManipulativeOperate {
		m.Op = (m.Op + 1) % 4
	}
}

// Outcome describes the current manipulative result in words.
func (m *Manipulative) Outcome() string {
	switch m.Kind {
	case catalog.ManipulativeCompare:
		switch m.Left.Compare(m.Right) {
		case 1:
			return fmt.Sprintf("%s is larger than %s", m.Left, m.Right)
		case -1:
			return fmt.Sprintf("%s is larger than %s", m.Right, m.Left)
		default:
			return fmt.Sprintf("%s and %s are equal", m.Left, m.Right)
		}
	case catalog.ManipulativeAdd:
		return fmt.Sprintf("%s + %s = %s", m.Left, m.Right, m.Left.Add(m.Right))
	case catalog.ManipulativeOperate:
		var r Fraction
		switch m.Op {
		case OpMul:
			r = m.Left.Mul(m.Right)
		case OpDiv:
			if m.Right.Num == 0 {
				return "Cannot divide by zero"
			}
			r = m.Left.Div(m.Right)
		case OpAdd:
			r = m.Left.Add(m.Right)
		case OpSub:
			r = m.Left.Sub(m.Right)
		}
		return fmt.Sprintf("%s %s %s = %s ≈ %.2f", m.Left, m.Op, m.Right, r, r.Float())
	default:
		return fmt.Sprintf("Fraction: %s ≈ %.2f", m.Left, m.Left.Float())
	}
}

// Bar draws f as a filled bar of width cells.
func Bar(f Fraction, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(f.Float()*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// View renders the manipulative as text.
func (m *Manipulative) View() string {
	var b strings.Builder
	row := func(idx int, f Fraction) {
		marker := "  "
		if m.twoFractions() && m.Active == idx {
			marker = "▸ "
		}
		fmt.Fprintf(&b, "%s%-6s %s  %.2f\n", marker, f, Bar(f, barWidth), f.Float())
	}
	row(0, m.Left)
	if m.twoFractions() {
		row(1, m.Right)
	}
	b.WriteString("\n")
	b.WriteString(m.Outcome())
	return b.String()
}
