package content

import "fmt"

// Fraction is a rational number with a positive denominator.
type Fraction struct {
	Num int
	Den int
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Float returns the decimal value. A zero denominator yields 0.
func (f Fraction) Float() float64 {
	if f.Den == 0 {
		return 0
	}
	return float64(f.Num) / float64(f.Den)
}

// Simplify reduces f to lowest terms with a positive denominator.
func (f Fraction) Simplify() Fraction {
	if f.Den == 0 {
		return f
	}
	if f.Den < 0 {
		f.Num, f.Den = -f.Num, -f.Den
	}
	g := gcd(abs(f.Num), f.Den)
	if g == 0 {
		return f
	}
	return Fraction{Num: f.Num / g, Den: f.Den / g}
}

func (f Fraction) Add(o Fraction) Fraction {
	return Fraction{Num: f.Num*o.Den + o.Num*f.Den, Den: f.Den * o.Den}.Simplify()
}

func (f Fraction) Sub(o Fraction) Fraction {
	return Fraction{Num: f.Num*o.Den - o.Num*f.Den, Den: f.Den * o.Den}.Simplify()
}

func (f Fraction) Mul(o Fraction) Fraction {
	return Fraction{Num: f.Num * o.Num, Den: f.Den * o.Den}.Simplify()
}

// Div multiplies by the reciprocal of o. Division by zero returns a zero
// denominator.
func (f Fraction) Div(o Fraction) Fraction {
	return Fraction{Num: f.Num * o.Den, Den: f.Den * o.Num}.Simplify()
}

// Compare returns -1, 0 or 1 by cross-multiplying.
func (f Fraction) Compare(o Fraction) int {
	l, r := f.Num*o.Den, o.Num*f.Den
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
