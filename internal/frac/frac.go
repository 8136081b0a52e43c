// Package frac provides exact rational numbers with 16-bit parts, used as the
// exponents of physical dimensions.
//
// The representation is deliberately small: a numerator and a positive
// denominator, each bounded by Max in magnitude. Every result is reduced to
// lowest terms, and any result that cannot be represented is reported as
// ErrOverflow instead of wrapping.
//
// The denominator is stored biased by one, so the zero value of Fraction is
// valid and equal to 0/1. A zeroed dimension vector is therefore
// dimensionless without explicit initialization.
package frac

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Max is the largest magnitude of a numerator or denominator.
// The negative range is clamped to -Max so that negation never overflows.
const Max = math.MaxInt16

var (
	ErrZeroDenominator = errors.New("frac: zero denominator")
	ErrOverflow        = errors.New("frac: value exceeds representable range")
	ErrSyntax          = errors.New("frac: invalid fraction syntax")
)

// Fraction is a reduced rational number num/den with den > 0.
// Two valid fractions are equal exactly when == reports them equal.
type Fraction struct {
	num int16
	dm1 int16 // denominator minus one
}

// Common values.
var (
	Zero = Fraction{}
	One  = Fraction{num: 1}
)

// New returns num/den reduced to lowest terms with a positive denominator.
func New(num, den int) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	return reduce(int64(num), int64(den))
}

// MustNew is like New but panics on error. Intended for constants.
func MustNew(num, den int) Fraction {
	f, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return f
}

// FromInt returns n/1.
func FromInt(n int) (Fraction, error) {
	return New(n, 1)
}

// reduce normalizes a 64-bit intermediate and checks the 16-bit bounds.
func reduce(num, den int64) (Fraction, error) {
	if num == 0 {
		return Fraction{}, nil
	}
	// Negating MinInt64 wraps.
	if num == math.MinInt64 || den == math.MinInt64 {
		return Fraction{}, ErrOverflow
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)
	num /= g
	den /= g
	if num > Max || num < -Max || den < 1 || den > Max {
		return Fraction{}, ErrOverflow
	}
	return Fraction{num: int16(num), dm1: int16(den - 1)}, nil
}

// Num returns the numerator.
func (f Fraction) Num() int { return int(f.num) }

// Den returns the denominator, always >= 1.
func (f Fraction) Den() int { return int(f.dm1) + 1 }

// IsZero reports whether f == 0.
func (f Fraction) IsZero() bool { return f.num == 0 }

// IsInt reports whether the denominator is 1.
func (f Fraction) IsInt() bool { return f.dm1 == 0 }

// Add returns f + g.
func (f Fraction) Add(g Fraction) (Fraction, error) {
	fd, gd := int64(f.Den()), int64(g.Den())
	return reduce(int64(f.num)*gd+int64(g.num)*fd, fd*gd)
}

// Sub returns f - g.
func (f Fraction) Sub(g Fraction) (Fraction, error) {
	fd, gd := int64(f.Den()), int64(g.Den())
	return reduce(int64(f.num)*gd-int64(g.num)*fd, fd*gd)
}

// Mul returns f * g.
func (f Fraction) Mul(g Fraction) (Fraction, error) {
	return reduce(int64(f.num)*int64(g.num), int64(f.Den())*int64(g.Den()))
}

// Neg returns -f. It cannot overflow.
func (f Fraction) Neg() Fraction {
	return Fraction{num: -f.num, dm1: f.dm1}
}

// Cmp compares f and g by value and returns -1, 0 or +1.
func (f Fraction) Cmp(g Fraction) int {
	l := int64(f.num) * int64(g.Den())
	r := int64(g.num) * int64(f.Den())
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// Compare is Cmp as a free function, for use with slices and sort helpers.
func Compare(f, g Fraction) int { return f.Cmp(g) }

// Float64 returns the nearest float64 value.
func (f Fraction) Float64() float64 {
	return float64(f.num) / float64(f.Den())
}

// String renders f as "num/den", always with an explicit denominator.
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.num, f.Den())
}

// Parse reads "num/den" or a bare integer.
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, hasDen := strings.Cut(s, "/")
	num, err := strconv.ParseInt(numStr, 10, 32)
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	den := int64(1)
	if hasDen {
		den, err = strconv.ParseInt(denStr, 10, 32)
		if err != nil {
			return Fraction{}, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	return New(int(num), int(den))
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
