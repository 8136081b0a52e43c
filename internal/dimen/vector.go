package dimen

import (
	"fmt"
	"strings"

	"github.com/roach88/eqcore/internal/frac"
)

// Vector is a dimension by value: one exponent per Base plus a wild flag.
// The zero Vector is dimensionless.
//
// When wild is set the exponents are meaningless and every operation ignores
// them.
type Vector struct {
	exp  [NumBase]frac.Fraction
	wild bool
}

// WildVector returns a fresh wild vector.
func WildVector() Vector {
	return Vector{wild: true}
}

// BaseVector returns a vector with exponent 1 on b.
func BaseVector(b Base) Vector {
	var v Vector
	if b.valid() {
		v.exp[b] = frac.One
	}
	return v
}

// Clear resets v to dimensionless (all zero, not wild).
func (v *Vector) Clear() {
	*v = Vector{}
}

// SetWild marks v as wild.
func (v *Vector) SetWild() {
	v.wild = true
}

// Set assigns the exponent of b. Out-of-range bases are ignored.
func (v *Vector) Set(b Base, f frac.Fraction) {
	if b.valid() {
		v.exp[b] = f
	}
}

// Exponent returns the exponent of b.
func (v Vector) Exponent(b Base) frac.Fraction {
	if !b.valid() {
		return frac.Zero
	}
	return v.exp[b]
}

// IsWild reports whether v is wild.
func (v Vector) IsWild() bool { return v.wild }

// IsDimensionless reports whether v is not wild and all exponents are zero.
func (v Vector) IsDimensionless() bool {
	return v == Vector{}
}

// Fractional reports whether v is wild or has any non-integer exponent.
func (v Vector) Fractional() bool {
	if v.wild {
		return true
	}
	for _, f := range v.exp {
		if !f.IsInt() {
			return true
		}
	}
	return false
}

// Odd reports whether v is wild or has any exponent that is not an even
// integer; such a vector has no exact square root.
func (v Vector) Odd() bool {
	return v.notMultipleOf(2)
}

// NonCubic reports whether v is wild or has any exponent that is not an
// integer multiple of three.
func (v Vector) NonCubic() bool {
	return v.notMultipleOf(3)
}

func (v Vector) notMultipleOf(n int) bool {
	if v.wild {
		return true
	}
	for _, f := range v.exp {
		if !f.IsInt() || f.Num()%n != 0 {
			return true
		}
	}
	return false
}

// maxNumerator returns the largest absolute numerator across slots.
func (v Vector) maxNumerator() int {
	biggest := 0
	for _, f := range v.exp {
		n := f.Num()
		if n < 0 {
			n = -n
		}
		if n > biggest {
			biggest = n
		}
	}
	return biggest
}

// Same reports structural equality: both wild, or neither wild and every
// exponent equal. Two wild vectors are always the same.
func Same(a, b Vector) bool {
	if a.wild || b.wild {
		return a.wild && b.wild
	}
	return a.exp == b.exp
}

// Compare is the total order of the interning store. Wild sorts before every
// other vector; otherwise vectors compare slot by slot in Base order.
func Compare(a, b Vector) int {
	if a.wild {
		if b.wild {
			return 0
		}
		return -1
	}
	if b.wild {
		return 1
	}
	for i := range a.exp {
		if c := a.exp[i].Cmp(b.exp[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Add returns the slot-wise sum of exponents (the dimension of a product).
// A wild operand yields a wild result.
func Add(a, b Vector) (Vector, error) {
	return combine("add", a, b, frac.Fraction.Add)
}

// Sub returns the slot-wise difference of exponents (the dimension of a
// quotient). A wild operand yields a wild result.
func Sub(a, b Vector) (Vector, error) {
	return combine("sub", a, b, frac.Fraction.Sub)
}

func combine(op string, a, b Vector, fn func(frac.Fraction, frac.Fraction) (frac.Fraction, error)) (Vector, error) {
	if a.wild || b.wild {
		return WildVector(), nil
	}
	var out Vector
	for i := range out.exp {
		f, err := fn(a.exp[i], b.exp[i])
		if err != nil {
			return Vector{}, errOverflow(op, err)
		}
		out.exp[i] = f
	}
	return out, nil
}

// Scale multiplies every exponent by f. Wild is returned unchanged.
func Scale(v Vector, f frac.Fraction) (Vector, error) {
	if v.wild {
		return v, nil
	}
	var out Vector
	for i := range out.exp {
		s, err := f.Mul(v.exp[i])
		if err != nil {
			return Vector{}, errOverflow("scale", err)
		}
		out.exp[i] = s
	}
	return out, nil
}

// String renders the stable text form: "n/dCODE " per non-zero slot, or
// "dimensionless", or "wild".
func (v Vector) String() string {
	if v.wild {
		return "wild"
	}
	var sb strings.Builder
	for i, f := range v.exp {
		if f.IsZero() {
			continue
		}
		fmt.Fprintf(&sb, "%d/%d%s ", f.Num(), f.Den(), baseCodes[i])
	}
	if sb.Len() == 0 {
		return "dimensionless"
	}
	return sb.String()
}
