package dimen

import (
	"github.com/roach88/eqcore/internal/frac"
)

var (
	fracTwo   = frac.MustNew(2, 1)
	fracHalf  = frac.MustNew(1, 2)
	fracThree = frac.MustNew(3, 1)
	fracThird = frac.MustNew(1, 3)
)

// Square returns the dimension of x^2. With check set, a dimension carrying
// fractional exponents is rejected.
func (s *Store) Square(h Handle, check bool) (Handle, error) {
	return s.scaleChecked("square", h, fracTwo, check, Vector.Fractional)
}

// Half returns the dimension of sqrt(x). With check set, any exponent that
// is not an even integer is rejected.
func (s *Store) Half(h Handle, check bool) (Handle, error) {
	return s.scaleChecked("sqrt", h, fracHalf, check, Vector.Odd)
}

// Cube returns the dimension of x^3. With check set, a dimension carrying
// fractional exponents is rejected.
func (s *Store) Cube(h Handle, check bool) (Handle, error) {
	return s.scaleChecked("cube", h, fracThree, check, Vector.Fractional)
}

// Third returns the dimension of cbrt(x). With check set, any exponent that
// is not an integer multiple of three is rejected.
func (s *Store) Third(h Handle, check bool) (Handle, error) {
	return s.scaleChecked("cbrt", h, fracThird, check, Vector.NonCubic)
}

func (s *Store) scaleChecked(op string, h Handle, f frac.Fraction, check bool, reject func(Vector) bool) (Handle, error) {
	if !h.Valid() {
		return Handle{}, errAbsent(op)
	}
	if h.IsWild() {
		return s.wild, nil
	}
	v := h.Vector()
	if check && reject(v) {
		return Handle{}, errFractional(op, v)
	}
	scaled, err := Scale(v, f)
	if err != nil {
		return Handle{}, err
	}
	return s.FindOrAdd(scaled), nil
}

// Pow returns the dimension of x^mult. Wild and dimensionless are returned
// unchanged. With check set, a dimension carrying fractional exponents is
// rejected. A power that would push any numerator past frac.Max fails with
// OVERFLOW before any arithmetic is attempted.
func (s *Store) Pow(mult int, h Handle, check bool) (Handle, error) {
	if !h.Valid() {
		return Handle{}, errAbsent("pow")
	}
	if h.IsWild() || h.Is(s.dimensionless) {
		return h, nil
	}
	v := h.Vector()
	if check && v.Fractional() {
		return Handle{}, errFractional("pow", v)
	}
	if mult < -frac.Max || mult > frac.Max {
		return Handle{}, errOverflow("pow", frac.ErrOverflow)
	}
	m := mult
	if m < 0 {
		m = -m
	}
	if m*v.maxNumerator() > frac.Max {
		return Handle{}, errOverflow("pow", frac.ErrOverflow)
	}
	f, err := frac.New(mult, 1)
	if err != nil {
		return Handle{}, errOverflow("pow", err)
	}
	scaled, err := Scale(v, f)
	if err != nil {
		return Handle{}, err
	}
	return s.FindOrAdd(scaled), nil
}

// ScaleHandle returns the interned dimension of h with every exponent
// multiplied by f.
func (s *Store) ScaleHandle(h Handle, f frac.Fraction) (Handle, error) {
	if !h.Valid() {
		return Handle{}, errAbsent("scale")
	}
	scaled, err := Scale(h.Vector(), f)
	if err != nil {
		return Handle{}, err
	}
	return s.FindOrAdd(scaled), nil
}

// SumDimensions adds the exponents of a and b and interns the result. With
// check set, both operands must be free of fractional exponents, and a wild
// operand fails that check. Otherwise a wild operand yields the wild
// singleton.
func (s *Store) SumDimensions(a, b Handle, check bool) (Handle, error) {
	return s.merge("sum", a, b, check, Add)
}

// DiffDimensions subtracts the exponents of b from a and interns the result,
// with the same validation as SumDimensions.
func (s *Store) DiffDimensions(a, b Handle, check bool) (Handle, error) {
	return s.merge("diff", a, b, check, Sub)
}

func (s *Store) merge(op string, a, b Handle, check bool, fn func(Vector, Vector) (Vector, error)) (Handle, error) {
	if !a.Valid() || !b.Valid() {
		return Handle{}, errAbsent(op)
	}
	va, vb := a.Vector(), b.Vector()
	if check {
		if va.Fractional() {
			return Handle{}, errFractional(op, va)
		}
		if vb.Fractional() {
			return Handle{}, errFractional(op, vb)
		}
	}
	if va.IsWild() || vb.IsWild() {
		return s.wild, nil
	}
	out, err := fn(va, vb)
	if err != nil {
		return Handle{}, err
	}
	return s.FindOrAdd(out), nil
}

// CheckMatch unifies two dimensions. A wild operand yields the other one;
// equal dimensions yield a; anything else is a MISMATCH.
func (s *Store) CheckMatch(a, b Handle) (Handle, error) {
	if !a.Valid() || !b.Valid() {
		return Handle{}, errAbsent("match")
	}
	if a.IsWild() {
		return b, nil
	}
	if b.IsWild() || a.Is(b) {
		return a, nil
	}
	va, vb := a.Vector(), b.Vector()
	if Compare(va, vb) == 0 {
		return a, nil
	}
	return Handle{}, errMismatch("match", va, vb)
}
