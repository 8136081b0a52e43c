package funcs

import (
	"fmt"
	"log/slog"

	"github.com/roach88/eqcore/internal/dimen"
)

// Dimension returns the canonical handle for f's contract: the trig singleton
// for sin/cos/tan, wild for the power-like functions and dimensionless
// otherwise.
func (f *Func) Dimension(s *dimen.Store) dimen.Handle {
	switch f.contract {
	case ContractTrig:
		return s.Trig()
	case ContractWild:
		return s.Wild()
	default:
		return s.Dimensionless()
	}
}

// Dimension is the nil-tolerant form of Func.Dimension. A nil function is
// reported and treated as dimensionless.
func Dimension(s *dimen.Store, f *Func) dimen.Handle {
	if f == nil {
		slog.Warn("dimension requested for nil function")
		return s.Dimensionless()
	}
	return f.Dimension(s)
}

// ApplyDimension computes the dimension of f(arg).
//
// Dimensionless functions require a dimensionless argument and trig functions
// a plane angle (wild unifies with either); both return dimensionless. The
// power-like functions map the argument through the corresponding dimension
// algebra operation, with check forwarded to it.
func ApplyDimension(s *dimen.Store, f *Func, arg dimen.Handle, check bool) (dimen.Handle, error) {
	if f == nil {
		return dimen.Handle{}, &dimen.Error{
			Code:    dimen.ErrCodeInvalidInput,
			Op:      "apply",
			Message: "function is nil",
		}
	}
	if !arg.Valid() {
		return dimen.Handle{}, &dimen.Error{
			Code:    dimen.ErrCodeInvalidInput,
			Op:      f.name,
			Message: "argument dimension is absent",
		}
	}

	switch f.contract {
	case ContractTrig:
		if _, err := s.CheckMatch(arg, s.Trig()); err != nil {
			return dimen.Handle{}, fmt.Errorf("%s argument must be an angle: %w", f.name, err)
		}
		return s.Dimensionless(), nil
	case ContractDimensionless:
		if _, err := s.CheckMatch(arg, s.Dimensionless()); err != nil {
			return dimen.Handle{}, fmt.Errorf("%s argument must be dimensionless: %w", f.name, err)
		}
		return s.Dimensionless(), nil
	}

	switch f.id {
	case Sqr:
		return s.Square(arg, check)
	case Sqrt:
		return s.Half(arg, check)
	case Cube:
		return s.Cube(arg, check)
	case Cbrt:
		return s.Third(arg, check)
	default:
		return arg, nil
	}
}
