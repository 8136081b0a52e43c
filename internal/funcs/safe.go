package funcs

import (
	"fmt"
	"math"
)

// SafeErr is the status reported by a safe evaluator.
// Larger values are more severe; see Worst.
type SafeErr int

const (
	SafeOK SafeErr = iota
	// SafeRange: the true result overflows float64. The sentinel is
	// ±math.MaxFloat64 with the sign of the overflowed value.
	SafeRange
	// SafePole: the argument sits on a singularity. The sentinel is
	// ±math.MaxFloat64 with the sign of the one-sided limit.
	SafePole
	// SafeDomain: the argument is outside the real domain. The sentinel is 0.
	SafeDomain
)

func (e SafeErr) String() string {
	switch e {
	case SafeOK:
		return "ok"
	case SafeRange:
		return "range error"
	case SafePole:
		return "pole"
	case SafeDomain:
		return "domain error"
	default:
		return fmt.Sprintf("SafeErr(%d)", int(e))
	}
}

// OK reports whether e is SafeOK.
func (e SafeErr) OK() bool { return e == SafeOK }

// Worst returns the more severe of e and o. Use it to accumulate the status
// of a sequence of safe evaluations.
func (e SafeErr) Worst(o SafeErr) SafeErr {
	if o > e {
		return o
	}
	return e
}

// EvalError wraps a non-OK SafeErr as an error.
type EvalError struct {
	Func string
	Arg  float64
	Err  SafeErr
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s(%g): %s", e.Func, e.Arg, e.Err)
}

// safeFn is a safe evaluator.
type safeFn func(x float64) (float64, SafeErr)

// guardFn checks an argument before evaluation. It returns SafeOK when the
// evaluator may run, otherwise the error and the sentinel to return.
type guardFn func(x float64) (float64, SafeErr)

const huge = math.MaxFloat64

// finite maps a plain result onto the safe contract: NaN becomes a domain
// error and ±Inf a range error.
func finite(v float64) (float64, SafeErr) {
	switch {
	case math.IsNaN(v):
		return 0, SafeDomain
	case math.IsInf(v, 1):
		return huge, SafeRange
	case math.IsInf(v, -1):
		return -huge, SafeRange
	default:
		return v, SafeOK
	}
}

// makeSafe combines a plain evaluator with an argument guard.
func makeSafe(f func(float64) float64, guard guardFn) safeFn {
	return func(x float64) (float64, SafeErr) {
		if math.IsNaN(x) {
			return 0, SafeDomain
		}
		if guard != nil {
			if s, err := guard(x); err != SafeOK {
				return s, err
			}
		}
		return finite(f(x))
	}
}

// Guards. The sentinel for a pole is the signed limit approached there.

// logGuard: x < 0 is outside the domain, x == 0 a pole with the given limit.
func logGuard(limit float64) guardFn {
	return func(x float64) (float64, SafeErr) {
		switch {
		case x < 0:
			return 0, SafeDomain
		case x == 0:
			return limit, SafePole
		}
		return 0, SafeOK
	}
}

// nonNegGuard: x < 0 is outside the domain.
func nonNegGuard(x float64) (float64, SafeErr) {
	if x < 0 {
		return 0, SafeDomain
	}
	return 0, SafeOK
}

// zeroPoleGuard: x == 0 is a pole with the given limit.
func zeroPoleGuard(limit float64) guardFn {
	return func(x float64) (float64, SafeErr) {
		if x == 0 {
			return limit, SafePole
		}
		return 0, SafeOK
	}
}

// unitGuard: |x| > 1 is outside the domain. With edgeLimit set, |x| == 1 is a
// pole whose limit is edgeLimit(x).
func unitGuard(edgeLimit func(x float64) float64) guardFn {
	return func(x float64) (float64, SafeErr) {
		ax := math.Abs(x)
		switch {
		case ax > 1:
			return 0, SafeDomain
		case ax == 1 && edgeLimit != nil:
			return edgeLimit(x), SafePole
		}
		return 0, SafeOK
	}
}

// aboveOneGuard: x < 1 is outside the domain. With edgeLimit set, x == 1 is a
// pole with that limit.
func aboveOneGuard(edgeLimit func(x float64) float64) guardFn {
	return func(x float64) (float64, SafeErr) {
		switch {
		case x < 1:
			return 0, SafeDomain
		case x == 1 && edgeLimit != nil:
			return edgeLimit(x), SafePole
		}
		return 0, SafeOK
	}
}

func signedHuge(x float64) float64 {
	return math.Copysign(huge, x)
}

func posHuge(float64) float64 { return huge }

func negHuge(float64) float64 { return -huge }
