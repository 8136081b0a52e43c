package testutil

import (
	"math"
	"testing"
)

// CentralDiff approximates f'(x) with a central difference of step h.
//
// The error is O(h²); h around 1e-5 gives ~1e-9 accuracy for smooth
// functions with derivatives of order one.
func CentralDiff(f func(float64) float64, x, h float64) float64 {
	return (f(x+h) - f(x-h)) / (2 * h)
}

// SecondDiff approximates the second derivative of f at x with a
// three-point central difference.
//
// Use a larger step than CentralDiff (1e-4 is reasonable) since cancellation
// error grows as 1/h².
func SecondDiff(f func(float64) float64, x, h float64) float64 {
	return (f(x+h) - 2*f(x) + f(x-h)) / (h * h)
}

// RelClose reports whether got is within rel of want, measured relative to
// max(|want|, 1) so that values near zero are compared absolutely.
func RelClose(want, got, rel float64) bool {
	scale := math.Max(math.Abs(want), 1)
	return math.Abs(want-got) <= rel*scale
}

// AssertRelClose fails the test if got is not RelClose to want.
func AssertRelClose(t testing.TB, want, got, rel float64, msgAndArgs ...any) bool {
	t.Helper()
	if RelClose(want, got, rel) {
		return true
	}
	t.Errorf("values differ beyond relative tolerance %g: want %.12g, got %.12g %v", rel, want, got, msgAndArgs)
	return false
}
