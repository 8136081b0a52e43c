package funcs

import (
	"log/slog"
	"math"
)

// IPow returns d raised to the integer power i by repeated squaring.
// IPow(d, 0) is 1 for every d, including 0. A zero base with a non-zero
// exponent yields 0, negative exponents included.
func IPow(d float64, i int) float64 {
	if i == 0 {
		return 1
	}
	if d == 0 {
		return 0
	}
	// uint(-i) is the magnitude even for math.MinInt.
	n := uint(i)
	if i < 0 {
		n = uint(-i)
	}
	res, base := 1.0, d
	for n > 0 {
		if n&1 == 1 {
			res *= base
		}
		n >>= 1
		if n > 0 {
			base *= base
		}
	}
	if i < 0 {
		return 1 / res
	}
	return res
}

// ipowShift returns d^(i-k) for d != 0 and small k >= 0 without
// overflowing i-k.
func ipowShift(d float64, i, k int) float64 {
	if i >= math.MinInt+k {
		return IPow(d, i-k)
	}
	return IPow(d, i) / IPow(d, k)
}

// IPowD1 is the derivative of IPow with respect to d. At d == 0 it is
// undefined for i < 1 and reported as 0.
func IPowD1(d float64, i int) float64 {
	if d == 0 && i < 1 {
		slog.Debug("ipow first derivative undefined at zero", "exponent", i)
		return 0
	}
	return float64(i) * ipowShift(d, i, 1)
}

// IPowD2 is the second derivative of IPow with respect to d. At d == 0 it is
// undefined for i < 2 and reported as 0.
func IPowD2(d float64, i int) float64 {
	if d == 0 && i < 2 {
		slog.Debug("ipow second derivative undefined at zero", "exponent", i)
		return 0
	}
	fi := float64(i)
	return fi * (fi - 1) * ipowShift(d, i, 2)
}

// Nint rounds d to the nearest integer, halves away from zero.
func Nint(d float64) int {
	if d >= 0 {
		return int(math.Floor(d + 0.5))
	}
	return -int(math.Floor(0.5 - d))
}
