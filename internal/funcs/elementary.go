package funcs

import (
	"math"
)

// DefaultLnmEpsilon is the threshold below which lnm is linearized.
const DefaultLnmEpsilon = 1.0e-8

// Derivatives of the elementary functions. Names follow the C symbols emitted
// by code generation (see Func.Deriv1CName).

func dln(x float64) float64  { return 1.0 / x }
func dln2(x float64) float64 { return -1.0 / (x * x) }

// lnm is a logarithm that continues linearly below eps, so it is finite and
// C1-continuous everywhere.
func lnm(eps float64) func(float64) float64 {
	c := math.Log(eps) - 1
	return func(x float64) float64 {
		if x > eps {
			return math.Log(x)
		}
		return x/eps + c
	}
}

func dlnm(eps float64) func(float64) float64 {
	return func(x float64) float64 {
		if x > eps {
			return 1.0 / x
		}
		return 1.0 / eps
	}
}

func dlnm2(eps float64) func(float64) float64 {
	return func(x float64) float64 {
		if x > eps {
			return -1.0 / (x * x)
		}
		return 0
	}
}

func dlog10(x float64) float64  { return math.Log10E / x }
func dlog102(x float64) float64 { return -math.Log10E / (x * x) }

func dcos(x float64) float64  { return -math.Sin(x) }
func dcos2(x float64) float64 { return -math.Cos(x) }

func dtan(x float64) float64 {
	c := math.Cos(x)
	return 1.0 / (c * c)
}

func dtan2(x float64) float64 {
	c := math.Cos(x)
	return math.Ldexp(math.Tan(x)/(c*c), 1)
}

func sqr(x float64) float64   { return x * x }
func dsqr(x float64) float64  { return math.Ldexp(x, 1) }
func dsqr2(float64) float64   { return 2.0 }
func dsqrt(x float64) float64 { return 1.0 / math.Ldexp(math.Sqrt(x), 1) }

func dsqrt2(x float64) float64 {
	return -1.0 / math.Ldexp(math.Sqrt(x)*x, 2)
}

func dfabs(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func zero(float64) float64 { return 0 }

func hold(x float64) float64 { return x }

func cube(x float64) float64   { return x * x * x }
func dcube(x float64) float64  { return 3.0 * x * x }
func dcube2(x float64) float64 { return 6.0 * x }

func dcbrt(x float64) float64 {
	c := math.Cbrt(x)
	return (1.0 / 3.0) / (c * c)
}

func dcbrt2(x float64) float64 {
	c := math.Cbrt(x)
	return (-2.0 / 9.0) / math.Pow(c, 5)
}

func dasin(x float64) float64 { return 1.0 / math.Sqrt(1.0-x*x) }

func dasin2(x float64) float64 {
	c := 1.0 - x*x
	return x / (c * math.Sqrt(c))
}

func dacos(x float64) float64 { return -1.0 / math.Sqrt(1.0-x*x) }

func dacos2(x float64) float64 {
	c := 1.0 - x*x
	return -x / (c * math.Sqrt(c))
}

func datan(x float64) float64 { return 1.0 / (1.0 + x*x) }

func datan2(x float64) float64 {
	return -2 * x / sqr(1+x*x)
}

func derf(x float64) float64 {
	return math.Ldexp(math.Exp(-(x*x))/math.Sqrt(math.Pi), 1)
}

func derf2(x float64) float64 {
	return -math.Ldexp(x*math.Exp(-(x*x))/math.Sqrt(math.Pi), 2)
}

func dtanh(x float64) float64 {
	c := math.Cosh(x)
	return 1 / (c * c)
}

func dtanh2(x float64) float64 {
	c := math.Cosh(x)
	return -math.Ldexp(math.Tanh(x), 1) / (c * c)
}

func darcsinh(x float64) float64 { return 1.0 / math.Sqrt(x*x+1.0) }

func darcsinh2(x float64) float64 {
	c := x*x + 1.0
	return -x / math.Sqrt(c*c*c)
}

func darccosh(x float64) float64 { return 1.0 / math.Sqrt(x*x-1.0) }

func darccosh2(x float64) float64 {
	c := x*x - 1.0
	return -x / math.Sqrt(c*c*c)
}

func darctanh(x float64) float64 { return 1.0 / (1 - x*x) }

func darctanh2(x float64) float64 {
	c := 1.0 - x*x
	return math.Ldexp(x/(c*c), 1)
}

// descriptor is the static description of one Func before construction.
type descriptor struct {
	id                                 ID
	name, cname, yname, d1name, d2name string
	contract                           Contract

	value, deriv, deriv2   func(float64) float64
	guard0, guard1, guard2 guardFn
}

// catalog returns the descriptors in registry order.
func catalog(lnmEps float64) []descriptor {
	return []descriptor{
		{
			id: Log10, name: "log10", cname: "log10", yname: "Log10", d1name: "dlog10", d2name: "dlog102",
			contract: ContractDimensionless,
			value:    math.Log10, deriv: dlog10, deriv2: dlog102,
			guard0: logGuard(-huge), guard1: logGuard(huge), guard2: logGuard(-huge),
		},
		{
			id: Ln, name: "ln", cname: "log", yname: "Ln", d1name: "dln", d2name: "dln2",
			contract: ContractDimensionless,
			value:    math.Log, deriv: dln, deriv2: dln2,
			guard0: logGuard(-huge), guard1: logGuard(huge), guard2: logGuard(-huge),
		},
		{
			id: Exp, name: "exp", cname: "exp", yname: "Exp", d1name: "exp", d2name: "exp",
			contract: ContractDimensionless,
			value:    math.Exp, deriv: math.Exp, deriv2: math.Exp,
		},
		{
			id: Sin, name: "sin", cname: "sin", yname: "Sin", d1name: "cos", d2name: "dcos",
			contract: ContractTrig,
			value:    math.Sin, deriv: math.Cos, deriv2: dcos,
		},
		{
			id: Cos, name: "cos", cname: "cos", yname: "Cos", d1name: "dcos", d2name: "dcos2",
			contract: ContractTrig,
			value:    math.Cos, deriv: dcos, deriv2: dcos2,
		},
		{
			id: Tan, name: "tan", cname: "tan", yname: "Tan", d1name: "dtan", d2name: "dtan2",
			contract: ContractTrig,
			value:    math.Tan, deriv: dtan, deriv2: dtan2,
		},
		{
			id: Sqr, name: "sqr", cname: "sqr", yname: "Sqr", d1name: "dsqr", d2name: "dsqr2",
			contract: ContractWild,
			value:    sqr, deriv: dsqr, deriv2: dsqr2,
		},
		{
			id: Sqrt, name: "sqrt", cname: "sqrt", yname: "Sqrt", d1name: "dsqrt", d2name: "dsqrt2",
			contract: ContractWild,
			value:    math.Sqrt, deriv: dsqrt, deriv2: dsqrt2,
			guard0: nonNegGuard, guard1: logGuard(huge), guard2: logGuard(-huge),
		},
		{
			id: ArcSin, name: "arcsin", cname: "asin", yname: "ArcSin", d1name: "dasin", d2name: "dasin2",
			contract: ContractDimensionless,
			value:    math.Asin, deriv: dasin, deriv2: dasin2,
			guard0: unitGuard(nil), guard1: unitGuard(posHuge), guard2: unitGuard(signedHuge),
		},
		{
			id: ArcCos, name: "arccos", cname: "acos", yname: "ArcCos", d1name: "dacos", d2name: "dacos2",
			contract: ContractDimensionless,
			value:    math.Acos, deriv: dacos, deriv2: dacos2,
			guard0: unitGuard(nil), guard1: unitGuard(negHuge),
			guard2: unitGuard(func(x float64) float64 { return -signedHuge(x) }),
		},
		{
			id: ArcTan, name: "arctan", cname: "atan", yname: "ArcTan", d1name: "datan", d2name: "datan2",
			contract: ContractDimensionless,
			value:    math.Atan, deriv: datan, deriv2: datan2,
		},
		{
			id: Erf, name: "erf", cname: "erf", yname: "Erf", d1name: "derf", d2name: "derf2",
			contract: ContractDimensionless,
			value:    math.Erf, deriv: derf, deriv2: derf2,
		},
		{
			id: Lnm, name: "lnm", cname: "lnm", yname: "Lnm", d1name: "dlnm", d2name: "dlnm2",
			contract: ContractDimensionless,
			value:    lnm(lnmEps), deriv: dlnm(lnmEps), deriv2: dlnm2(lnmEps),
		},
		{
			id: Sinh, name: "sinh", cname: "sinh", yname: "Sinh", d1name: "cosh", d2name: "sinh",
			contract: ContractDimensionless,
			value:    math.Sinh, deriv: math.Cosh, deriv2: math.Sinh,
		},
		{
			id: Cosh, name: "cosh", cname: "cosh", yname: "Cosh", d1name: "sinh", d2name: "cosh",
			contract: ContractDimensionless,
			value:    math.Cosh, deriv: math.Sinh, deriv2: math.Cosh,
		},
		{
			id: Tanh, name: "tanh", cname: "tanh", yname: "Tanh", d1name: "dtanh", d2name: "dtanh2",
			contract: ContractDimensionless,
			value:    math.Tanh, deriv: dtanh, deriv2: dtanh2,
		},
		{
			id: ArcSinh, name: "arcsinh", cname: "arcsinh", yname: "ArcSinh", d1name: "darcsinh", d2name: "darcsinh2",
			contract: ContractDimensionless,
			value:    math.Asinh, deriv: darcsinh, deriv2: darcsinh2,
		},
		{
			id: ArcCosh, name: "arccosh", cname: "arccosh", yname: "ArcCosh", d1name: "darccosh", d2name: "darccosh2",
			contract: ContractDimensionless,
			value:    math.Acosh, deriv: darccosh, deriv2: darccosh2,
			guard0: aboveOneGuard(nil), guard1: aboveOneGuard(posHuge), guard2: aboveOneGuard(negHuge),
		},
		{
			id: ArcTanh, name: "arctanh", cname: "arctanh", yname: "ArcTanh", d1name: "darctanh", d2name: "darctanh2",
			contract: ContractDimensionless,
			value:    math.Atanh, deriv: darctanh, deriv2: darctanh2,
			guard0: unitGuard(signedHuge), guard1: unitGuard(posHuge), guard2: unitGuard(signedHuge),
		},
		{
			id: Cube, name: "cube", cname: "cube", yname: "Cube", d1name: "dcube", d2name: "dcube2",
			contract: ContractWild,
			value:    cube, deriv: dcube, deriv2: dcube2,
		},
		{
			id: Cbrt, name: "cbrt", cname: "cbrt", yname: "Cbrt", d1name: "dcbrt", d2name: "dcbrt2",
			contract: ContractWild,
			value:    math.Cbrt, deriv: dcbrt, deriv2: dcbrt2,
			guard1: zeroPoleGuard(huge), guard2: zeroPoleGuard(-huge),
		},
		{
			id: Abs, name: "abs", cname: "fabs", yname: "Abs", d1name: "dfabs", d2name: "dfabs2",
			contract: ContractWild,
			value:    math.Abs, deriv: dfabs, deriv2: zero,
		},
		{
			id: Hold, name: "hold", cname: "hold", yname: "Hold", d1name: "dhold", d2name: "dhold2",
			contract: ContractWild,
			value:    hold, deriv: zero, deriv2: zero,
		},
	}
}
