package funcs

import "fmt"

// ID identifies an elementary function.
type ID int

const (
	Log10 ID = iota
	Ln
	Exp
	Sin
	Cos
	Tan
	Sqr
	Sqrt
	ArcSin
	ArcCos
	ArcTan
	Erf
	Lnm
	Sinh
	Cosh
	Tanh
	ArcSinh
	ArcCosh
	ArcTanh
	Cube
	Cbrt
	Abs
	Hold
)

func (id ID) String() string {
	switch id {
	case Log10:
		return "log10"
	case Ln:
		return "ln"
	case Exp:
		return "exp"
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Tan:
		return "tan"
	case Sqr:
		return "sqr"
	case Sqrt:
		return "sqrt"
	case ArcSin:
		return "arcsin"
	case ArcCos:
		return "arccos"
	case ArcTan:
		return "arctan"
	case Erf:
		return "erf"
	case Lnm:
		return "lnm"
	case Sinh:
		return "sinh"
	case Cosh:
		return "cosh"
	case Tanh:
		return "tanh"
	case ArcSinh:
		return "arcsinh"
	case ArcCosh:
		return "arccosh"
	case ArcTanh:
		return "arctanh"
	case Cube:
		return "cube"
	case Cbrt:
		return "cbrt"
	case Abs:
		return "abs"
	case Hold:
		return "hold"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// Contract is the dimensional contract of a function.
type Contract int

const (
	// ContractDimensionless: argument and result are dimensionless.
	ContractDimensionless Contract = iota

	// ContractWild: the result dimension is derived from the argument by the
	// dimension algebra.
	ContractWild

	// ContractTrig: the argument is a plane angle, the result dimensionless.
	ContractTrig
)

func (c Contract) String() string {
	switch c {
	case ContractDimensionless:
		return "dimensionless"
	case ContractWild:
		return "wild"
	case ContractTrig:
		return "trig"
	default:
		return fmt.Sprintf("Contract(%d)", int(c))
	}
}
