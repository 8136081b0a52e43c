package relation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/eqcore/internal/dimen"
	"github.com/roach88/eqcore/internal/frac"
	"github.com/roach88/eqcore/internal/funcs"
)

// MaxExponent bounds the magnitude of an integer power. Larger powers cannot
// be represented in a dimension exponent.
const MaxExponent = frac.Max

// OpKind is the kind of a postfix op.
type OpKind int

const (
	OpVar OpKind = iota
	OpConst
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpIPow
	OpFunc
)

func (k OpKind) String() string {
	switch k {
	case OpVar:
		return "var"
	case OpConst:
		return "const"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpNeg:
		return "neg"
	case OpIPow:
		return "ipow"
	case OpFunc:
		return "func"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// arity returns how many operands k pops.
func (k OpKind) arity() int {
	switch k {
	case OpVar, OpConst:
		return 0
	case OpNeg, OpIPow, OpFunc:
		return 1
	default:
		return 2
	}
}

// Op is one instruction of a relation program.
type Op struct {
	Kind OpKind

	// Var is the variable index for OpVar.
	Var int

	// Value and Dim describe an OpConst. A zero Dim means dimensionless.
	Value float64
	Dim   dimen.Handle

	// Exp is the exponent of an OpIPow.
	Exp int

	// Func is the callee of an OpFunc.
	Func *funcs.Func
}

// Variable is a relation input.
type Variable struct {
	Name string
	Dim  dimen.Handle
}

// Relation is a validated postfix program over a fixed set of variables.
// It is immutable and safe for concurrent evaluation.
type Relation struct {
	vars []Variable
	ops  []Op
}

// New validates ops against vars and returns the relation.
func New(vars []Variable, ops []Op) (*Relation, error) {
	depth := 0
	for i, op := range ops {
		if n := op.Kind.arity(); depth < n {
			return nil, errAt(ErrCodeStackUnderflow, i, "%s needs %d operand(s), have %d", op.Kind, n, depth)
		}
		switch op.Kind {
		case OpVar:
			if op.Var < 0 || op.Var >= len(vars) {
				return nil, errAt(ErrCodeUnknownVar, i, "variable index %d out of range", op.Var)
			}
		case OpFunc:
			if op.Func == nil {
				return nil, errAt(ErrCodeUnknownFunc, i, "function is nil")
			}
		case OpIPow:
			if err := checkExponent(op.Exp, i); err != nil {
				return nil, err
			}
		}
		depth += 1 - op.Kind.arity()
	}
	if depth != 1 {
		return nil, errAt(ErrCodeUnbalanced, -1, "program leaves %d values on the stack", depth)
	}
	return &Relation{
		vars: append([]Variable(nil), vars...),
		ops:  append([]Op(nil), ops...),
	}, nil
}

func checkExponent(n, pos int) error {
	if n < -MaxExponent || n > MaxExponent {
		return errAt(ErrCodeExponentRange, pos, "exponent %d outside [-%d, %d]", n, MaxExponent, MaxExponent)
	}
	return nil
}

// Vars returns the relation's variables.
func (r *Relation) Vars() []Variable { return append([]Variable(nil), r.vars...) }

// NumVars returns the number of variables.
func (r *Relation) NumVars() int { return len(r.vars) }

// Ops returns the relation's program.
func (r *Relation) Ops() []Op { return append([]Op(nil), r.ops...) }

// String renders the program in the postfix syntax accepted by Parse.
func (r *Relation) String() string {
	var b strings.Builder
	for i, op := range r.ops {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch op.Kind {
		case OpVar:
			b.WriteString(r.vars[op.Var].Name)
		case OpConst:
			b.WriteString(strconv.FormatFloat(op.Value, 'g', -1, 64))
			if op.Dim.Valid() && !op.Dim.Vector().IsDimensionless() {
				b.WriteString("[" + strings.ReplaceAll(strings.TrimSpace(op.Dim.String()), " ", ",") + "]")
			}
		case OpIPow:
			b.WriteString("^" + strconv.Itoa(op.Exp))
		case OpFunc:
			b.WriteString(op.Func.Name())
		default:
			b.WriteString(op.Kind.String())
		}
	}
	return b.String()
}
