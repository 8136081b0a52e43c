package relation

import (
	"fmt"

	"github.com/roach88/eqcore/internal/dimen"
	"github.com/roach88/eqcore/internal/funcs"
)

// Dimension infers the dimension of the relation's value.
//
// Sums and differences unify their operands with CheckMatch. Products and
// quotients add and subtract exponents, integer powers scale them, and
// function calls apply the callee's contract. With check set, the exponent
// arithmetic rejects operands carrying fractional exponents.
//
// The error wraps a *dimen.Error and names the offending op.
func (r *Relation) Dimension(s *dimen.Store, check bool) (dimen.Handle, error) {
	stack := make([]dimen.Handle, 0, len(r.ops))
	for i, op := range r.ops {
		switch op.Kind {
		case OpVar:
			stack = append(stack, r.vars[op.Var].Dim)
			continue
		case OpConst:
			h := op.Dim
			if !h.Valid() {
				h = s.Dimensionless()
			}
			stack = append(stack, h)
			continue
		}

		top := len(stack) - 1
		var (
			h   dimen.Handle
			err error
		)
		switch op.Kind {
		case OpNeg:
			h = stack[top]
		case OpIPow:
			h, err = s.Pow(op.Exp, stack[top], check)
		case OpFunc:
			h, err = funcs.ApplyDimension(s, op.Func, stack[top], check)
		default:
			a, b := stack[top-1], stack[top]
			stack = stack[:top]
			top--
			switch op.Kind {
			case OpAdd, OpSub:
				h, err = s.CheckMatch(a, b)
			case OpMul:
				h, err = s.SumDimensions(a, b, check)
			case OpDiv:
				h, err = s.DiffDimensions(a, b, check)
			}
		}
		if err != nil {
			return dimen.Handle{}, fmt.Errorf("op %d (%s): %w", i, r.opName(op), err)
		}
		stack[top] = h
	}
	return stack[0], nil
}

func (r *Relation) opName(op Op) string {
	switch op.Kind {
	case OpFunc:
		return op.Func.Name()
	case OpIPow:
		return fmt.Sprintf("^%d", op.Exp)
	default:
		return op.Kind.String()
	}
}
