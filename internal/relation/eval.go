package relation

import (
	"log/slog"
	"math"

	"github.com/roach88/eqcore/internal/funcs"
)

func (r *Relation) checkPoint(x []float64) error {
	if len(x) != len(r.vars) {
		return errAt(ErrCodeArity, -1, "point has %d values, relation has %d variables", len(x), len(r.vars))
	}
	return nil
}

// Residual evaluates the relation at x with the plain evaluators. Outside a
// function's domain the result follows IEEE-754.
func (r *Relation) Residual(x []float64) (float64, error) {
	if err := r.checkPoint(x); err != nil {
		return 0, err
	}
	stack := make([]float64, 0, len(r.ops))
	for _, op := range r.ops {
		switch op.Kind {
		case OpVar:
			stack = append(stack, x[op.Var])
			continue
		case OpConst:
			stack = append(stack, op.Value)
			continue
		}

		top := len(stack) - 1
		switch op.Kind {
		case OpNeg:
			stack[top] = -stack[top]
		case OpIPow:
			stack[top] = funcs.IPow(stack[top], op.Exp)
		case OpFunc:
			stack[top] = op.Func.Eval(stack[top])
		default:
			a, b := stack[top-1], stack[top]
			stack = stack[:top]
			stack[top-1] = arith(op.Kind, a, b)
		}
	}
	return stack[0], nil
}

func arith(k OpKind, a, b float64) float64 {
	switch k {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	default:
		return a / b
	}
}

// jet is a value together with its gradient with respect to every variable.
type jet struct {
	v float64
	g []float64
}

// evaluators selects the plain or safe function family.
type evaluators struct {
	safe bool
}

func (e evaluators) value(f *funcs.Func, x float64) (float64, funcs.SafeErr) {
	if e.safe {
		return f.EvalSafe(x)
	}
	return f.Eval(x), funcs.SafeOK
}

func (e evaluators) deriv(f *funcs.Func, x float64) (float64, funcs.SafeErr) {
	if e.safe {
		return f.DerivSafe(x)
	}
	return f.Deriv(x), funcs.SafeOK
}

// Gradient returns the residual and its gradient at x, computed in forward
// mode with the plain evaluators.
func (r *Relation) Gradient(x []float64) (float64, []float64, error) {
	if err := r.checkPoint(x); err != nil {
		return 0, nil, err
	}
	v, g, _ := r.gradient(x, evaluators{})
	return v, g, nil
}

// GradientSafe is Gradient with the safe evaluators. The residual and every
// gradient entry are finite; the returned status is the worst SafeErr met
// along the way.
func (r *Relation) GradientSafe(x []float64) (float64, []float64, funcs.SafeErr, error) {
	if err := r.checkPoint(x); err != nil {
		return 0, nil, funcs.SafeOK, err
	}
	v, g, status := r.gradient(x, evaluators{safe: true})
	if status != funcs.SafeOK {
		slog.Debug("relation evaluation tripped a safe evaluator", "relation", r.String(), "status", status)
	}
	return v, g, status, nil
}

func (r *Relation) gradient(x []float64, ev evaluators) (float64, []float64, funcs.SafeErr) {
	n := len(r.vars)
	status := funcs.SafeOK
	stack := make([]jet, 0, len(r.ops))

	for _, op := range r.ops {
		switch op.Kind {
		case OpVar:
			g := make([]float64, n)
			g[op.Var] = 1
			stack = append(stack, jet{v: x[op.Var], g: g})
			continue
		case OpConst:
			stack = append(stack, jet{v: op.Value, g: make([]float64, n)})
			continue
		}

		top := len(stack) - 1
		u := &stack[top]
		switch op.Kind {
		case OpNeg:
			u.v = -u.v
			for i := range u.g {
				u.g[i] = -u.g[i]
			}
		case OpIPow:
			d := funcs.IPowD1(u.v, op.Exp)
			u.v = funcs.IPow(u.v, op.Exp)
			scale(u.g, d)
		case OpFunc:
			d, s1 := ev.deriv(op.Func, u.v)
			v, s0 := ev.value(op.Func, u.v)
			status = status.Worst(s0).Worst(s1)
			u.v = v
			scale(u.g, d)
		default:
			a, b := &stack[top-1], stack[top]
			stack = stack[:top]
			status = status.Worst(combine(op.Kind, a, b, ev.safe))
			u = a
		}
		if ev.safe {
			status = status.Worst(clampJet(u))
		}
	}
	return stack[0].v, stack[0].g, status
}

// combine folds b into a.
func combine(k OpKind, a *jet, b jet, safe bool) funcs.SafeErr {
	switch k {
	case OpAdd:
		a.v += b.v
		for i := range a.g {
			a.g[i] += b.g[i]
		}
	case OpSub:
		a.v -= b.v
		for i := range a.g {
			a.g[i] -= b.g[i]
		}
	case OpMul:
		for i := range a.g {
			a.g[i] = a.g[i]*b.v + a.v*b.g[i]
		}
		a.v *= b.v
	case OpDiv:
		if safe && b.v == 0 {
			clear(a.g)
			if a.v == 0 {
				// 0/0 is indeterminate.
				return funcs.SafeDomain
			}
			a.v = math.Copysign(math.MaxFloat64, a.v)
			return funcs.SafePole
		}
		q := a.v / b.v
		for i := range a.g {
			a.g[i] = (a.g[i] - q*b.g[i]) / b.v
		}
		a.v = q
	}
	return funcs.SafeOK
}

func scale(g []float64, d float64) {
	for i := range g {
		g[i] *= d
	}
}

// clampJet replaces non-finite components of u with the safe sentinels.
func clampJet(u *jet) funcs.SafeErr {
	status := funcs.SafeOK
	u.v = clampValue(u.v, &status)
	for i := range u.g {
		u.g[i] = clampValue(u.g[i], &status)
	}
	return status
}

func clampValue(v float64, status *funcs.SafeErr) float64 {
	switch {
	case math.IsNaN(v):
		*status = status.Worst(funcs.SafeDomain)
		return 0
	case math.IsInf(v, 0):
		*status = status.Worst(funcs.SafeRange)
		return math.Copysign(math.MaxFloat64, v)
	}
	return v
}

// Curvature returns the residual at x together with its first and second
// directional derivatives along dir.
func (r *Relation) Curvature(x, dir []float64) (v, slope, curv float64, err error) {
	if err := r.checkPoint(x); err != nil {
		return 0, 0, 0, err
	}
	if err := r.checkPoint(dir); err != nil {
		return 0, 0, 0, err
	}

	type triple struct{ v, d, dd float64 }
	stack := make([]triple, 0, len(r.ops))
	chain := func(u triple, f, f1, f2 float64) triple {
		return triple{v: f, d: f1 * u.d, dd: f2*u.d*u.d + f1*u.dd}
	}

	for _, op := range r.ops {
		switch op.Kind {
		case OpVar:
			stack = append(stack, triple{v: x[op.Var], d: dir[op.Var]})
			continue
		case OpConst:
			stack = append(stack, triple{v: op.Value})
			continue
		}

		top := len(stack) - 1
		u := stack[top]
		switch op.Kind {
		case OpNeg:
			stack[top] = triple{-u.v, -u.d, -u.dd}
		case OpIPow:
			stack[top] = chain(u, funcs.IPow(u.v, op.Exp), funcs.IPowD1(u.v, op.Exp), funcs.IPowD2(u.v, op.Exp))
		case OpFunc:
			stack[top] = chain(u, op.Func.Eval(u.v), op.Func.Deriv(u.v), op.Func.Deriv2(u.v))
		default:
			a, b := stack[top-1], u
			stack = stack[:top]
			var t triple
			switch op.Kind {
			case OpAdd:
				t = triple{a.v + b.v, a.d + b.d, a.dd + b.dd}
			case OpSub:
				t = triple{a.v - b.v, a.d - b.d, a.dd - b.dd}
			case OpMul:
				t = triple{a.v * b.v, a.d*b.v + a.v*b.d, a.dd*b.v + 2*a.d*b.d + a.v*b.dd}
			case OpDiv:
				q := a.v / b.v
				q1 := (a.d - q*b.d) / b.v
				t = triple{q, q1, (a.dd - 2*q1*b.d - q*b.dd) / b.v}
			}
			stack[top-1] = t
		}
	}
	res := stack[0]
	return res.v, res.d, res.dd, nil
}
