package funcs

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/text/unicode/norm"
)

// Func describes one elementary function. Values are created by NewRegistry
// and are immutable.
type Func struct {
	id       ID
	name     string
	cname    string
	yname    string
	d1cname  string
	d2cname  string
	contract Contract

	value, deriv, deriv2             func(float64) float64
	safeValue, safeDeriv, safeDeriv2 safeFn
}

// ID returns the function's identifier.
func (f *Func) ID() ID { return f.id }

// Name is the name used in model source, e.g. "arcsin".
func (f *Func) Name() string { return f.name }

// CName is the C symbol emitted for the value, e.g. "asin".
func (f *Func) CName() string { return f.cname }

// YName is the display name used when rendering equations.
func (f *Func) YName() string { return f.yname }

// Deriv1CName is the C symbol of the first derivative.
func (f *Func) Deriv1CName() string { return f.d1cname }

// Deriv2CName is the C symbol of the second derivative.
func (f *Func) Deriv2CName() string { return f.d2cname }

// Contract returns the function's dimensional contract.
func (f *Func) Contract() Contract { return f.contract }

func (f *Func) String() string { return f.name }

// Eval returns f(x). Outside the domain the result follows IEEE-754.
func (f *Func) Eval(x float64) float64 { return f.value(x) }

// Deriv returns f'(x).
func (f *Func) Deriv(x float64) float64 { return f.deriv(x) }

// Deriv2 returns the second derivative of f at x.
func (f *Func) Deriv2(x float64) float64 { return f.deriv2(x) }

// EvalSafe returns f(x) or, when the result is not finite, a sentinel and the
// reason. The returned value is never NaN or Inf.
func (f *Func) EvalSafe(x float64) (float64, SafeErr) { return f.safeValue(x) }

// DerivSafe is the safe form of Deriv.
func (f *Func) DerivSafe(x float64) (float64, SafeErr) { return f.safeDeriv(x) }

// Deriv2Safe is the safe form of Deriv2.
func (f *Func) Deriv2Safe(x float64) (float64, SafeErr) { return f.safeDeriv2(x) }

// EvalChecked calls EvalSafe and converts a non-OK status into an *EvalError.
func (f *Func) EvalChecked(x float64) (float64, error) {
	v, status := f.safeValue(x)
	if status != SafeOK {
		return v, &EvalError{Func: f.name, Arg: x, Err: status}
	}
	return v, nil
}

// Registry is the immutable table of elementary functions.
type Registry struct {
	funcs  []*Func
	byID   map[ID]*Func
	lnmEps float64
}

// Option configures a Registry.
type Option func(*Registry)

// WithLnmEpsilon sets the threshold below which lnm is linearized.
// Non-positive or non-finite values are ignored.
func WithLnmEpsilon(eps float64) Option {
	return func(r *Registry) {
		if eps > 0 && !math.IsInf(eps, 0) {
			r.lnmEps = eps
		} else {
			slog.Warn("ignoring invalid lnm epsilon", "epsilon", eps)
		}
	}
}

// NewRegistry builds the function table.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{lnmEps: DefaultLnmEpsilon}
	for _, opt := range opts {
		opt(r)
	}

	descs := catalog(r.lnmEps)
	r.funcs = make([]*Func, 0, len(descs))
	r.byID = make(map[ID]*Func, len(descs))
	for _, d := range descs {
		f := &Func{
			id:         d.id,
			name:       d.name,
			cname:      d.cname,
			yname:      d.yname,
			d1cname:    d.d1name,
			d2cname:    d.d2name,
			contract:   d.contract,
			value:      d.value,
			deriv:      d.deriv,
			deriv2:     d.deriv2,
			safeValue:  makeSafe(d.value, d.guard0),
			safeDeriv:  makeSafe(d.deriv, d.guard1),
			safeDeriv2: makeSafe(d.deriv2, d.guard2),
		}
		r.funcs = append(r.funcs, f)
		r.byID[f.id] = f
	}
	return r
}

// LnmEpsilon returns the lnm threshold the registry was built with.
func (r *Registry) LnmEpsilon() float64 { return r.lnmEps }

// Lookup finds a function by its model-source name. Names are compared after
// NFC normalization and are case-sensitive.
func (r *Registry) Lookup(name string) (*Func, bool) {
	name = norm.NFC.String(name)
	for _, f := range r.funcs {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// MustLookup is Lookup that panics on an unknown name.
func (r *Registry) MustLookup(name string) *Func {
	f, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("funcs: unknown function %q", name))
	}
	return f
}

// LookupByID returns the function with the given identifier.
func (r *Registry) LookupByID(id ID) (*Func, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// Funcs returns the functions in registry order. The slice is a copy.
func (r *Registry) Funcs() []*Func {
	out := make([]*Func, len(r.funcs))
	copy(out, r.funcs)
	return out
}

// Len returns the number of registered functions.
func (r *Registry) Len() int { return len(r.funcs) }
