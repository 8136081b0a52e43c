package funcs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqcore/internal/testutil"
)

func TestRegistry_Contents(t *testing.T) {
	r := NewRegistry()
	want := []string{
		"log10", "ln", "exp", "sin", "cos", "tan", "sqr", "sqrt",
		"arcsin", "arccos", "arctan", "erf", "lnm", "sinh", "cosh", "tanh",
		"arcsinh", "arccosh", "arctanh", "cube", "cbrt", "abs", "hold",
	}
	require.Equal(t, len(want), r.Len())
	for i, f := range r.Funcs() {
		assert.Equal(t, want[i], f.Name())
		assert.Equal(t, ID(i), f.ID())
		assert.Equal(t, f.ID().String(), f.Name())
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name, cname, yname, d1, d2 string
		contract                   Contract
	}{
		{"ln", "log", "Ln", "dln", "dln2", ContractDimensionless},
		{"sin", "sin", "Sin", "cos", "dcos", ContractTrig},
		{"abs", "fabs", "Abs", "dfabs", "dfabs2", ContractWild},
		{"arcsin", "asin", "ArcSin", "dasin", "dasin2", ContractDimensionless},
		{"sinh", "sinh", "Sinh", "cosh", "sinh", ContractDimensionless},
		{"cbrt", "cbrt", "Cbrt", "dcbrt", "dcbrt2", ContractWild},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := r.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.cname, f.CName())
			assert.Equal(t, tt.yname, f.YName())
			assert.Equal(t, tt.d1, f.Deriv1CName())
			assert.Equal(t, tt.d2, f.Deriv2CName())
			assert.Equal(t, tt.contract, f.Contract())
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup("Sin")
	assert.False(t, ok, "lookup is case-sensitive")
	_, ok = r.Lookup("log")
	assert.False(t, ok, "C names are not model names")

	f, ok := r.LookupByID(Tanh)
	require.True(t, ok)
	assert.Equal(t, "tanh", f.Name())

	assert.Panics(t, func() { r.MustLookup("nope") })
}

func TestRegistry_FuncsIsCopy(t *testing.T) {
	r := NewRegistry()
	fs := r.Funcs()
	fs[0] = nil
	assert.NotNil(t, r.Funcs()[0])
}

func TestSin_AtZero(t *testing.T) {
	f := NewRegistry().MustLookup("sin")
	assert.Equal(t, ContractTrig, f.Contract())
	assert.Equal(t, 0.0, f.Eval(0))
	assert.Equal(t, 1.0, f.Deriv(0))
	assert.Equal(t, 0.0, f.Deriv2(0))
}

// Every derivative must agree with a finite difference of the function one
// order below it.
func TestDerivatives_MatchFiniteDifferences(t *testing.T) {
	points := map[string][]float64{
		"log10":   {0.3, 1, 7.5},
		"ln":      {0.3, 1, 7.5},
		"exp":     {-2, 0, 1.5},
		"sin":     {-1, 0.2, 2},
		"cos":     {-1, 0.2, 2},
		"tan":     {-1, 0.2, 1},
		"sqr":     {-3, 0, 2.5},
		"sqrt":    {0.2, 1, 9},
		"arcsin":  {-0.5, 0, 0.7},
		"arccos":  {-0.5, 0, 0.7},
		"arctan":  {-2, 0, 3},
		"erf":     {-1, 0, 0.8},
		"lnm":     {0.5, 2, 10},
		"sinh":    {-1, 0, 2},
		"cosh":    {-1, 0, 2},
		"tanh":    {-1, 0, 2},
		"arcsinh": {-2, 0, 3},
		"arccosh": {1.5, 2, 5},
		"arctanh": {-0.5, 0, 0.6},
		"cube":    {-2, 0, 1.5},
		"cbrt":    {-8, 0.5, 27},
		"abs":     {-2, 3},
		"hold":    {-2, 3},
	}
	r := NewRegistry()
	require.Len(t, points, r.Len())

	for _, f := range r.Funcs() {
		for _, x := range points[f.Name()] {
			if f.ID() == Hold {
				// hold is the identity with a zero derivative.
				assert.Equal(t, 0.0, f.Deriv(x))
				continue
			}
			d1 := testutil.CentralDiff(f.Eval, x, 1e-6)
			testutil.AssertRelClose(t, f.Deriv(x), d1, 1e-5, f.Name(), x)

			d2 := testutil.CentralDiff(f.Deriv, x, 1e-6)
			testutil.AssertRelClose(t, f.Deriv2(x), d2, 1e-5, f.Name(), x)
		}
	}
}

func TestLnm_Branches(t *testing.T) {
	const eps = 1e-8
	f := NewRegistry().MustLookup("lnm")

	assert.Equal(t, math.Log(2), f.Eval(2))
	assert.Equal(t, 0.5, f.Deriv(2))
	assert.Equal(t, -0.25, f.Deriv2(2))

	// Linear continuation at and below eps.
	assert.InDelta(t, math.Log(eps), f.Eval(eps), 1e-12)
	assert.InDelta(t, math.Log(eps)-1, f.Eval(0), 1e-12)
	assert.InDelta(t, -1/eps+math.Log(eps)-1, f.Eval(-1), 1e-6)
	assert.Equal(t, 1/eps, f.Deriv(-5))
	assert.Equal(t, 0.0, f.Deriv2(-5))

	// Finite everywhere, so the safe form never reports.
	v, status := f.EvalSafe(-100)
	assert.Equal(t, SafeOK, status)
	assert.False(t, math.IsNaN(v))
}

func TestLnm_CustomEpsilon(t *testing.T) {
	r := NewRegistry(WithLnmEpsilon(0.5))
	assert.Equal(t, 0.5, r.LnmEpsilon())
	f := r.MustLookup("lnm")
	assert.InDelta(t, math.Log(0.5)-1, f.Eval(0), 1e-15)
	assert.Equal(t, 2.0, f.Deriv(0.25))

	r = NewRegistry(WithLnmEpsilon(-1))
	assert.Equal(t, DefaultLnmEpsilon, r.LnmEpsilon())
}
