package fluid

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqcore/internal/dimen"
	"github.com/roach88/eqcore/internal/testutil"
)

func ethanol(t *testing.T) *Fluid {
	t.Helper()
	lib, err := Builtin()
	require.NoError(t, err)
	f, ok := lib.Lookup("ethanol")
	require.True(t, ok)
	return f
}

func TestBuiltin_Ethanol(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, []string{"ethanol"}, lib.Names())

	d := ethanol(t).Data()
	assert.Equal(t, 100, d.Quality)
	assert.Len(t, d.Residual, 23)
	assert.Len(t, d.Ideal.Exponential, 4)
	assert.InDelta(t, 8314.472/46.06844, d.R, 1e-12)
	assert.InDelta(t, 5.991*46.06844, d.RhoC, 1e-9)
	assert.Equal(t, d.Tc, d.TStar)
	assert.Equal(t, d.R, d.Ideal.Cp0Star)
}

// Reference values from REFPROP 8.0.
func TestCp0(t *testing.T) {
	f := ethanol(t)
	tests := []struct{ temp, cp0 float64 }{
		{253.15, 1467.44709062},
		{353.15, 1765.69328102},
		{603.15, 2441.58323879},
	}
	for _, tt := range tests {
		testutil.AssertRelClose(t, tt.cp0, f.Cp0(tt.temp), 1e-9, tt.temp)
	}
}

func TestPressure(t *testing.T) {
	f := ethanol(t)
	tests := []struct{ temp, rho, p float64 }{
		{353.15, 1.61599906386, 1e5},
		{253.15, 822.593570889, 1e5},
		{303.15, 781.220862969, 1e5},
		{453.15, 13.5838550972, 1e6},
	}
	for _, tt := range tests {
		p, err := f.Pressure(tt.temp, tt.rho)
		require.NoError(t, err)
		testutil.AssertRelClose(t, tt.p, p, 1e-6, tt.temp, tt.rho)
	}
}

func TestAlphaRDelta_MatchesFiniteDifference(t *testing.T) {
	f := ethanol(t)
	tau := 513.9 / 353.15
	for _, delta := range []float64{0.005, 0.5, 2.5} {
		alpha := func(d float64) float64 { return f.AlphaR(tau, d) }
		testutil.AssertRelClose(t, testutil.CentralDiff(alpha, delta, 1e-6), f.AlphaRDelta(tau, delta), 1e-6, delta)
	}
}

func TestInvalidState(t *testing.T) {
	f := ethanol(t)
	_, err := f.Pressure(0, 1)
	assert.True(t, errors.Is(err, ErrInvalidState))
	_, err = f.Z(300, -2)
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestProps_Dimensions(t *testing.T) {
	s := dimen.NewStore()
	defer s.Close()
	f := ethanol(t)

	props, err := f.Props(s, 353.15, 1.61599906386)
	require.NoError(t, err)
	require.Len(t, props, 6)

	byName := map[string]Property{}
	for _, p := range props {
		byName[p.Name] = p
	}
	assert.Equal(t, "1/1M -1/1L -2/1T ", byName["pressure"].Dim.String())
	assert.True(t, byName["z"].Dim.Is(s.Dimensionless()))
	assert.Equal(t, "2/1L -2/1T -1/1TMP ", byName["cp0"].Dim.String())
	testutil.AssertRelClose(t, 1e5, byName["pressure"].Value, 1e-6)

	// Pressure divided by density and temperature has the dimension of cp0.
	rt, err := s.SumDimensions(byName["density"].Dim, byName["temperature"].Dim, true)
	require.NoError(t, err)
	h, err := s.DiffDimensions(byName["pressure"].Dim, rt, true)
	require.NoError(t, err)
	assert.True(t, h.Is(byName["cp0"].Dim))

	pd, err := PropertyDimension(s, "pressure")
	require.NoError(t, err)
	assert.True(t, pd.Is(byName["pressure"].Dim))
	_, err = PropertyDimension(s, "viscosity")
	assert.Error(t, err)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"syntax", "fluid: {", ""},
		{"missing", "other: 1", "fluid is required"},
		{"schema", `fluid: {name: "Bad Name"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile("fluid.cue", []byte(tt.src))
			require.Error(t, err)
			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_Duplicate(t *testing.T) {
	src, err := builtin.ReadFile("data/ethanol.cue")
	require.NoError(t, err)
	fsys := fstest.MapFS{
		"a.cue":      {Data: src},
		"b.cue":      {Data: src},
		"notes.txt":  {Data: []byte("ignored")},
		"schema.cue": {Data: []byte("ignored: true")},
	}
	_, err = Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined twice")
}
