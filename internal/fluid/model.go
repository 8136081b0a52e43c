package fluid

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/eqcore/internal/dimen"
)

// ErrInvalidState is returned for a non-positive or non-finite temperature
// or density.
var ErrInvalidState = errors.New("invalid state")

// Fluid evaluates a Helmholtz correlation.
type Fluid struct {
	data Data
}

func newFluid(d *Data) *Fluid {
	return &Fluid{data: *d}
}

// Name returns the fluid's name.
func (f *Fluid) Name() string { return f.data.Name }

// Data returns the coefficient table.
func (f *Fluid) Data() Data { return f.data }

// Cp0 is the ideal-gas isobaric heat capacity at temperature t, J/kg/K.
func (f *Fluid) Cp0(t float64) float64 {
	id := f.data.Ideal
	sum := 0.0
	for _, p := range id.Power {
		sum += p.C * math.Pow(t/id.TStar, p.T)
	}
	for _, e := range id.Exponential {
		x := e.Beta / t
		ex := math.Exp(x)
		em1 := ex - 1
		sum += e.B * x * x * ex / (em1 * em1)
	}
	return id.Cp0Star * sum
}

// reduced returns tau = T*/T and delta = rho/rho*.
func (f *Fluid) reduced(t, rho float64) (tau, delta float64) {
	return f.data.TStar / t, rho / f.data.RhoStar
}

// AlphaR is the reduced residual Helmholtz energy.
func (f *Fluid) AlphaR(tau, delta float64) float64 {
	sum := 0.0
	for _, p := range f.data.Residual {
		term := p.A * math.Pow(tau, p.T) * math.Pow(delta, p.D)
		if p.L > 0 {
			term *= math.Exp(-math.Pow(delta, p.L))
		}
		sum += term
	}
	return sum
}

// AlphaRDelta is the partial derivative of AlphaR with respect to delta.
func (f *Fluid) AlphaRDelta(tau, delta float64) float64 {
	sum := 0.0
	for _, p := range f.data.Residual {
		term := p.A * math.Pow(tau, p.T) * math.Pow(delta, p.D-1)
		if p.L > 0 {
			dl := math.Pow(delta, p.L)
			term *= math.Exp(-dl) * (p.D - p.L*dl)
		} else {
			term *= p.D
		}
		sum += term
	}
	return sum
}

// Z is the compressibility factor p/(rho*R*T).
func (f *Fluid) Z(t, rho float64) (float64, error) {
	if err := checkState(t, rho); err != nil {
		return 0, err
	}
	tau, delta := f.reduced(t, rho)
	return 1 + delta*f.AlphaRDelta(tau, delta), nil
}

// Pressure is p(T, rho) in Pa.
func (f *Fluid) Pressure(t, rho float64) (float64, error) {
	z, err := f.Z(t, rho)
	if err != nil {
		return 0, err
	}
	return rho * f.data.R * t * z, nil
}

func checkState(t, rho float64) error {
	if !(t > 0) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: temperature %g", ErrInvalidState, t)
	}
	if !(rho > 0) || math.IsInf(rho, 0) {
		return fmt.Errorf("%w: density %g", ErrInvalidState, rho)
	}
	return nil
}

// Property is one evaluated quantity with its dimension.
type Property struct {
	Name  string
	Value float64
	Dim   dimen.Handle
}

// propertyDims lists the evaluated properties and their dimensions, in
// report order.
var propertyDims = []struct {
	name, dim string
}{
	{"temperature", "1/1TMP "},
	{"density", "1/1M -3/1L "},
	{"pressure", "1/1M -1/1L -2/1T "},
	{"z", "dimensionless"},
	{"alphar", "dimensionless"},
	{"cp0", "2/1L -2/1T -1/1TMP "},
}

// PropertyDimension returns the interned dimension of the named property.
func PropertyDimension(s *dimen.Store, name string) (dimen.Handle, error) {
	for _, p := range propertyDims {
		if p.name == name {
			return s.Parse(p.dim)
		}
	}
	return dimen.Handle{}, fmt.Errorf("unknown property %q", name)
}

// Props evaluates every property at (t, rho) and tags each with its
// dimension from s.
func (f *Fluid) Props(s *dimen.Store, t, rho float64) ([]Property, error) {
	p, err := f.Pressure(t, rho)
	if err != nil {
		return nil, err
	}
	tau, delta := f.reduced(t, rho)
	values := map[string]float64{
		"temperature": t,
		"density":     rho,
		"pressure":    p,
		"z":           p / (rho * f.data.R * t),
		"alphar":      f.AlphaR(tau, delta),
		"cp0":         f.Cp0(t),
	}

	props := make([]Property, 0, len(propertyDims))
	for _, pd := range propertyDims {
		h, err := s.Parse(pd.dim)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: pd.name, Value: values[pd.name], Dim: h})
	}
	return props, nil
}
