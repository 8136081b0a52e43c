package dimen

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqcore/internal/frac"
)

func handle(t *testing.T, s *Store, text string) Handle {
	t.Helper()
	h, err := s.Parse(text)
	require.NoError(t, err)
	return h
}

func TestScaleHandle_ScenarioLength(t *testing.T) {
	s := NewStore()
	defer s.Close()

	l, err := s.ParseBase("L")
	require.NoError(t, err)

	scaled, err := Scale(l.Vector(), frac.MustNew(2, 1))
	require.NoError(t, err)
	assert.Equal(t, frac.MustNew(2, 1), scaled.Exponent(Length))

	h := s.FindOrAdd(scaled)
	assert.Equal(t, "2/1L ", h.String())

	h2, err := s.ScaleHandle(l, frac.MustNew(2, 1))
	require.NoError(t, err)
	assert.True(t, h.Is(h2))
}

func TestPow_Composes(t *testing.T) {
	s := NewStore()
	defer s.Close()

	l := handle(t, s, "1/1L")

	sq, err := s.Square(l, true)
	require.NoError(t, err)
	cubed, err := s.Pow(3, sq, true)
	require.NoError(t, err)
	six, err := s.Pow(6, l, true)
	require.NoError(t, err)

	assert.True(t, cubed.Is(six))
	assert.Equal(t, "6/1L ", six.String())
}

func TestPow_Special(t *testing.T) {
	s := NewStore()
	defer s.Close()

	got, err := s.Pow(5, s.Wild(), true)
	require.NoError(t, err)
	assert.True(t, got.Is(s.Wild()))

	got, err = s.Pow(5, s.Dimensionless(), true)
	require.NoError(t, err)
	assert.True(t, got.Is(s.Dimensionless()))

	got, err = s.Pow(-2, handle(t, s, "1/1L -1/1T"), true)
	require.NoError(t, err)
	assert.Equal(t, "-2/1L 2/1T ", got.String())

	got, err = s.Pow(0, handle(t, s, "1/1L"), true)
	require.NoError(t, err)
	assert.True(t, got.Is(s.Dimensionless()))
}

func TestPow_Rejects(t *testing.T) {
	s := NewStore()
	defer s.Close()

	_, err := s.Pow(2, handle(t, s, "1/2L"), true)
	assert.True(t, IsFractional(err))

	got, err := s.Pow(2, handle(t, s, "1/2L"), false)
	require.NoError(t, err)
	assert.Equal(t, "1/1L ", got.String())

	_, err = s.Pow(20000, handle(t, s, "2/1L"), false)
	assert.True(t, IsOverflow(err))

	_, err = s.Pow(-20000, handle(t, s, "2/1L"), false)
	assert.True(t, IsOverflow(err))

	_, err = s.Pow(2, Handle{}, false)
	assert.True(t, IsInvalidInput(err))
}

func TestPow_IntLimits(t *testing.T) {
	s := NewStore()
	defer s.Close()
	l := handle(t, s, "1/1L")

	for _, mult := range []int{math.MinInt, math.MaxInt, -frac.Max - 1, frac.Max + 1} {
		_, err := s.Pow(mult, l, false)
		assert.True(t, IsOverflow(err), "Pow(%d)", mult)
	}

	got, err := s.Pow(-frac.Max, l, true)
	require.NoError(t, err)
	assert.Equal(t, "-32767/1L ", got.String())
}

func TestOverflow_NotDoubleWrapped(t *testing.T) {
	s := NewStore()
	defer s.Close()

	_, err := s.Square(handle(t, s, "20000/1L"), false)
	require.True(t, IsOverflow(err))
	assert.Equal(t, 1, strings.Count(err.Error(), "OVERFLOW"), err.Error())

	_, err = s.SumDimensions(handle(t, s, "20000/1L"), handle(t, s, "20000/1L"), false)
	require.True(t, IsOverflow(err))
	assert.Equal(t, 1, strings.Count(err.Error(), "OVERFLOW"), err.Error())
}

func TestSquareHalf_RoundTrip(t *testing.T) {
	s := NewStore()
	defer s.Close()

	l := handle(t, s, "1/1L")
	half, err := s.Half(l, false)
	require.NoError(t, err)
	assert.Equal(t, "1/2L ", half.String())

	back, err := s.Square(half, false)
	require.NoError(t, err)
	assert.True(t, back.Is(l))

	area := handle(t, s, "2/1L")
	root, err := s.Half(area, true)
	require.NoError(t, err)
	assert.True(t, root.Is(l))
}

func TestDerivedOps_Check(t *testing.T) {
	s := NewStore()
	defer s.Close()

	l := handle(t, s, "1/1L")
	frac2 := handle(t, s, "1/2L")

	_, err := s.Half(l, true)
	assert.True(t, IsFractional(err), "odd exponent has no exact square root")

	_, err = s.Square(frac2, true)
	assert.True(t, IsFractional(err))

	_, err = s.Cube(frac2, true)
	assert.True(t, IsFractional(err))

	_, err = s.Third(handle(t, s, "2/1L"), true)
	assert.True(t, IsFractional(err))

	vol := handle(t, s, "3/1L")
	edge, err := s.Third(vol, true)
	require.NoError(t, err)
	assert.True(t, edge.Is(l))

	cubed, err := s.Cube(l, true)
	require.NoError(t, err)
	assert.True(t, cubed.Is(vol))
}

func TestDerivedOps_WildAndAbsent(t *testing.T) {
	s := NewStore()
	defer s.Close()

	ops := map[string]func(Handle, bool) (Handle, error){
		"square": s.Square,
		"half":   s.Half,
		"cube":   s.Cube,
		"third":  s.Third,
	}
	for name, op := range ops {
		got, err := op(s.Wild(), true)
		require.NoError(t, err, name)
		assert.True(t, got.Is(s.Wild()), name)

		_, err = op(Handle{}, false)
		assert.True(t, IsInvalidInput(err), name)
	}
}

func TestSumDiffDimensions(t *testing.T) {
	s := NewStore()
	defer s.Close()

	m := handle(t, s, "1/1M")
	a := handle(t, s, "1/1L -2/1T")

	force, err := s.SumDimensions(m, a, true)
	require.NoError(t, err)
	assert.Equal(t, "1/1M 1/1L -2/1T ", force.String())
	assert.True(t, force.Is(handle(t, s, "1/1M 1/1L -2/1T")))

	back, err := s.DiffDimensions(force, a, true)
	require.NoError(t, err)
	assert.True(t, back.Is(m))

	// A checked operation rejects wild; an unchecked one is absorbed by it.
	_, err = s.SumDimensions(s.Wild(), m, true)
	assert.True(t, IsFractional(err))

	_, err = s.DiffDimensions(m, s.Wild(), true)
	assert.True(t, IsFractional(err))

	w, err := s.SumDimensions(s.Wild(), m, false)
	require.NoError(t, err)
	assert.True(t, w.Is(s.Wild()))

	w, err = s.DiffDimensions(m, s.Wild(), false)
	require.NoError(t, err)
	assert.True(t, w.Is(s.Wild()))

	_, err = s.SumDimensions(m, handle(t, s, "1/2L"), true)
	assert.True(t, IsFractional(err))

	got, err := s.SumDimensions(m, handle(t, s, "1/2L"), false)
	require.NoError(t, err)
	assert.Equal(t, "1/1M 1/2L ", got.String())

	_, err = s.DiffDimensions(Handle{}, m, false)
	assert.True(t, IsInvalidInput(err))
}

func TestCheckMatch(t *testing.T) {
	s := NewStore()
	defer s.Close()

	l := handle(t, s, "1/1L")
	tm := handle(t, s, "1/1T")

	got, err := s.CheckMatch(s.Wild(), l)
	require.NoError(t, err)
	assert.True(t, got.Is(l))

	got, err = s.CheckMatch(l, s.Wild())
	require.NoError(t, err)
	assert.True(t, got.Is(l))

	got, err = s.CheckMatch(s.Wild(), s.Wild())
	require.NoError(t, err)
	assert.True(t, got.Is(s.Wild()))

	got, err = s.CheckMatch(l, l)
	require.NoError(t, err)
	assert.True(t, got.Is(l))

	_, err = s.CheckMatch(l, tm)
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
	assert.Contains(t, err.Error(), `left="1/1L "`)

	_, err = s.CheckMatch(Handle{}, s.Wild())
	assert.True(t, IsInvalidInput(err))

	// Handles from another store still match structurally.
	other := NewStore()
	defer other.Close()
	got, err = s.CheckMatch(l, other.FindOrAdd(BaseVector(Length)))
	require.NoError(t, err)
	assert.True(t, got.Is(l))
}

func TestSame_WildAndInterned(t *testing.T) {
	s := NewStore()
	defer s.Close()

	assert.True(t, s.Wild().Same(s.Wild()))
	assert.False(t, s.Wild().Same(s.Dimensionless()))

	for _, text := range []string{"1/1L", "1/1M -2/1T", "dimensionless"} {
		x := handle(t, s, text)
		got, err := s.CheckMatch(s.Wild(), x)
		require.NoError(t, err)
		assert.True(t, got.Is(x), text)
	}
}
