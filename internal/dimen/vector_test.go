package dimen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqcore/internal/frac"
)

func vec(t *testing.T, text string) Vector {
	t.Helper()
	v, err := ParseVector(text)
	require.NoError(t, err)
	return v
}

func TestBaseCodes(t *testing.T) {
	codes := make([]string, 0, NumBase)
	for _, b := range Bases() {
		codes = append(codes, b.Code())
	}
	assert.Equal(t, []string{"M", "Q", "L", "T", "TMP", "C", "E", "LUM", "P", "S"}, codes)

	b, ok := BaseByCode("TMP")
	require.True(t, ok)
	assert.Equal(t, Temperature, b)
	assert.Equal(t, "temperature", b.String())

	_, ok = BaseByCode("X")
	assert.False(t, ok)
	assert.Equal(t, "", Base(42).Code())
}

func TestClear(t *testing.T) {
	v := vec(t, "1/1M -2/1T")
	v.SetWild()
	v.Clear()
	assert.True(t, v.IsDimensionless())
	assert.False(t, v.IsWild())
}

func TestSame(t *testing.T) {
	wild := WildVector()
	var none Vector

	assert.True(t, Same(wild, wild))
	assert.True(t, Same(wild, WildVector()))
	assert.False(t, Same(wild, none))
	assert.False(t, Same(none, wild))
	assert.True(t, Same(none, Vector{}))

	// Exponents are ignored once a vector is wild.
	w2 := vec(t, "3/1L")
	w2.SetWild()
	assert.True(t, Same(wild, w2))

	assert.True(t, Same(vec(t, "1/1M -2/1T"), vec(t, "1/1M -2/1T")))
	assert.False(t, Same(vec(t, "1/1M -2/1T"), vec(t, "1/1M -1/1T")))
}

func TestSame_SeparatelyBuilt(t *testing.T) {
	var a Vector
	a.Set(Mass, frac.One)
	a.Set(Time, frac.MustNew(-2, 1))

	b, err := Sub(BaseVector(Mass), vec(t, "2/1T"))
	require.NoError(t, err)

	assert.True(t, Same(a, b))
}

func TestCompare_TotalOrder(t *testing.T) {
	ordered := []Vector{
		WildVector(),
		vec(t, "-1/1L"),
		{},
		vec(t, "1/1P"),
		vec(t, "1/2L"),
		vec(t, "1/1L"),
		vec(t, "1/1M -2/1T"),
		vec(t, "1/1M"),
		vec(t, "1/1M 1/1L"),
	}

	for i, a := range ordered {
		for j, b := range ordered {
			got := Compare(a, b)
			switch {
			case i < j:
				assert.Equal(t, -1, got, "%s vs %s", a, b)
			case i > j:
				assert.Equal(t, 1, got, "%s vs %s", a, b)
			default:
				assert.Equal(t, 0, got, "%s vs %s", a, b)
				assert.True(t, Same(a, b))
			}
		}
	}
}

func TestAddSub(t *testing.T) {
	sum, err := Add(vec(t, "1/1M 1/1L"), vec(t, "-2/1T 1/1L"))
	require.NoError(t, err)
	assert.Equal(t, "1/1M 2/1L -2/1T ", sum.String())

	diff, err := Sub(vec(t, "1/1L"), vec(t, "1/1T"))
	require.NoError(t, err)
	assert.Equal(t, "1/1L -1/1T ", diff.String())

	w, err := Add(WildVector(), vec(t, "1/1L"))
	require.NoError(t, err)
	assert.True(t, w.IsWild())

	w, err = Sub(vec(t, "1/1L"), WildVector())
	require.NoError(t, err)
	assert.True(t, w.IsWild())
}

func TestAdd_Overflow(t *testing.T) {
	var big Vector
	big.Set(Length, frac.MustNew(frac.Max, 1))

	_, err := Add(big, BaseVector(Length))
	require.Error(t, err)
	assert.True(t, IsOverflow(err))
	assert.ErrorIs(t, err, frac.ErrOverflow)
}

func TestScale(t *testing.T) {
	half := frac.MustNew(1, 2)

	for _, f := range []frac.Fraction{frac.Zero, frac.One, half, frac.MustNew(-7, 3)} {
		got, err := Scale(Vector{}, f)
		require.NoError(t, err)
		assert.True(t, got.IsDimensionless(), "scale by %s", f)
	}

	got, err := Scale(vec(t, "2/1L -1/1T"), half)
	require.NoError(t, err)
	assert.Equal(t, "1/1L -1/2T ", got.String())

	w, err := Scale(WildVector(), half)
	require.NoError(t, err)
	assert.True(t, w.IsWild())
}

func TestPredicates(t *testing.T) {
	assert.True(t, WildVector().Fractional())
	assert.False(t, vec(t, "3/1L").Fractional())
	assert.True(t, vec(t, "1/2L").Fractional())

	assert.False(t, vec(t, "2/1L -4/1T").Odd())
	assert.True(t, vec(t, "3/1L").Odd())
	assert.False(t, Vector{}.Odd())

	assert.False(t, vec(t, "3/1L -6/1T").NonCubic())
	assert.True(t, vec(t, "2/1L").NonCubic())
}

func TestString(t *testing.T) {
	assert.Equal(t, "wild", WildVector().String())
	assert.Equal(t, "dimensionless", Vector{}.String())
	assert.Equal(t, "1/1M -1/1L -2/1T ", vec(t, "-2/1T 1/1M -1/1L").String())
	assert.Equal(t, "1/2TMP ", vec(t, "1/2TMP").String())
}
