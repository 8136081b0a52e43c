package dimen

import (
	"bytes"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqcore/internal/frac"
)

func TestNewStore_Singletons(t *testing.T) {
	s := NewStore()
	defer s.Close()

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Wild().IsWild())
	assert.True(t, s.Dimensionless().Vector().IsDimensionless())
	assert.Equal(t, "1/1P ", s.Trig().String())

	assert.False(t, s.Wild().Is(s.Dimensionless()))
	assert.False(t, s.Trig().Is(s.Dimensionless()))
	assert.False(t, s.Wild().Is(s.Trig()))

	assert.True(t, s.FindOrAdd(Vector{}).Is(s.Dimensionless()))
	assert.True(t, s.FindOrAdd(WildVector()).Is(s.Wild()))
	assert.True(t, s.FindOrAdd(BaseVector(PlaneAngle)).Is(s.Trig()))
}

func TestFindOrAdd_Idempotent(t *testing.T) {
	s := NewStore()
	defer s.Close()

	a := vec(t, "1/1M -2/1T")
	var b Vector
	b.Set(Time, frac.MustNew(-4, 2))
	b.Set(Mass, frac.One)

	ha := s.FindOrAdd(a)
	hb := s.FindOrAdd(b)
	assert.True(t, ha.Is(hb))
	assert.Equal(t, ha, hb)
	assert.True(t, Same(a, b))
	assert.Equal(t, 4, s.Len())

	// The store keeps its own copy.
	a.Set(Length, frac.One)
	assert.Equal(t, "1/1M -2/1T ", ha.String())
}

func TestFindOrAdd_SortedUnique(t *testing.T) {
	s := NewStore()
	defer s.Close()

	for _, text := range []string{"1/1M", "2/1L", "1/1L", "1/1M -2/1T", "1/1L", "wild", "dimensionless"} {
		_, err := s.Parse(text)
		require.NoError(t, err)
	}

	all := s.All()
	require.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.Equal(t, -1, Compare(all[i-1].Vector(), all[i].Vector()),
			"%s should sort before %s", all[i-1], all[i])
	}
}

func TestLookup(t *testing.T) {
	s := NewStore()
	defer s.Close()

	_, ok := s.Lookup(BaseVector(Length))
	assert.False(t, ok)

	h := s.FindOrAdd(BaseVector(Length))
	got, ok := s.Lookup(BaseVector(Length))
	require.True(t, ok)
	assert.True(t, got.Is(h))
}

func TestHandle_Absent(t *testing.T) {
	s := NewStore()
	defer s.Close()

	var absent Handle
	assert.False(t, absent.Valid())
	assert.False(t, absent.IsWild())
	assert.False(t, absent.Same(s.Wild()))
	assert.False(t, s.Wild().Same(absent))
	assert.Equal(t, "<absent>", absent.String())
}

func TestHandle_Same(t *testing.T) {
	s1 := NewStore()
	defer s1.Close()
	s2 := NewStore()
	defer s2.Close()

	// Handles from different stores are distinct but structurally equal.
	a := s1.FindOrAdd(BaseVector(Length))
	b := s2.FindOrAdd(BaseVector(Length))
	assert.False(t, a.Is(b))
	assert.True(t, a.Same(b))
	assert.True(t, s1.Wild().Same(s2.Wild()))
	assert.False(t, s1.Wild().Same(s1.Dimensionless()))
}

func TestFindOrAdd_Concurrent(t *testing.T) {
	s := NewStore()
	defer s.Close()

	const workers = 8
	results := make([]Handle, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var v Vector
			v.Set(Mass, frac.One)
			v.Set(Length, frac.MustNew(-1, 1))
			results[i] = s.FindOrAdd(v)
		}(i)
	}
	wg.Wait()

	for _, h := range results[1:] {
		assert.True(t, h.Is(results[0]))
	}
	assert.Equal(t, 4, s.Len())
}

func TestClose(t *testing.T) {
	s := NewStore()
	h := s.FindOrAdd(BaseVector(Length))
	s.Close()

	assert.Equal(t, "1/1L ", h.String())
	assert.Equal(t, 0, s.Len())
	assert.Panics(t, func() { s.FindOrAdd(BaseVector(Time)) })
}

func TestDump_Golden(t *testing.T) {
	s := NewStore()
	defer s.Close()

	l, err := s.ParseBase("L")
	require.NoError(t, err)
	_, err = s.Pow(2, l, true)
	require.NoError(t, err)
	_, err = s.ParseBase("M")
	require.NoError(t, err)
	_, err = s.Parse("1/1M -2/1T")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "store_dump", buf.Bytes())
}
