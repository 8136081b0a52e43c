package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqcore/internal/catalog"
	"github.com/roach88/eqcore/internal/config"
	"github.com/roach88/eqcore/internal/relation"
	"github.com/roach88/eqcore/internal/testutil"
)

func TestOpen_Defaults(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.Default())
	require.NoError(t, err)

	_, err = uuid.Parse(s.ID())
	assert.NoError(t, err, "default IDs are UUIDs")
	assert.True(t, s.Check())
	assert.Nil(t, s.Catalog())
	assert.Equal(t, config.DefaultLnmEpsilon, s.Registry().LnmEpsilon())
	assert.Equal(t, 3, s.Store().Len())

	_, ok := s.Fluids().Lookup("ethanol")
	assert.True(t, ok)

	require.NoError(t, s.Close(ctx))
	assert.ErrorIs(t, s.Close(ctx), ErrClosed)
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Functions.LnmEpsilon = -1
	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_LnmEpsilonFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Functions.LnmEpsilon = 1e-3
	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close(context.Background())
	assert.Equal(t, 1e-3, s.Registry().LnmEpsilon())
}

func TestRelation(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.Default())
	require.NoError(t, err)

	length, err := s.Store().ParseBase("L")
	require.NoError(t, err)
	r, err := s.Relation([]relation.Variable{{Name: "x", Dim: length}}, "x sqr sqrt x -")
	require.NoError(t, err)

	h, err := r.Dimension(s.Store(), s.Check())
	require.NoError(t, err)
	assert.True(t, h.Is(length))

	require.NoError(t, s.Close(ctx))
	_, err = s.Relation(nil, "1")
	assert.ErrorIs(t, err, ErrClosed)
}

// Dimensions discovered in one session are available in the next.
func TestCatalog_PersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "dims.db")

	first, err := Open(ctx, cfg, WithIDGenerator(testutil.NewFixedIDGenerator("first")))
	require.NoError(t, err)
	_, err = first.Store().Parse("1/1M -1/1L -2/1T ")
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second, err := Open(ctx, cfg, WithIDGenerator(testutil.NewFixedIDGenerator("second")))
	require.NoError(t, err)
	assert.Equal(t, 4, second.Store().Len())
	require.NoError(t, second.Close(ctx))

	c, err := catalog.Open(cfg.Catalog.Path)
	require.NoError(t, err)
	defer c.Close()
	entries, err := c.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	for _, e := range entries {
		assert.Equal(t, "first", e.SessionID, e.Signature)
	}
	sess, err := c.SessionOf(ctx, "second")
	require.NoError(t, err)
	assert.True(t, sess.Check)
}
