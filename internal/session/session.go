// Package session owns the per-run state of eqcore: the dimension store,
// the function registry, the fluid library and, when configured, the
// dimension catalog.
//
// A session replaces process-wide globals. Everything that interns
// dimensions or looks up functions takes its state from one Session, and
// Close tears it down in reverse order of Open.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/eqcore/internal/catalog"
	"github.com/roach88/eqcore/internal/config"
	"github.com/roach88/eqcore/internal/dimen"
	"github.com/roach88/eqcore/internal/fluid"
	"github.com/roach88/eqcore/internal/funcs"
	"github.com/roach88/eqcore/internal/relation"
)

// IDGenerator generates session identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUIDv4 session IDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Option configures Open.
type Option func(*options)

type options struct {
	ids IDGenerator
}

// WithIDGenerator overrides the session ID source.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session closed")

// Session is one modelling run.
type Session struct {
	id      string
	cfg     config.Config
	store   *dimen.Store
	reg     *funcs.Registry
	fluids  *fluid.Library
	catalog *catalog.Catalog
	closed  bool
}

// Open validates cfg and builds the session state. If cfg names a catalog,
// it is opened, the session is recorded and previously catalogued
// dimensions are interned.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*Session, error) {
	o := options{ids: UUIDGenerator{}}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	lib, err := fluid.Builtin()
	if err != nil {
		return nil, fmt.Errorf("open session: load fluids: %w", err)
	}

	s := &Session{
		id:     o.ids.NewID(),
		cfg:    cfg,
		store:  dimen.NewStore(),
		reg:    funcs.NewRegistry(funcs.WithLnmEpsilon(cfg.Functions.LnmEpsilon)),
		fluids: lib,
	}

	if cfg.Catalog.Path != "" {
		if err := s.openCatalog(ctx); err != nil {
			s.store.Close()
			return nil, fmt.Errorf("open session: %w", err)
		}
	}

	slog.Debug("session opened", "session", s.id, "catalog", cfg.Catalog.Path, "dimensions", s.store.Len())
	return s, nil
}

func (s *Session) openCatalog(ctx context.Context) error {
	c, err := catalog.Open(s.cfg.Catalog.Path)
	if err != nil {
		return err
	}
	err = c.BeginSession(ctx, catalog.Session{
		ID:         s.id,
		Check:      s.cfg.Dimensions.Check,
		LnmEpsilon: s.cfg.Functions.LnmEpsilon,
	})
	if err == nil {
		var n int
		n, err = c.LoadInto(ctx, s.store)
		slog.Debug("catalog loaded", "path", s.cfg.Catalog.Path, "signatures", n)
	}
	if err != nil {
		c.Close()
		return err
	}
	s.catalog = c
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the configuration the session was opened with.
func (s *Session) Config() config.Config { return s.cfg }

// Store returns the session's dimension store.
func (s *Session) Store() *dimen.Store { return s.store }

// Registry returns the session's function registry.
func (s *Session) Registry() *funcs.Registry { return s.reg }

// Fluids returns the fluid library.
func (s *Session) Fluids() *fluid.Library { return s.fluids }

// Catalog returns the open catalog, or nil when none is configured.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Check reports whether integrality validation is enabled.
func (s *Session) Check() bool { return s.cfg.Dimensions.Check }

// Relation parses a postfix program against the session's store and
// registry.
func (s *Session) Relation(vars []relation.Variable, text string) (*relation.Relation, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return relation.Parse(s.store, s.reg, vars, text)
}

// Close saves the store to the catalog, if any, and releases the session.
// Closing twice returns ErrClosed.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	var errs []error
	if s.catalog != nil {
		n, err := s.catalog.Save(ctx, s.store, s.id)
		if err != nil {
			errs = append(errs, fmt.Errorf("save catalog: %w", err))
		} else {
			slog.Debug("catalog saved", "session", s.id, "added", n)
		}
		if err := s.catalog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close catalog: %w", err))
		}
	}
	s.store.Close()
	return errors.Join(errs...)
}
