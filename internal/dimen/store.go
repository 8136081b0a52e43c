package dimen

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// Handle is a canonical, immutable reference to a dimension interned in a
// Store. Handles from the same Store are equal (==) exactly when their
// dimensions are structurally the same.
//
// The zero Handle is absent and carries no dimension information.
type Handle struct {
	v *Vector
}

// Valid reports whether h refers to an interned dimension.
func (h Handle) Valid() bool { return h.v != nil }

// Is reports handle identity. This is the fast equality test for interned
// dimensions.
func (h Handle) Is(o Handle) bool { return h.v == o.v }

// Same reports identity or structural equality (see Same). Absent handles are
// never the same as anything.
func (h Handle) Same(o Handle) bool {
	if h.v == nil || o.v == nil {
		return false
	}
	return h.v == o.v || Same(*h.v, *o.v)
}

// Vector returns a copy of the dimension. An absent handle yields the zero
// Vector; check Valid first when the distinction matters.
func (h Handle) Vector() Vector {
	if h.v == nil {
		return Vector{}
	}
	return *h.v
}

// IsWild reports whether h is the wild dimension.
func (h Handle) IsWild() bool { return h.v != nil && h.v.wild }

// String renders the dimension's text form, or "<absent>".
func (h Handle) String() string {
	if h.v == nil {
		return "<absent>"
	}
	return h.v.String()
}

// Store is the interning table for dimensions. It owns every interned Vector
// and keeps them sorted by Compare, unique under it.
//
// Create one Store per compilation session with NewStore and release it with
// Close. The store grows monotonically and never removes an entry.
type Store struct {
	mu     sync.Mutex
	list   []*Vector
	closed bool

	wild          Handle
	dimensionless Handle
	trig          Handle
}

// NewStore creates a store holding the wild, dimensionless and trig
// singletons.
func NewStore() *Store {
	s := &Store{list: make([]*Vector, 0, 200)}
	s.dimensionless = s.FindOrAdd(Vector{})
	s.wild = s.FindOrAdd(WildVector())
	s.trig = s.FindOrAdd(BaseVector(PlaneAngle))
	return s
}

// Wild returns the wild singleton.
func (s *Store) Wild() Handle { return s.wild }

// Dimensionless returns the dimensionless singleton.
func (s *Store) Dimensionless() Handle { return s.dimensionless }

// Trig returns the plane-angle singleton used for trigonometric arguments.
func (s *Store) Trig() Handle { return s.trig }

// FindOrAdd returns the canonical handle for v, interning a private copy if
// no structurally equal vector is present yet.
//
// Panics if the store has been closed.
func (s *Store) FindOrAdd(v Vector) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		panic("dimen: FindOrAdd on closed store")
	}

	i, found := slices.BinarySearchFunc(s.list, v, func(e *Vector, target Vector) int {
		return Compare(*e, target)
	})
	if found {
		return Handle{v: s.list[i]}
	}

	c := new(Vector)
	*c = v
	s.list = slices.Insert(s.list, i, c)

	slog.Debug("dimension interned", "dim", c.String(), "size", len(s.list))
	return Handle{v: c}
}

// Lookup returns the handle for v if it is already interned.
func (s *Store) Lookup(v Vector) (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := slices.BinarySearchFunc(s.list, v, func(e *Vector, target Vector) int {
		return Compare(*e, target)
	})
	if !found {
		return Handle{}, false
	}
	return Handle{v: s.list[i]}, true
}

// Len returns the number of interned dimensions, singletons included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

// All returns every interned handle in store order.
func (s *Store) All() []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Handle, len(s.list))
	for i, v := range s.list {
		out[i] = Handle{v: v}
	}
	return out
}

// Dump writes a header and one text-form line per interned dimension.
func (s *Store) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Dimensions dump"); err != nil {
		return err
	}
	for _, h := range s.All() {
		if _, err := fmt.Fprintln(w, h.String()); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the table. Handles already issued remain readable, but the
// store must not be used again.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	s.closed = true
}
