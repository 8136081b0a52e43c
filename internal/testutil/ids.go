package testutil

// FixedIDGenerator returns the same session ID every time.
//
// Catalog rows are stamped with the session ID, so a fixed generator keeps
// persisted output byte-identical across runs.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator for id. If id is empty, NewID
// returns "test-session-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedIDGenerator{id: id}
}

// NewID returns the fixed ID.
//
// Implements session.IDGenerator.
func (g *FixedIDGenerator) NewID() string {
	return g.id
}
