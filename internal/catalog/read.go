package catalog

import (
	"context"
	"fmt"

	"github.com/roach88/eqcore/internal/dimen"
)

// Entry is one catalogued dimension.
type Entry struct {
	Signature string `json:"signature"`
	SessionID string `json:"session_id"`
	Wild      bool   `json:"wild"`
}

// Entries returns every catalogued dimension in insertion order.
func (c *Catalog) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT signature, session_id, wild
		FROM dimensions
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var wild int
		if err := rows.Scan(&e.Signature, &e.SessionID, &wild); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Wild = wild != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// LoadInto interns every catalogued dimension into s and returns how many
// signatures were read.
func (c *Catalog) LoadInto(ctx context.Context, s *dimen.Store) (int, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if _, err := s.Parse(e.Signature); err != nil {
			return 0, fmt.Errorf("load %q: %w", e.Signature, err)
		}
	}
	return len(entries), nil
}

// WithBase returns the signatures that carry a non-zero exponent on b,
// ordered by signature.
func (c *Catalog) WithBase(ctx context.Context, b dimen.Base) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT signature FROM dimension_exponents
		WHERE base = ?
		ORDER BY signature ASC
	`, b.Code())
	if err != nil {
		return nil, fmt.Errorf("query base %s: %w", b.Code(), err)
	}
	defer rows.Close()

	var sigs []string
	for rows.Next() {
		var sig string
		if err := rows.Scan(&sig); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		sigs = append(sigs, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signatures: %w", err)
	}
	return sigs, nil
}

// SessionOf returns the session recorded for id.
func (c *Catalog) SessionOf(ctx context.Context, id string) (Session, error) {
	var sess Session
	var check int
	err := c.db.QueryRowContext(ctx, `
		SELECT id, check_dims, lnm_epsilon FROM sessions WHERE id = ?
	`, id).Scan(&sess.ID, &check, &sess.LnmEpsilon)
	if err != nil {
		return Session{}, fmt.Errorf("session %s: %w", id, err)
	}
	sess.Check = check != 0
	return sess, nil
}
