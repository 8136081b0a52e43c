package catalog

import (
	"context"
	"fmt"

	"github.com/roach88/eqcore/internal/dimen"
)

// Session is the catalog record of one modelling session.
type Session struct {
	ID         string
	Check      bool
	LnmEpsilon float64
}

// BeginSession records a session. Uses ON CONFLICT(id) DO NOTHING, so
// recording the same session twice is a no-op.
func (c *Catalog) BeginSession(ctx context.Context, sess Session) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO sessions (id, check_dims, lnm_epsilon)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, sess.ID, boolToInt(sess.Check), sess.LnmEpsilon)
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return nil
}

// Save writes every dimension interned in s, stamped with sessionID, and
// returns how many were new to the catalog. The session must have been
// recorded with BeginSession.
//
// All rows are written in one transaction.
func (c *Catalog) Save(ctx context.Context, s *dimen.Store, sessionID string) (int, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, h := range s.All() {
		sig := h.String()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO dimensions (signature, session_id, wild)
			VALUES (?, ?, ?)
			ON CONFLICT(signature) DO NOTHING
		`, sig, sessionID, boolToInt(h.IsWild()))
		if err != nil {
			return 0, fmt.Errorf("save %q: %w", sig, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("save %q: %w", sig, err)
		}
		if n == 0 {
			continue
		}
		added++

		if h.IsWild() {
			continue
		}
		v := h.Vector()
		for _, b := range dimen.Bases() {
			e := v.Exponent(b)
			if e.IsZero() {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO dimension_exponents (signature, base, num, den)
				VALUES (?, ?, ?, ?)
			`, sig, b.Code(), e.Num(), e.Den()); err != nil {
				return 0, fmt.Errorf("save %q: %w", sig, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}
	return added, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
