// Package catalog persists interned dimensions in SQLite.
//
// A catalog lets a later session start with the dimensions an earlier one
// discovered. Each row is keyed by the dimension's text signature (the same
// rendering used in diagnostics) and stamped with the ID of the session that
// first saved it. Saving is idempotent: a signature already present is left
// untouched, so the stamp always names the first session.
//
// The database runs in WAL mode with a single connection; a Catalog is safe
// for concurrent use through database/sql.
package catalog
