// Package dimen implements dimensional analysis for equation-based models.
//
// A physical dimension is a Vector of fractional exponents, one per Base
// dimension, plus a wild flag meaning "not yet known". Vectors are plain
// values: every arithmetic helper (Add, Sub, Scale) returns a fresh Vector and
// never touches its inputs.
//
// Long-lived dimensions live in a Store. Store.FindOrAdd canonicalizes a
// Vector and returns a Handle; structurally equal vectors always map to the
// same Handle, so dimension equality on handles is a pointer comparison
// (Handle.Is). The Store is created with three singletons:
//
//   - Dimensionless: all exponents zero
//   - Wild: unconstrained, unifies with anything
//   - Trig: exponent 1 on the plane-angle slot, the argument of sin/cos/tan
//
// # Absent versus wild
//
// The zero Handle is "absent": the caller has no dimension information at
// all. It is never treated as wild. Every Store operation rejects an absent
// operand with an INVALID_INPUT Error, while a wild operand propagates
// permissively.
//
// # Text form
//
// String renders a vector as "n/dCODE " tokens in declared Base order,
// skipping zero slots, or the literal "dimensionless" or "wild". Parse reads
// the same form back. The form is stable and is used as a persistence key.
//
// # Concurrency
//
// A Store serializes FindOrAdd with a mutex. Handles are immutable once
// issued and may be read from any goroutine.
package dimen
