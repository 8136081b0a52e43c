// Package funcs is the registry of elementary functions available in model
// equations.
//
// Each Func carries three evaluators (value, first derivative, second
// derivative) and a "safe" counterpart of each. The plain evaluators follow
// IEEE-754 and may return NaN or Inf outside the function's domain. The safe
// evaluators never do: they return a finite sentinel together with a SafeErr
// so that a Newton-type solver can reject a trial step and backtrack instead
// of propagating NaN through the Jacobian.
//
// Every Func also declares a dimensional contract (see Contract): the
// transcendental functions work on dimensionless arguments, sin/cos/tan take a
// plane angle, and the power-like functions (sqr, sqrt, cube, cbrt, abs, hold)
// derive their result dimension from the argument.
//
// A Registry is built once with NewRegistry and is immutable afterwards; it
// is safe for concurrent use.
package funcs
