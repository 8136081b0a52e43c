package dimen

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/eqcore/internal/frac"
)

// ParseBase interns the dimension with exponent 1 on the base named by code,
// e.g. "L" for length.
func (s *Store) ParseBase(code string) (Handle, error) {
	code = norm.NFC.String(strings.TrimSpace(code))
	b, ok := BaseByCode(code)
	if !ok {
		return Handle{}, &Error{Code: ErrCodeInvalidInput, Op: "parse", Message: fmt.Sprintf("dimension %s unknown", code)}
	}
	return s.FindOrAdd(BaseVector(b)), nil
}

// ParseVector reads the text form produced by Vector.String. Tokens are
// "n/dCODE" (or "nCODE" for integer exponents) separated by whitespace; the
// literals "dimensionless" and "wild" stand alone. A base code may appear at
// most once.
func ParseVector(text string) (Vector, error) {
	text = norm.NFC.String(strings.TrimSpace(text))
	switch text {
	case "wild":
		return WildVector(), nil
	case "dimensionless", "":
		return Vector{}, nil
	}

	var v Vector
	var seen [NumBase]bool
	for _, tok := range strings.Fields(text) {
		i := strings.IndexFunc(tok, isCodeRune)
		if i <= 0 {
			return Vector{}, parseErr(text, fmt.Sprintf("token %q has no exponent", tok))
		}
		b, ok := BaseByCode(tok[i:])
		if !ok {
			return Vector{}, parseErr(text, fmt.Sprintf("dimension %s unknown", tok[i:]))
		}
		if seen[b] {
			return Vector{}, parseErr(text, fmt.Sprintf("dimension %s repeated", tok[i:]))
		}
		f, err := frac.Parse(tok[:i])
		if err != nil {
			return Vector{}, &Error{Code: ErrCodeInvalidInput, Op: "parse", Message: fmt.Sprintf("bad exponent in %q", tok), Left: text, Err: err}
		}
		seen[b] = true
		v.exp[b] = f
	}
	return v, nil
}

// Parse reads the text form and interns the result.
func (s *Store) Parse(text string) (Handle, error) {
	v, err := ParseVector(text)
	if err != nil {
		return Handle{}, err
	}
	return s.FindOrAdd(v), nil
}

func isCodeRune(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func parseErr(text, msg string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Op: "parse", Message: msg, Left: text}
}
