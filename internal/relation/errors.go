package relation

import (
	"errors"
	"fmt"
)

// ProgramError reports a malformed relation program or a bad evaluation
// request.
type ProgramError struct {
	// Code identifies the error category.
	Code ProgramErrorCode

	// Message is a human-readable description.
	Message string

	// Pos is the index of the offending op or token, or -1.
	Pos int
}

// ProgramErrorCode categorizes program errors.
type ProgramErrorCode string

const (
	// ErrCodeStackUnderflow indicates an op found fewer operands than it needs.
	ErrCodeStackUnderflow ProgramErrorCode = "STACK_UNDERFLOW"

	// ErrCodeUnbalanced indicates the program does not leave exactly one value.
	ErrCodeUnbalanced ProgramErrorCode = "UNBALANCED"

	// ErrCodeUnknownVar indicates a reference to an undeclared variable.
	ErrCodeUnknownVar ProgramErrorCode = "UNKNOWN_VAR"

	// ErrCodeUnknownFunc indicates a call to a function not in the registry.
	ErrCodeUnknownFunc ProgramErrorCode = "UNKNOWN_FUNC"

	// ErrCodeBadToken indicates a token that could not be parsed.
	ErrCodeBadToken ProgramErrorCode = "BAD_TOKEN"

	// ErrCodeExponentRange indicates an integer power beyond MaxExponent.
	ErrCodeExponentRange ProgramErrorCode = "EXPONENT_RANGE"

	// ErrCodeArity indicates a point whose length differs from the variable count.
	ErrCodeArity ProgramErrorCode = "ARITY"
)

func (e *ProgramError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s: %s (at %d)", e.Code, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the ProgramErrorCode of err, or "" if err is not a
// *ProgramError.
func CodeOf(err error) ProgramErrorCode {
	var pe *ProgramError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func errAt(code ProgramErrorCode, pos int, format string, args ...any) *ProgramError {
	return &ProgramError{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
