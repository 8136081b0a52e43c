package dimen

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes dimension failures.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates an absent handle or unknown base code.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeOverflow indicates an exponent outside the fraction range.
	ErrCodeOverflow ErrorCode = "OVERFLOW"

	// ErrCodeMismatch indicates two dimensions that must agree do not.
	ErrCodeMismatch ErrorCode = "MISMATCH"

	// ErrCodeFractional indicates an operand rejected by an integrality check.
	ErrCodeFractional ErrorCode = "FRACTIONAL"
)

// Error is returned by every fallible dimension operation.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Op names the operation, e.g. "sum" or "pow".
	Op string

	// Message is a human-readable description.
	Message string

	// Left and Right render the operands involved, when known.
	Left, Right string

	// Err is the underlying cause (e.g. frac.ErrOverflow).
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	if e.Left != "" || e.Right != "" {
		msg += fmt.Sprintf(" (left=%q, right=%q)", e.Left, e.Right)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode of err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsMismatch reports whether err is a dimensional mismatch.
func IsMismatch(err error) bool { return CodeOf(err) == ErrCodeMismatch }

// IsOverflow reports whether err is a representation overflow.
func IsOverflow(err error) bool { return CodeOf(err) == ErrCodeOverflow }

// IsInvalidInput reports whether err is an invalid-input failure.
func IsInvalidInput(err error) bool { return CodeOf(err) == ErrCodeInvalidInput }

// IsFractional reports whether err is an integrality-check failure.
func IsFractional(err error) bool { return CodeOf(err) == ErrCodeFractional }

func errAbsent(op string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Op: op, Message: "absent dimension"}
}

func errOverflow(op string, cause error) *Error {
	return &Error{Code: ErrCodeOverflow, Op: op, Message: "exponent not representable", Err: cause}
}

func errFractional(op string, d Vector) *Error {
	return &Error{Code: ErrCodeFractional, Op: op, Message: "operand has unsuitable fractional exponents", Left: d.String()}
}

func errMismatch(op string, a, b Vector) *Error {
	return &Error{Code: ErrCodeMismatch, Op: op, Message: "dimensions do not match", Left: a.String(), Right: b.String()}
}
