package lrcalc

import (
	"errors"
	"fmt"
)

// Kind classifies failures of tokenizing, parsing and evaluating.
type Kind int8

// Failure kinds.
const (
	NoFailure         Kind = iota
	InvalidToken           // unrecognized character, malformed literal, unknown identifier
	UnexpectedToken        // no parser action for the current lookahead
	UnexpectedEnd          // input ended mid-derivation
	ZeroDivision           // division or modulo by zero
	InvalidArgs            // wrong arity or out-of-range argument
	UnknownIdentifier      // registry could not resolve a name
)

var kindNames = [...]string{"ok", "invalid token", "unexpected token",
	"unexpected end of input", "division by zero", "invalid arguments", "unknown identifier"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error makes a Kind usable as a target for errors.Is:
//
//    if errors.Is(err, lrcalc.ZeroDivision) { … }
//
func (k Kind) Error() string {
	return k.String()
}

// Error is the failure type of this module. Every failure returned from
// evaluation is an *Error or wraps one.
type Error struct {
	Kind   Kind
	Detail string // human readable detail
	Span   Span   // input position, if known
}

// Errorf creates a new failure of kind k.
func Errorf(k Kind, format string, args ...interface{}) error {
	return &Error{Kind: k, Detail: fmt.Sprintf(format, args...)}
}

// ErrorAt creates a new failure of kind k for an input span.
func ErrorAt(k Kind, span Span, format string, args ...interface{}) error {
	return &Error{Kind: k, Detail: fmt.Sprintf(format, args...), Span: span}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Is matches a failure against a Kind or against another *Error of the same kind.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind == t
	case *Error:
		return e.Kind == t.Kind
	}
	return false
}

// KindOf extracts the failure kind of err. It returns NoFailure for nil
// and for errors not created by this module.
func KindOf(err error) Kind {
	if err == nil {
		return NoFailure
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return NoFailure
}
