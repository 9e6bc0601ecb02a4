// Package taylorerr defines the error kinds raised while building and using
// Taylor expansions.
package taylorerr

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeInvalidOrder    ErrorType = "InvalidOrder"
	TypeDifferentiation ErrorType = "DifferentiationError"
	TypeSubstitution    ErrorType = "SubstitutionError"
	TypeParse           ErrorType = "ParseError"
	TypeInvalidRange    ErrorType = "InvalidRange"
	TypeInvalidConfig   ErrorType = "InvalidConfig"
	TypeExport          ErrorType = "ExportError"
)

// Error is a categorised error. Err, when set, is the underlying cause.
type Error struct {
	Type ErrorType
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same type. It lets callers
// write errors.Is(err, taylorerr.New(taylorerr.TypeInvalidOrder, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}

// New creates an error of the given type.
func New(typ ErrorType, msg string) *Error {
	return &Error{Type: typ, Msg: msg}
}

// Newf creates an error of the given type with a formatted message.
func Newf(typ ErrorType, format string, a ...any) *Error {
	return &Error{Type: typ, Msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches a type and message to an existing error.
func Wrap(typ ErrorType, err error, msg string) *Error {
	return &Error{Type: typ, Msg: msg, Err: err}
}

// Is reports whether any error in err's chain is an *Error of type typ.
func Is(err error, typ ErrorType) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Type == typ {
			return true
		}
		err = e.Err
	}
	return false
}

// TypeOf returns the type of the outermost *Error in err's chain, or "" if
// there is none.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}
