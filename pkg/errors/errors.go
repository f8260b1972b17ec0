// Package errors provides structured error reporting for the drawer widget
// and its hosts.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindAttach indicates the drawer was given the wrong panes or host at construction.
	KindAttach
	// KindConfig indicates an invalid configuration value or file.
	KindConfig
	// KindParsing indicates a persisted state or script payload could not be decoded.
	KindParsing
	// KindState indicates an operation was invoked in a state that does not allow it.
	KindState
	// KindRender indicates a host rendering failure.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindAttach:
		return "attach"
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindState:
		return "state"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// DrawerError is a structured error carrying the failing operation and its category.
type DrawerError struct {
	// Op is the operation that failed (e.g., "drawer.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DrawerError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DrawerError) Unwrap() error {
	return e.Err
}

// New returns a DrawerError for op wrapping err.
func New(op string, kind ErrorKind, err error) *DrawerError {
	return &DrawerError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// Errorf returns a DrawerError for op with a formatted message.
func Errorf(op string, kind ErrorKind, format string, args ...any) *DrawerError {
	return New(op, kind, fmt.Errorf(format, args...))
}

// IsKind reports whether err is a DrawerError of the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if de, ok := err.(*DrawerError); ok && de.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "term.frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to decode a payload.
type ParseError struct {
	// Source names where the payload came from (e.g., "saved state").
	Source string
	// DataType is the expected type name.
	DataType string
	// Reason describes what was wrong with the payload.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %s: %s", e.DataType, e.Source, e.Reason)
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	// Field is the configuration key (e.g., "drawer.menu_offset").
	Field string
	// Value is the offending value.
	Value any
	// Reason explains the constraint that was violated.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// ErrorHandler receives errors reported through this package.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *DrawerError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
