// Package errors provides structured error handling for the quill framework.
//
// There is no recoverable error channel inside the pass pipeline; this
// package exists for the boundaries: widget panics recovered by the app
// root, contract violations detected by pods, and shell capability
// failures. All of them are reported to a pluggable handler and the
// pipeline keeps running.
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
	// KindShell indicates a platform shell capability error.
	KindShell
	// KindPass indicates an error raised during a widget tree pass.
	KindPass
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindViolation indicates a widget contract violation detected by a pod.
	KindViolation
	// KindConfig indicates a theme or configuration loading error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindShell:
		return "shell"
	case KindPass:
		return "pass"
	case KindPanic:
		return "panic"
	case KindViolation:
		return "violation"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// FrameworkError represents a structured error in the quill framework.
type FrameworkError struct {
	// Op is the operation that failed (e.g., "widget.Pod.Paint").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Widget names the widget type involved, if known.
	Widget string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FrameworkError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FrameworkError) Unwrap() error {
	return e.Err
}

// PanicError represents a panic recovered at the pass boundary.
type PanicError struct {
	// Op is the operation that panicked (e.g., "app.Root.HandleEvent").
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
