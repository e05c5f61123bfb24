// Package shell defines the capability surface the widget tree consumes
// from a platform windowing backend: timers, invalidation, clipboard, and
// window control. The package contains no platform code itself; it provides
// the contract, the timer token allocator, and a headless implementation
// used by tests and the harness.
package shell

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the closed platform error taxonomy. Backends wrap
// these in an *Error; callers test with errors.Is.
var (
	// ErrExists reports that a resource with the same identity already exists.
	ErrExists = errors.New("resource already exists")
	// ErrDropped reports that the backing resource has been destroyed.
	ErrDropped = errors.New("resource dropped")
	// ErrPlatform reports an opaque platform-specific failure.
	ErrPlatform = errors.New("platform failure")
	// ErrUnimplemented reports a feature the backend does not support.
	// Callers are expected to degrade gracefully rather than abort.
	ErrUnimplemented = errors.New("unimplemented on this backend")
)

// Error is a platform-boundary failure.
type Error struct {
	// Op names the operation that failed, like "clipboard.get".
	Op string
	// Err is one of the package sentinels, possibly wrapped further.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("shell: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unimplemented returns the standard fail-soft error for an unsupported
// feature.
func Unimplemented(op string) error {
	return &Error{Op: op, Err: ErrUnimplemented}
}
