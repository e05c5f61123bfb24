package errors

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// ErrorHandler receives reported framework errors and panics.
type ErrorHandler interface {
	HandleError(err *FrameworkError)
	HandlePanic(err *PanicError)
}

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with Verbose=false.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *FrameworkError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// CaptureStack returns the current goroutine's stack trace.
func CaptureStack() string {
	return string(debug.Stack())
}

// Strict controls how contract violations are treated. When true (typically
// in tests) a violation panics; otherwise it is reported and execution
// continues, since a UI runtime must stay responsive even under internal
// inconsistency.
var Strict bool

// ReportViolation records a widget contract violation such as painting a
// widget that was never laid out.
func ReportViolation(op string, format string, args ...any) {
	err := fmt.Errorf(format, args...)
	if Strict {
		panic(&FrameworkError{Op: op, Kind: KindViolation, Err: err})
	}
	Report(&FrameworkError{
		Op:         op,
		Kind:       KindViolation,
		Err:        err,
		StackTrace: CaptureStack(),
	})
}
