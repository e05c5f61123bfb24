package shell

import (
	"time"

	"github.com/go-quill/quill/pkg/geometry"
)

// Cursor identifies a pointer cursor shape.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorIBeam
	CursorCrosshair
	CursorPointer
	CursorNotAllowed
	CursorResizeLeftRight
	CursorResizeUpDown
)

func (c Cursor) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorIBeam:
		return "ibeam"
	case CursorCrosshair:
		return "crosshair"
	case CursorPointer:
		return "pointer"
	case CursorNotAllowed:
		return "not-allowed"
	case CursorResizeLeftRight:
		return "resize-left-right"
	case CursorResizeUpDown:
		return "resize-up-down"
	default:
		return "unknown"
	}
}

// Clipboard is typed byte payload storage keyed by format identifier, with
// a convenience path for plain text. Backends missing clipboard support
// return ErrUnimplemented; reads then behave as "no data".
type Clipboard interface {
	PutString(s string) error
	GetString() (string, error)
	PutFormat(format string, payload []byte) error
	GetFormat(format string) ([]byte, error)
}

// WindowHandle is the capability interface the widget tree uses to talk to
// its host window. All methods must be called from the UI thread.
type WindowHandle interface {
	// Invalidate requests a repaint of the whole window.
	Invalidate()
	// InvalidateRect requests a repaint of a region in window coordinates.
	InvalidateRect(r geometry.Rect)
	// RequestAnimFrame asks the host to deliver an animation frame event
	// before the next paint.
	RequestAnimFrame()

	// ScheduleTimer arms a one-shot timer and returns its token.
	ScheduleTimer(after time.Duration) TimerToken
	// CancelTimer disarms a pending timer. Canceling an already fired or
	// unknown token is a no-op.
	CancelTimer(tok TimerToken)

	// Clipboard returns the window's clipboard capability.
	Clipboard() Clipboard

	SetTitle(title string)
	SetCursor(c Cursor)
	// Close requests the window be closed. The close is delivered back to
	// the widget tree as a window lifecycle event, not performed inline.
	Close()
}
