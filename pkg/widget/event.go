package widget

import (
	"time"

	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/shell"
)

// Event is a user or system occurrence delivered through the event pass.
// Pointer event positions are in the coordinate space of the receiving
// widget; pods translate positions as the event descends the tree.
type Event interface {
	isEvent()
}

// MouseButton identifies which button a mouse event concerns.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all modifiers in m are held.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// Mouse carries the shared fields of all pointer events.
type Mouse struct {
	// Pos is the pointer position in the receiving widget's coordinates.
	Pos geometry.Offset
	// WindowPos is the pointer position in window coordinates.
	WindowPos geometry.Offset
	Button    MouseButton
	Mods      Modifiers
	// Count is the click count for down events (1 click, 2 double-click).
	Count int
}

// Key carries the shared fields of keyboard events.
type Key struct {
	// Name is the logical key name, like "Enter" or "a".
	Name string
	// Rune is the character produced, or 0 for non-printing keys.
	Rune rune
	Mods Modifiers
}

type (
	// MouseDown is a pointer button press.
	MouseDown struct{ Mouse }
	// MouseUp is a pointer button release.
	MouseUp struct{ Mouse }
	// MouseMove is a pointer motion without button change.
	MouseMove struct{ Mouse }
	// Wheel is a scroll event. Delta is in display points.
	Wheel struct {
		Mouse
		Delta geometry.Offset
	}

	// KeyDown is a key press, delivered to the focused widget's subtree.
	KeyDown struct{ Key }
	// KeyUp is a key release.
	KeyUp struct{ Key }

	// Timer reports that a previously scheduled timer fired. It is routed
	// only into subtrees that registered the token.
	Timer struct{ Token shell.TimerToken }

	// AnimFrame is delivered before paint to widgets that requested an
	// animation frame. Interval is the time since the previous frame.
	AnimFrame struct{ Interval time.Duration }

	// WindowSize reports a window resize and always forces a relayout.
	WindowSize struct{ Size geometry.Size }

	// WindowCloseRequested reports that the user asked to close the
	// window. Handling it vetoes the close.
	WindowCloseRequested struct{}
)

func (MouseDown) isEvent()            {}
func (MouseUp) isEvent()              {}
func (MouseMove) isEvent()            {}
func (Wheel) isEvent()                {}
func (KeyDown) isEvent()              {}
func (KeyUp) isEvent()                {}
func (Timer) isEvent()                {}
func (AnimFrame) isEvent()            {}
func (WindowSize) isEvent()           {}
func (WindowCloseRequested) isEvent() {}

// mousePos extracts a pointer event's position, in the coordinate space
// the event is currently expressed in.
func mousePos(ev Event) (geometry.Offset, bool) {
	switch t := ev.(type) {
	case MouseDown:
		return t.Pos, true
	case MouseUp:
		return t.Pos, true
	case MouseMove:
		return t.Pos, true
	case Wheel:
		return t.Pos, true
	}
	return geometry.Offset{}, false
}

// translatePointer rebases a pointer event into a child coordinate space.
// Non-pointer events pass through unchanged.
func translatePointer(ev Event, origin geometry.Offset) Event {
	switch t := ev.(type) {
	case MouseDown:
		t.Pos = t.Pos.Sub(origin)
		return t
	case MouseUp:
		t.Pos = t.Pos.Sub(origin)
		return t
	case MouseMove:
		t.Pos = t.Pos.Sub(origin)
		return t
	case Wheel:
		t.Pos = t.Pos.Sub(origin)
		return t
	}
	return ev
}

// isPointer reports whether the event carries a pointer position.
func isPointer(ev Event) bool {
	_, ok := mousePos(ev)
	return ok
}

// isKey reports whether the event is a keyboard event.
func isKey(ev Event) bool {
	switch ev.(type) {
	case KeyDown, KeyUp:
		return true
	}
	return false
}
