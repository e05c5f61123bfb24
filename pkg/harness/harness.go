// Package harness provides full-pipeline widget testing without a platform
// backend. A Harness mounts a tree against the headless shell, pumps
// events and frames through the app pipeline, and exposes the recorded
// display list and debug-state snapshots for assertions.
package harness

import (
	"errors"
	"testing"
	"time"

	"github.com/go-quill/quill/pkg/app"
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/shell"
	"github.com/go-quill/quill/pkg/theme"
	"github.com/go-quill/quill/pkg/widget"
)

const (
	// DefaultWidth is the default logical width of the test window.
	DefaultWidth = 800
	// DefaultHeight is the default logical height of the test window.
	DefaultHeight = 600

	// frameInterval is the simulated frame period used by PumpAndSettle.
	frameInterval = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its budget while
// the tree keeps requesting animation frames.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: tree did not settle")

// Options configures a Harness at mount time.
type Options struct {
	// Size is the window size; zero means DefaultWidth x DefaultHeight.
	Size geometry.Size
	// Env is the environment; the zero value means theme defaults.
	Env env.Env
}

// Harness drives a widget tree through the real pass pipeline against a
// headless window with a fake clock.
type Harness[T data.Data[T]] struct {
	t    *testing.T
	app  *app.AppRoot[T]
	win  *shell.Headless
	rec  graphics.Recorder
	size geometry.Size
	last *graphics.DisplayList
}

// New mounts a widget tree with default options and pumps the first frame.
func New[T data.Data[T]](t *testing.T, w widget.Widget[T], initial T) *Harness[T] {
	return NewWithOptions(t, w, initial, Options{})
}

// NewWithOptions mounts a widget tree and pumps the first frame.
func NewWithOptions[T data.Data[T]](t *testing.T, w widget.Widget[T], initial T, opts Options) *Harness[T] {
	t.Helper()
	size := opts.Size
	if size == (geometry.Size{}) {
		size = geometry.Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	e := opts.Env
	if e == (env.Env{}) {
		e = theme.Default(env.Empty())
	}
	win := shell.NewHeadless()
	h := &Harness[T]{
		t:    t,
		win:  win,
		app:  app.NewAppRoot(w, initial, e, win),
		size: size,
	}
	h.app.HandleEvent(widget.WindowSize{Size: size})
	h.Pump()
	return h
}

// App returns the underlying app root.
func (h *Harness[T]) App() *app.AppRoot[T] { return h.app }

// Window returns the headless window for timer and invalidation asserts.
func (h *Harness[T]) Window() *shell.Headless { return h.win }

// Data returns a copy of the current application data.
func (h *Harness[T]) Data() T { return h.app.Data() }

// UpdateData mutates the data outside any event and reconciles the tree.
func (h *Harness[T]) UpdateData(mutate func(*T)) {
	h.app.UpdateData(mutate)
}

// Resize changes the window size and relays the tree out on the next pump.
func (h *Harness[T]) Resize(size geometry.Size) {
	h.size = size
	h.app.HandleEvent(widget.WindowSize{Size: size})
}

// Pump renders one frame and returns its display list. Layout runs only if
// something is dirty; paint is always recorded.
func (h *Harness[T]) Pump() *graphics.DisplayList {
	canvas := h.rec.Begin(h.size)
	h.app.Render(canvas)
	h.last = h.rec.End()
	return h.last
}

// PumpFrame advances one animation frame and renders: fired timers and
// AnimFrame events are delivered, then the frame is painted.
func (h *Harness[T]) PumpFrame() *graphics.DisplayList {
	for _, tok := range h.win.AdvanceTime(frameInterval) {
		h.app.FireTimer(tok)
	}
	h.app.AnimationFrame(frameInterval)
	return h.Pump()
}

// PumpAndSettle pumps frames until no widget wants another animation frame
// and no timer is armed, or the timeout elapses.
func (h *Harness[T]) PumpAndSettle(timeout time.Duration) error {
	for elapsed := time.Duration(0); elapsed < timeout; elapsed += frameInterval {
		h.PumpFrame()
		if !h.app.WantsAnimFrame() && h.win.PendingTimers() == 0 {
			return nil
		}
	}
	return ErrSettleTimeout
}

// Event sends one event through the pipeline and reports whether a widget
// handled it.
func (h *Harness[T]) Event(ev widget.Event) bool {
	return h.app.HandleEvent(ev)
}

// MoveTo sends a pointer move to the given window position.
func (h *Harness[T]) MoveTo(pos geometry.Offset) {
	h.Event(widget.MouseMove{Mouse: widget.Mouse{Pos: pos, WindowPos: pos}})
}

// ClickAt sends a left-button press and release at the given position.
func (h *Harness[T]) ClickAt(pos geometry.Offset) {
	m := widget.Mouse{Pos: pos, WindowPos: pos, Button: widget.ButtonLeft, Count: 1}
	h.Event(widget.MouseDown{Mouse: m})
	h.Event(widget.MouseUp{Mouse: m})
}

// KeyPress sends a key down and up for the named key.
func (h *Harness[T]) KeyPress(name string, r rune) {
	k := widget.Key{Name: name, Rune: r}
	h.Event(widget.KeyDown{Key: k})
	h.Event(widget.KeyUp{Key: k})
}

// AdvanceTime moves the fake clock and routes every fired timer into the
// tree, in deadline order.
func (h *Harness[T]) AdvanceTime(d time.Duration) {
	for _, tok := range h.win.AdvanceTime(d) {
		h.app.FireTimer(tok)
	}
}

// LastFrame returns the display list of the most recent pump, or nil if
// nothing has been pumped.
func (h *Harness[T]) LastFrame() *graphics.DisplayList { return h.last }

// DebugState captures the introspection snapshot of the whole tree.
func (h *Harness[T]) DebugState() widget.DebugState {
	d := h.app.Data()
	return h.app.Root().DebugState(&d)
}
