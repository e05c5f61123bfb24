// Package app owns the pass pipeline: it receives platform events from a
// shell window, runs them through the widget tree, and sequences the
// follow-up passes (command dispatch, route lifecycles, update, layout,
// paint) in the order the tree protocol requires.
//
// The pipeline is single-threaded. Everything here runs on the UI thread;
// other goroutines reach it only by handing commands to ExternalHandle.
package app

import (
	"time"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	quillerrors "github.com/go-quill/quill/pkg/errors"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/shell"
	"github.com/go-quill/quill/pkg/widget"
)

// maxDispatchRounds bounds the command/lifecycle settling loop after an
// event. Widgets that keep submitting commands from command handlers would
// otherwise livelock the pipeline.
const maxDispatchRounds = 16

// AppRoot hosts one widget tree in one window. It owns the application
// data, the environment, and the queue of pending commands, and drives
// every pass over the tree.
type AppRoot[T data.Data[T]] struct {
	root   *widget.Root[T]
	window shell.WindowHandle
	queue  *widget.CommandQueue

	data T
	env  env.Env

	size     geometry.Size
	focus    widget.WidgetID
	external *ExternalHandle
}

// NewAppRoot builds the tree around the given root widget and delivers
// WidgetAdded to every widget in it. The tree is live afterwards: events
// may be handed to it immediately.
func NewAppRoot[T data.Data[T]](w widget.Widget[T], initial T, e env.Env, win shell.WindowHandle) *AppRoot[T] {
	queue := &widget.CommandQueue{}
	a := &AppRoot[T]{
		root:   widget.NewRoot(w, widget.NewContextState(win, queue)),
		window: win,
		queue:  queue,
		data:   initial,
		env:    e,
	}
	a.run("app.AppRoot.New", func() {
		a.root.SendLifecycle(widget.WidgetAdded{}, &a.data, a.env)
	})
	a.settle()
	return a
}

// Data returns a copy of the current application data.
func (a *AppRoot[T]) Data() T { return a.data }

// Env returns the current environment.
func (a *AppRoot[T]) Env() env.Env { return a.env }

// Focused returns the id of the focused widget, or NoWidget.
func (a *AppRoot[T]) Focused() widget.WidgetID { return a.focus }

// Root exposes the root pod for inspection (debug-state queries, tests).
func (a *AppRoot[T]) Root() *widget.Pod[T] { return a.root.Pod() }

// HandleEvent runs one platform event through the tree and then settles
// the pipeline: queued commands are dispatched, route lifecycles run, and
// an update pass reconciles any data mutation. It reports whether a widget
// handled the event.
func (a *AppRoot[T]) HandleEvent(ev widget.Event) bool {
	if resize, ok := ev.(widget.WindowSize); ok {
		a.size = resize.Size
	}
	var handled bool
	a.run("app.AppRoot.HandleEvent", func() {
		handled, _ = a.root.SendEvent(ev, &a.data, a.env)
	})
	if _, ok := ev.(widget.WindowCloseRequested); ok && !handled {
		a.window.Close()
	}
	a.settle()
	return handled
}

// FireTimer routes a fired timer token into the tree.
func (a *AppRoot[T]) FireTimer(tok shell.TimerToken) {
	a.HandleEvent(widget.Timer{Token: tok})
}

// AnimationFrame delivers an AnimFrame to the subtrees that requested one.
// The caller passes the time since the previous frame; a zero interval is
// delivered as-is for the first frame.
func (a *AppRoot[T]) AnimationFrame(interval time.Duration) {
	if !a.root.Pod().WantsAnimFrame() {
		return
	}
	a.HandleEvent(widget.AnimFrame{Interval: interval})
}

// WantsAnimFrame reports whether any widget asked for another frame.
func (a *AppRoot[T]) WantsAnimFrame() bool {
	return a.root.Pod().WantsAnimFrame()
}

// UpdateData mutates the application data outside the event pass (from a
// menu, a background result handed to the UI thread) and reconciles the
// tree with an update pass.
func (a *AppRoot[T]) UpdateData(mutate func(*T)) {
	mutate(&a.data)
	a.run("app.AppRoot.UpdateData", func() {
		a.root.RunUpdate(&a.data, a.env)
	})
	a.settle()
}

// SetEnv replaces the environment, as a theme hot-swap does, and runs an
// update pass so every widget sees the change.
func (a *AppRoot[T]) SetEnv(e env.Env) {
	a.env = e
	a.run("app.AppRoot.SetEnv", func() {
		a.root.RunUpdate(&a.data, a.env)
	})
	a.settle()
}

// NeedsLayout reports whether the next Render must lay the tree out.
func (a *AppRoot[T]) NeedsLayout() bool { return a.root.Pod().NeedsLayout() }

// NeedsPaint reports whether the tree has pending paint damage.
func (a *AppRoot[T]) NeedsPaint() bool { return a.root.Pod().NeedsPaint() }

// Render runs the layout pass if anything is dirty and paints the tree
// onto the canvas. The window size must have been established by a
// WindowSize event first.
func (a *AppRoot[T]) Render(canvas graphics.Canvas) {
	a.run("app.AppRoot.Render", func() {
		if a.root.Pod().NeedsLayout() {
			a.root.RunLayout(a.size, &a.data, a.env)
		}
		a.root.PaintInto(canvas, &a.data, a.env)
	})
	a.settle()
}

// run executes one pass with panic recovery. A panicking widget is
// reported and the pipeline keeps going; the tree may be visually stale
// but the process survives.
func (a *AppRoot[T]) run(op string, pass func()) {
	defer func() {
		if r := recover(); r != nil {
			quillerrors.ReportPanic(&quillerrors.PanicError{
				Op:         op,
				Value:      r,
				StackTrace: quillerrors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	pass()
}

// settle drains the consequences of the last pass: queued commands become
// CommandEvent passes, structural changes route WidgetAdded, disabled and
// focus changes route their lifecycles, and a final update pass reconciles
// data mutation. Each consequence can raise more, so the loop repeats
// until quiet or the round cap trips.
func (a *AppRoot[T]) settle() {
	for round := 0; ; round++ {
		if round == maxDispatchRounds {
			quillerrors.ReportViolation("app.AppRoot.settle",
				"command dispatch did not settle; widgets are submitting commands in a loop")
			a.queue.Drain()
			return
		}
		quiet := true

		for _, cmd := range a.queue.Drain() {
			quiet = false
			a.run("app.AppRoot.DispatchCommand", func() {
				a.root.SendEvent(widget.CommandEvent{Command: cmd}, &a.data, a.env)
			})
		}
		if a.root.State().TakeChildrenChanged() {
			quiet = false
			a.run("app.AppRoot.RouteWidgetAdded", func() {
				a.root.SendLifecycle(widget.RouteWidgetAdded{}, &a.data, a.env)
			})
		}
		if a.root.State().TakeDisabledChanged() {
			quiet = false
			a.run("app.AppRoot.RouteDisabledChanged", func() {
				a.root.SendLifecycle(widget.RouteDisabledChanged{}, &a.data, a.env)
			})
		}
		if next, ok := a.root.State().TakeFocusRequest(); ok && next != a.focus {
			quiet = false
			old := a.focus
			a.focus = next
			a.run("app.AppRoot.RouteFocusChanged", func() {
				a.root.SendLifecycle(widget.RouteFocusChanged{Old: old, New: next}, &a.data, a.env)
			})
		}

		if quiet {
			break
		}
	}
	a.run("app.AppRoot.Update", func() {
		a.root.RunUpdate(&a.data, a.env)
	})
	// The synthetic root state accumulates merged flags as a sticky OR; the
	// per-pod flags are authoritative, so reset it between pipeline runs.
	a.root.State().ClearRequests()
}
