package widget

import (
	"time"

	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/shell"
)

// ContextState carries the per-window facilities shared by every context
// in a pass: the window capability handle and the command queue.
type ContextState struct {
	window   shell.WindowHandle
	commands *CommandQueue
}

// NewContextState bundles a window handle and command queue for a pass.
func NewContextState(window shell.WindowHandle, commands *CommandQueue) *ContextState {
	return &ContextState{window: window, commands: commands}
}

// baseCtx is the part common to all pass contexts: the global state and
// the widget state of the pod whose widget the context was handed to.
type baseCtx struct {
	state  *ContextState
	widget *WidgetState
}

// WidgetID returns the id of the widget the context belongs to.
func (c *baseCtx) WidgetID() WidgetID {
	return c.widget.id
}

// Window returns the host window capability handle.
func (c *baseCtx) Window() shell.WindowHandle {
	return c.state.window
}

// Size returns the size layout last assigned to the widget.
func (c *baseCtx) Size() geometry.Size {
	return c.widget.size
}

// IsHot reports whether the pointer is over the widget.
func (c *baseCtx) IsHot() bool { return c.widget.hot }

// IsActive reports whether the widget holds the pointer grab.
func (c *baseCtx) IsActive() bool { return c.widget.active }

// IsFocused reports whether the widget owns keyboard focus.
func (c *baseCtx) IsFocused() bool { return c.widget.focused }

// IsDisabled reports the widget's effective disabled state, its own flag
// or any ancestor's.
func (c *baseCtx) IsDisabled() bool { return c.widget.effectiveDisabled() }

// requestCtx adds the request operations shared by the event, lifecycle,
// and update contexts.
type requestCtx struct {
	baseCtx
}

// RequestLayout marks the widget as needing layout. The request bubbles to
// the root as the current pass unwinds.
func (c *requestCtx) RequestLayout() {
	c.widget.needsLayout = true
}

// RequestPaint marks the widget as needing paint.
func (c *requestCtx) RequestPaint() {
	c.widget.needsPaint = true
	c.state.window.Invalidate()
}

// RequestAnimFrame asks for an AnimFrame event before the next paint. The
// request is one-shot; widgets re-request from the frame handler to keep
// an animation running.
func (c *requestCtx) RequestAnimFrame() {
	c.widget.requestAnim = true
	c.state.window.RequestAnimFrame()
}

// ChildrenChanged tells the framework this container added or removed
// child pods. A RouteWidgetAdded walk follows the current pass so the new
// subtrees initialize, and layout is re-run.
func (c *requestCtx) ChildrenChanged() {
	c.widget.childrenChanged = true
	c.widget.needsLayout = true
}

// Submit queues a command for dispatch after the current pass.
func (c *requestCtx) Submit(cmd Command) {
	c.state.commands.Push(cmd)
}

// RequestFocus asks for keyboard focus for this widget. Key events are
// delivered only into subtrees on the focus path, so a widget that wants
// them must take focus first, typically on WidgetAdded or on a click.
func (c *requestCtx) RequestFocus() {
	c.widget.focusRequested = true
	c.widget.focusTarget = c.widget.id
}

// ResignFocus gives up keyboard focus if this widget holds it.
func (c *requestCtx) ResignFocus() {
	c.widget.focusRequested = true
	c.widget.focusTarget = NoWidget
}

// EventCtx is passed to Widget.Event.
type EventCtx struct {
	requestCtx
	notifications *[]Notification
	handled       bool
}

// RequestUpdate forces the next update pass to reach this widget even if
// its data and environment are unchanged.
func (c *EventCtx) RequestUpdate() {
	c.widget.requestUpdate = true
}

// RequestTimer schedules a one-shot timer. The Timer event for the
// returned token is routed back to this widget's subtree.
func (c *EventCtx) RequestTimer(after time.Duration) shell.TimerToken {
	tok := c.state.window.ScheduleTimer(after)
	c.widget.addTimer(tok)
	return tok
}

// CancelTimer cancels a pending timer and forgets its registration here.
// The token's slot may be reused immediately; dropping the registration
// keeps a reused token from routing back to this widget.
func (c *EventCtx) CancelTimer(tok shell.TimerToken) {
	c.widget.removeTimer(tok)
	c.state.window.CancelTimer(tok)
}

// SetHandled marks the event as consumed. Containers stop forwarding a
// handled event to later siblings.
func (c *EventCtx) SetHandled() {
	c.handled = true
}

// IsHandled reports whether some widget consumed the event.
func (c *EventCtx) IsHandled() bool {
	return c.handled
}

// SetActive takes or releases the pointer grab. While active, the widget
// receives pointer events even when the pointer leaves it.
func (c *EventCtx) SetActive(active bool) {
	c.widget.active = active
}

// SetDisabled changes the widget's explicit disabled flag. The change
// takes effect in the RouteDisabledChanged pass that follows the current
// event pass, not immediately.
func (c *EventCtx) SetDisabled(disabled bool) {
	if c.widget.pendingDisabled == disabled {
		return
	}
	c.widget.pendingDisabled = disabled
	c.widget.disabledChanged = true
}

// SubmitNotification sends a message up the tree. Ancestors receive it as
// a Notification event, nearest first, until one handles it.
func (c *EventCtx) SubmitNotification(sel Selector, payload any) {
	if c.notifications == nil {
		return
	}
	*c.notifications = append(*c.notifications, Notification{
		Selector: sel,
		Payload:  payload,
		Source:   c.widget.id,
	})
}

// LifeCycleCtx is passed to Widget.Lifecycle.
type LifeCycleCtx struct {
	requestCtx
}

// UpdateCtx is passed to Widget.Update.
type UpdateCtx struct {
	requestCtx
	prevEnv    env.Env
	envChanged bool
}

// EnvChanged reports whether the environment differs from the one seen by
// the previous pass over this widget.
func (c *UpdateCtx) EnvChanged() bool {
	return c.envChanged
}

// PrevEnv returns the environment from the previous pass, for per-key
// change checks via env.KeyChanged.
func (c *UpdateCtx) PrevEnv() env.Env {
	return c.prevEnv
}

// LayoutCtx is passed to Widget.Layout.
type LayoutCtx struct {
	baseCtx
}

// PaintCtx is passed to Widget.Paint. The canvas is only valid for the
// duration of the call and must not be retained.
type PaintCtx struct {
	baseCtx
	// Canvas receives the widget's drawing operations, with the origin at
	// the widget's top-left corner.
	Canvas graphics.Canvas
}

// WithSave runs f with the canvas state saved and restores it afterward,
// even if f panics.
func (c *PaintCtx) WithSave(f func(*PaintCtx)) {
	c.Canvas.Save()
	defer c.Canvas.Restore()
	f(c)
}
