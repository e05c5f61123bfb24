package widget

import (
	"fmt"
	"math"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/errors"
	"github.com/go-quill/quill/pkg/geometry"
)

// Pod is the retained wrapper around one widget instance. It owns the
// widget's state flags, geometry, and identity, decides per pass whether
// the widget needs to run it, and merges the widget's requests into the
// parent as the pass unwinds. Containers hold their children exclusively
// as pods and never call the wrapped widget directly.
type Pod[T data.Data[T]] struct {
	inner Widget[T]
	state WidgetState

	// oldData is the data value as of the last pass delivered to the
	// widget, kept for the update short-circuit. Nil until WidgetAdded.
	oldData *T
	// podEnv is the environment from the same pass.
	podEnv env.Env
}

// NewPod wraps a widget, assigning it a fresh id.
func NewPod[T data.Data[T]](inner Widget[T]) *Pod[T] {
	return &Pod[T]{inner: inner, state: newWidgetState()}
}

// ID returns the wrapped widget's id.
func (p *Pod[T]) ID() WidgetID { return p.state.id }

// Inner returns the wrapped widget.
func (p *Pod[T]) Inner() Widget[T] { return p.inner }

// Size returns the size assigned by the last layout pass.
func (p *Pod[T]) Size() geometry.Size { return p.state.size }

// Origin returns the pod's origin relative to its parent.
func (p *Pod[T]) Origin() geometry.Offset { return p.state.origin }

// LayoutRect returns the pod's rectangle in parent coordinates.
func (p *Pod[T]) LayoutRect() geometry.Rect {
	return geometry.RectFromOriginSize(p.state.origin, p.state.size)
}

// SetOrigin positions the pod within its parent. Containers call this
// during their layout pass, after laying the child out.
func (p *Pod[T]) SetOrigin(origin geometry.Offset) {
	if origin == p.state.origin {
		return
	}
	p.state.origin = origin
	p.state.needsPaint = true
}

// NeedsLayout reports whether this subtree requested layout.
func (p *Pod[T]) NeedsLayout() bool { return p.state.needsLayout }

// NeedsPaint reports whether this subtree requested paint.
func (p *Pod[T]) NeedsPaint() bool { return p.state.needsPaint }

// WantsAnimFrame reports whether this subtree requested an anim frame.
func (p *Pod[T]) WantsAnimFrame() bool { return p.state.requestAnim }

// IsInitialized reports whether WidgetAdded has been delivered.
func (p *Pod[T]) IsInitialized() bool { return !p.state.isNew }

// IsHot reports whether the pointer is over the pod.
func (p *Pod[T]) IsHot() bool { return p.state.hot }

// IsActive reports whether the pod's widget holds the pointer grab.
func (p *Pod[T]) IsActive() bool { return p.state.active }


// Event delivers an event to the subtree. Pointer positions in ev are in
// the parent's coordinate space; the pod translates them before they reach
// the widget. After the widget returns, its requests are merged into the
// parent's state.
func (p *Pod[T]) Event(ctx *EventCtx, ev Event, d *T, e env.Env) {
	if p.state.isNew {
		errors.ReportViolation("widget.Pod.Event",
			"widget %d received %T before WidgetAdded", p.state.id, ev)
		return
	}
	if ctx.handled {
		return
	}

	hadHot := p.state.hot
	if pos, ok := mousePos(ev); ok {
		p.setHotState(ctx.state, p.LayoutRect().Contains(pos), d, e)
	}

	recurse := true
	localEv := ev
	switch t := ev.(type) {
	case MouseDown, MouseUp, MouseMove, Wheel:
		recurse = hadHot || p.state.hot || p.state.active
		localEv = translatePointer(ev, p.state.origin)
	case KeyDown, KeyUp:
		recurse = p.state.hasFocus
	case CommandEvent:
		if target, ok := t.Command.Target.Widget(); ok {
			recurse = target == p.state.id || p.state.mayContain(target)
		}
	case Timer:
		if p.state.hasTimer(t.Token) {
			delete(p.state.timers, t.Token)
		} else {
			recurse = false
		}
	case AnimFrame:
		recurse = p.state.requestAnim
		// Cleared before delivery so the widget can re-request from the
		// frame handler to continue animating.
		p.state.requestAnim = false
	case WindowSize:
		p.state.needsLayout = true
	case Notification:
		// Notifications travel upward only; a container blindly
		// forwarding one must not leak it into child subtrees.
		recurse = false
	}
	if recurse && p.state.effectiveDisabled() && (isPointer(ev) || isKey(ev)) {
		recurse = false
	}

	if recurse {
		var notes []Notification
		childCtx := &EventCtx{
			requestCtx:    requestCtx{baseCtx{state: ctx.state, widget: &p.state}},
			notifications: &notes,
		}
		p.inner.Event(childCtx, localEv, d, e)
		ctx.handled = ctx.handled || childCtx.handled
		p.deliverNotifications(ctx, notes, d, e)
	}

	ctx.widget.mergeUp(&p.state)
}

// setHotState updates the hot flag, delivering HotChanged to the widget
// before the pointer event that caused the change.
func (p *Pod[T]) setHotState(cs *ContextState, hot bool, d *T, e env.Env) {
	if hot == p.state.hot {
		return
	}
	p.state.hot = hot
	lcCtx := &LifeCycleCtx{requestCtx{baseCtx{state: cs, widget: &p.state}}}
	p.inner.Lifecycle(lcCtx, HotChanged{Hot: hot}, d, e)
}

// deliverNotifications hands notifications submitted inside this subtree
// to the wrapped widget, which is the nearest ancestor of each submitter.
// Unhandled notifications keep bubbling through the parent context.
func (p *Pod[T]) deliverNotifications(ctx *EventCtx, notes []Notification, d *T, e env.Env) {
	for _, n := range notes {
		if n.Source == p.state.id {
			// Submitted by this widget itself; it goes to the ancestors.
			*ctx.notifications = append(*ctx.notifications, n)
			continue
		}
		var nested []Notification
		childCtx := &EventCtx{
			requestCtx:    requestCtx{baseCtx{state: ctx.state, widget: &p.state}},
			notifications: &nested,
		}
		p.inner.Event(childCtx, n, d, e)
		if !childCtx.handled {
			*ctx.notifications = append(*ctx.notifications, n)
		}
		*ctx.notifications = append(*ctx.notifications, nested...)
	}
}

// Lifecycle delivers a lifecycle event to the subtree, converting routing
// events into their targeted forms where this pod is concerned.
func (p *Pod[T]) Lifecycle(ctx *LifeCycleCtx, ev LifeCycle, d *T, e env.Env) {
	switch t := ev.(type) {
	case WidgetAdded:
		p.initialize(ctx, d, e)
		ctx.widget.mergeUp(&p.state)
		return
	case RouteWidgetAdded:
		if p.state.isNew {
			p.initialize(ctx, d, e)
			ctx.widget.mergeUp(&p.state)
			return
		}
		// Forwarded below so freshly inserted descendants initialize; the
		// walk consumes this subtree's structural-change mark.
		p.state.childrenChanged = false
	case RouteFocusChanged:
		p.routeFocusChanged(ctx, t, d, e)
		return
	case RouteDisabledChanged:
		p.updateDisabled(ctx, true, d, e)
		return
	case DisabledChanged:
		// An ancestor's effective state flipped; recompute our own.
		p.updateDisabled(ctx, false, d, e)
		return
	}

	if p.state.isNew {
		errors.ReportViolation("widget.Pod.Lifecycle",
			"widget %d received %T before WidgetAdded", p.state.id, ev)
		return
	}
	childCtx := &LifeCycleCtx{requestCtx{baseCtx{state: ctx.state, widget: &p.state}}}
	p.inner.Lifecycle(childCtx, ev, d, e)
	ctx.widget.mergeUp(&p.state)
}

// initialize delivers WidgetAdded exactly once and captures the data and
// environment baseline for the update short-circuit.
func (p *Pod[T]) initialize(ctx *LifeCycleCtx, d *T, e env.Env) {
	if !p.state.isNew {
		errors.ReportViolation("widget.Pod.Lifecycle",
			"widget %d received WidgetAdded twice", p.state.id)
		return
	}
	p.state.isNew = false
	p.state.ancestorDisabled = ctx.widget.effectiveDisabled()
	childCtx := &LifeCycleCtx{requestCtx{baseCtx{state: ctx.state, widget: &p.state}}}
	p.inner.Lifecycle(childCtx, WidgetAdded{}, d, e)
	old := *d
	p.oldData = &old
	p.podEnv = e
}

func (p *Pod[T]) routeFocusChanged(ctx *LifeCycleCtx, ev RouteFocusChanged, d *T, e env.Env) {
	// The focus path is rebuilt on every walk: each pod resets its own flag
	// and picks up a focused descendant through mergeUp as the forwarding
	// unwinds.
	p.state.hasFocus = p.state.id == ev.New
	var forward LifeCycle = ev
	switch p.state.id {
	case ev.New:
		p.state.focused = true
		forward = FocusChanged{Focused: true}
	case ev.Old:
		p.state.focused = false
		forward = FocusChanged{Focused: false}
	}
	childCtx := &LifeCycleCtx{requestCtx{baseCtx{state: ctx.state, widget: &p.state}}}
	p.inner.Lifecycle(childCtx, forward, d, e)
	ctx.widget.mergeUp(&p.state)
}

// updateDisabled recomputes the effective disabled state from the parent's
// and delivers DisabledChanged when it flipped. route distinguishes the
// explicit tree walk from an ancestor's DisabledChanged cascade.
func (p *Pod[T]) updateDisabled(ctx *LifeCycleCtx, route bool, d *T, e env.Env) {
	was := p.state.effectiveDisabled()
	p.state.disabled = p.state.pendingDisabled
	p.state.ancestorDisabled = ctx.widget.effectiveDisabled()
	p.state.disabledChanged = false
	now := p.state.effectiveDisabled()

	childCtx := &LifeCycleCtx{requestCtx{baseCtx{state: ctx.state, widget: &p.state}}}
	switch {
	case now != was:
		if now {
			p.state.active = false
			if p.state.focused {
				p.state.focusRequested = true
				p.state.focusTarget = NoWidget
			}
		}
		p.inner.Lifecycle(childCtx, DisabledChanged{Disabled: now}, d, e)
	case route:
		p.inner.Lifecycle(childCtx, RouteDisabledChanged{}, d, e)
	}
	ctx.widget.mergeUp(&p.state)
}

// Update reconciles the subtree with possibly changed data or environment.
// When the data compares Same, the environment is unchanged, and no update
// was explicitly requested, the widget is not called at all.
func (p *Pod[T]) Update(ctx *UpdateCtx, d *T, e env.Env) {
	if p.state.isNew || p.oldData == nil {
		errors.ReportViolation("widget.Pod.Update",
			"widget %d updated before WidgetAdded", p.state.id)
		return
	}
	envChanged := !p.podEnv.Same(e)
	if (*p.oldData).Same(*d) && !envChanged && !p.state.requestUpdate {
		return
	}
	p.state.requestUpdate = false

	childCtx := &UpdateCtx{
		requestCtx: requestCtx{baseCtx{state: ctx.state, widget: &p.state}},
		prevEnv:    p.podEnv,
		envChanged: envChanged,
	}
	p.inner.Update(childCtx, p.oldData, d, e)

	old := *d
	p.oldData = &old
	p.podEnv = e
	ctx.widget.mergeUp(&p.state)
}

// Layout measures the subtree. When nothing below requested layout and the
// constraints match the previous call, the cached size is returned without
// touching the widget.
func (p *Pod[T]) Layout(ctx *LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	if p.state.isNew {
		errors.ReportViolation("widget.Pod.Layout",
			"widget %d laid out before WidgetAdded", p.state.id)
		return bc.Min()
	}
	if !p.state.needsLayout && p.state.hasLayout && bc == p.state.constraints {
		return p.state.size
	}
	p.state.needsLayout = false

	childCtx := &LayoutCtx{baseCtx{state: ctx.state, widget: &p.state}}
	size := p.inner.Layout(childCtx, bc, d, e)
	if !isFiniteSize(size) {
		errors.ReportViolation("widget.Pod.Layout",
			"widget %d returned non-finite size %v", p.state.id, size)
		size = bc.Min()
	}

	prev := p.state.size
	p.state.size = size
	p.state.constraints = bc
	p.state.hasLayout = true
	p.state.needsPaint = true
	if prev != size {
		lcCtx := &LifeCycleCtx{requestCtx{baseCtx{state: ctx.state, widget: &p.state}}}
		p.inner.Lifecycle(lcCtx, SizeChanged{Size: size}, d, e)
	}
	ctx.widget.mergeUp(&p.state)
	return size
}

func isFiniteSize(s geometry.Size) bool {
	return !math.IsNaN(s.Width) && !math.IsNaN(s.Height) &&
		!math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Paint draws the subtree. The canvas transform is saved, translated by
// the pod's origin, and restored afterward even if the widget panics, so
// a failing widget cannot corrupt its siblings' coordinate space.
func (p *Pod[T]) Paint(ctx *PaintCtx, d *T, e env.Env) {
	if p.state.isNew {
		errors.ReportViolation("widget.Pod.Paint",
			"widget %d painted before WidgetAdded", p.state.id)
		return
	}
	if !p.state.hasLayout {
		errors.ReportViolation("widget.Pod.Paint",
			"widget %d painted before layout", p.state.id)
		return
	}
	p.state.needsPaint = false

	canvas := ctx.Canvas
	canvas.Save()
	defer canvas.Restore()
	canvas.Translate(p.state.origin.X, p.state.origin.Y)

	childCtx := &PaintCtx{
		baseCtx: baseCtx{state: ctx.state, widget: &p.state},
		Canvas:  canvas,
	}
	p.inner.Paint(childCtx, d, e)
}

// DebugState builds the introspection snapshot for the subtree root. The
// wrapped widget supplies the body when it implements Debuggable; the pod
// fills in identity and geometry.
func (p *Pod[T]) DebugState(d *T) DebugState {
	var ds DebugState
	if dbg, ok := p.inner.(Debuggable[T]); ok {
		ds = dbg.DebugState(d)
	}
	if ds.DisplayName == "" {
		ds.DisplayName = fmt.Sprintf("%T", p.inner)
	}
	if ds.Attrs == nil {
		ds.Attrs = map[string]string{}
	}
	ds.Attrs["id"] = fmt.Sprintf("%d", p.state.id)
	ds.Attrs["origin"] = fmt.Sprintf("(%g, %g)", p.state.origin.X, p.state.origin.Y)
	ds.Attrs["size"] = fmt.Sprintf("%gx%g", p.state.size.Width, p.state.size.Height)
	return ds
}
