package widget

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
)

// Root drives passes over a widget tree from outside the package. It pairs
// the root pod with a synthetic parent state that collects the merged
// request flags of the whole tree after each pass.
//
// Root is the low-level entry point; the app package layers command
// dispatch, focus bookkeeping, and the pass pipeline on top of it.
type Root[T data.Data[T]] struct {
	pod   *Pod[T]
	state *WidgetState
	cs    *ContextState
}

// NewRoot wraps a widget tree for external pass driving. The tree is not
// initialized until SendLifecycle delivers WidgetAdded.
func NewRoot[T data.Data[T]](w Widget[T], cs *ContextState) *Root[T] {
	return &Root[T]{pod: NewPod(w), state: NewRootState(), cs: cs}
}

// Pod returns the root pod.
func (r *Root[T]) Pod() *Pod[T] { return r.pod }

// State returns the synthetic parent state holding the tree's merged
// request flags.
func (r *Root[T]) State() *WidgetState { return r.state }

// SendEvent runs one event pass. It reports whether some widget handled
// the event and returns notifications that escaped the root unhandled.
func (r *Root[T]) SendEvent(ev Event, d *T, e env.Env) (bool, []Notification) {
	var escaped []Notification
	ctx := &EventCtx{
		requestCtx:    requestCtx{baseCtx{state: r.cs, widget: r.state}},
		notifications: &escaped,
	}
	r.pod.Event(ctx, ev, d, e)
	return ctx.handled, escaped
}

// SendLifecycle runs one lifecycle pass.
func (r *Root[T]) SendLifecycle(ev LifeCycle, d *T, e env.Env) {
	ctx := &LifeCycleCtx{requestCtx{baseCtx{state: r.cs, widget: r.state}}}
	r.pod.Lifecycle(ctx, ev, d, e)
}

// RunUpdate runs one update pass.
func (r *Root[T]) RunUpdate(d *T, e env.Env) {
	ctx := &UpdateCtx{requestCtx: requestCtx{baseCtx{state: r.cs, widget: r.state}}}
	r.pod.Update(ctx, d, e)
}

// RunLayout lays the tree out within the window size and positions the
// root at the window origin.
func (r *Root[T]) RunLayout(size geometry.Size, d *T, e env.Env) geometry.Size {
	ctx := &LayoutCtx{baseCtx{state: r.cs, widget: r.state}}
	result := r.pod.Layout(ctx, geometry.TightConstraints(size), d, e)
	r.pod.SetOrigin(geometry.Offset{})
	return result
}

// PaintInto runs one paint pass onto the given canvas.
func (r *Root[T]) PaintInto(canvas graphics.Canvas, d *T, e env.Env) {
	ctx := &PaintCtx{
		baseCtx: baseCtx{state: r.cs, widget: r.state},
		Canvas:  canvas,
	}
	r.pod.Paint(ctx, d, e)
}
