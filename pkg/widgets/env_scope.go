package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// EnvScope overlays environment bindings for its subtree. The override is
// applied to the incoming environment; ancestors and siblings never
// observe the overlay. The derived environment is cached against the
// incoming one's identity, so an unchanged parent environment keeps the
// child's update short-circuit intact.
type EnvScope[T data.Data[T]] struct {
	override func(env.Env) env.Env
	child    *widget.Pod[T]

	cachedIn  env.Env
	cachedOut env.Env
	cached    bool
}

// Scoped wraps child with an environment override.
func Scoped[T data.Data[T]](override func(env.Env) env.Env, child widget.Widget[T]) *EnvScope[T] {
	return &EnvScope[T]{override: override, child: widget.NewPod(child)}
}

func (w *EnvScope[T]) scoped(e env.Env) env.Env {
	if !w.cached || !w.cachedIn.Same(e) {
		w.cachedIn = e
		w.cachedOut = w.override(e)
		w.cached = true
	}
	return w.cachedOut
}

func (w *EnvScope[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	w.child.Event(ctx, ev, d, w.scoped(e))
}

func (w *EnvScope[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	w.child.Lifecycle(ctx, ev, d, w.scoped(e))
}

func (w *EnvScope[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	w.child.Update(ctx, new, w.scoped(e))
}

func (w *EnvScope[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	size := w.child.Layout(ctx, bc, d, w.scoped(e))
	w.child.SetOrigin(geometry.Offset{})
	return size
}

func (w *EnvScope[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	w.child.Paint(ctx, d, w.scoped(e))
}
