package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// Either shows one of two children depending on a predicate over the data.
// Both children stay mounted and receive lifecycle passes, but only the
// selected branch gets events, updates, layout, and paint; the hidden one
// catches up when it becomes visible.
type Either[T data.Data[T]] struct {
	pred        func(*T, env.Env) bool
	whenTrue    *widget.Pod[T]
	whenFalse   *widget.Pod[T]
	current     bool
	currentInit bool
}

// EitherOf builds a variant switch between two widgets.
func EitherOf[T data.Data[T]](pred func(*T, env.Env) bool, whenTrue, whenFalse widget.Widget[T]) *Either[T] {
	return &Either[T]{
		pred:      pred,
		whenTrue:  widget.NewPod(whenTrue),
		whenFalse: widget.NewPod(whenFalse),
	}
}

func (w *Either[T]) branch() *widget.Pod[T] {
	if w.current {
		return w.whenTrue
	}
	return w.whenFalse
}

func (w *Either[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	w.branch().Event(ctx, ev, d, e)
}

func (w *Either[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	if _, ok := ev.(widget.WidgetAdded); ok {
		w.current = w.pred(d, e)
		w.currentInit = true
	}
	w.whenTrue.Lifecycle(ctx, ev, d, e)
	w.whenFalse.Lifecycle(ctx, ev, d, e)
}

func (w *Either[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	current := w.pred(new, e)
	if !w.currentInit || current != w.current {
		w.current = current
		w.currentInit = true
		ctx.RequestLayout()
		ctx.RequestPaint()
	}
	w.branch().Update(ctx, new, e)
}

func (w *Either[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	branch := w.branch()
	size := branch.Layout(ctx, bc, d, e)
	branch.SetOrigin(geometry.Offset{})
	return size
}

func (w *Either[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	w.branch().Paint(ctx, d, e)
}

func (w *Either[T]) DebugState(d *T) widget.DebugState {
	return widget.DebugState{
		DisplayName: "Either",
		MainValue:   map[bool]string{true: "true-branch", false: "false-branch"}[w.current],
		Children:    []widget.DebugState{w.branch().DebugState(d)},
	}
}
