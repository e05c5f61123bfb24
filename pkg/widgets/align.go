package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// Align positions its child within the space the parent offers. The
// alignment factors run from 0 (left/top) to 1 (right/bottom).
type Align[T data.Data[T]] struct {
	x, y  float64
	child *widget.Pod[T]
}

// Aligned wraps child with explicit alignment factors.
func Aligned[T data.Data[T]](x, y float64, child widget.Widget[T]) *Align[T] {
	return &Align[T]{x: x, y: y, child: widget.NewPod(child)}
}

// Centered centers child in the available space.
func Centered[T data.Data[T]](child widget.Widget[T]) *Align[T] {
	return Aligned(0.5, 0.5, child)
}

func (w *Align[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	w.child.Event(ctx, ev, d, e)
}

func (w *Align[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	w.child.Lifecycle(ctx, ev, d, e)
}

func (w *Align[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	w.child.Update(ctx, new, e)
}

func (w *Align[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	childSize := w.child.Layout(ctx, bc.Loosen(), d, e)

	size := childSize
	if bc.HasBoundedWidth() {
		size.Width = bc.MaxWidth
	}
	if bc.HasBoundedHeight() {
		size.Height = bc.MaxHeight
	}
	size = bc.Constrain(size)

	w.child.SetOrigin(geometry.Offset{
		X: (size.Width - childSize.Width) * w.x,
		Y: (size.Height - childSize.Height) * w.y,
	})
	return size
}

func (w *Align[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	w.child.Paint(ctx, d, e)
}
