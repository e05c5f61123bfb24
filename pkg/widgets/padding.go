package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// Padding surrounds its child with empty space.
type Padding[T data.Data[T]] struct {
	insets geometry.Insets
	child  *widget.Pod[T]
}

// Padded wraps child with the given insets.
func Padded[T data.Data[T]](insets geometry.Insets, child widget.Widget[T]) *Padding[T] {
	return &Padding[T]{insets: insets, child: widget.NewPod(child)}
}

// PaddedAll wraps child with a uniform inset on every side.
func PaddedAll[T data.Data[T]](amount float64, child widget.Widget[T]) *Padding[T] {
	return Padded(geometry.UniformInsets(amount), child)
}

func (w *Padding[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	w.child.Event(ctx, ev, d, e)
}

func (w *Padding[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	w.child.Lifecycle(ctx, ev, d, e)
}

func (w *Padding[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	w.child.Update(ctx, new, e)
}

func (w *Padding[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	inner := bc.Shrink(geometry.Size{
		Width:  w.insets.Horizontal(),
		Height: w.insets.Vertical(),
	})
	childSize := w.child.Layout(ctx, inner.Loosen(), d, e)
	w.child.SetOrigin(geometry.Offset{X: w.insets.Left, Y: w.insets.Top})
	return bc.Constrain(geometry.Size{
		Width:  childSize.Width + w.insets.Horizontal(),
		Height: childSize.Height + w.insets.Vertical(),
	})
}

func (w *Padding[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	w.child.Paint(ctx, d, e)
}
