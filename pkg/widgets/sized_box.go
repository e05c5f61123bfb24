package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// SizedBox forces an explicit width and/or height on its child, or
// occupies fixed empty space when it has no child.
type SizedBox[T data.Data[T]] struct {
	width, height       float64
	hasWidth, hasHeight bool
	child               *widget.Pod[T]
}

// Sized wraps child with a fixed width and height.
func Sized[T data.Data[T]](width, height float64, child widget.Widget[T]) *SizedBox[T] {
	b := Spacer[T](width, height)
	b.child = widget.NewPod(child)
	return b
}

// FixedWidth wraps child constraining only its width.
func FixedWidth[T data.Data[T]](width float64, child widget.Widget[T]) *SizedBox[T] {
	return &SizedBox[T]{width: width, hasWidth: true, child: widget.NewPod(child)}
}

// FixedHeight wraps child constraining only its height.
func FixedHeight[T data.Data[T]](height float64, child widget.Widget[T]) *SizedBox[T] {
	return &SizedBox[T]{height: height, hasHeight: true, child: widget.NewPod(child)}
}

// Spacer is an empty box of fixed size.
func Spacer[T data.Data[T]](width, height float64) *SizedBox[T] {
	return &SizedBox[T]{width: width, height: height, hasWidth: true, hasHeight: true}
}

func (w *SizedBox[T]) boxConstraints(bc geometry.Constraints) geometry.Constraints {
	inner := bc
	if w.hasWidth {
		width := bc.Constrain(geometry.Size{Width: w.width}).Width
		inner.MinWidth = width
		inner.MaxWidth = width
	}
	if w.hasHeight {
		height := bc.Constrain(geometry.Size{Height: w.height}).Height
		inner.MinHeight = height
		inner.MaxHeight = height
	}
	return inner
}

func (w *SizedBox[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	if w.child != nil {
		w.child.Event(ctx, ev, d, e)
	}
}

func (w *SizedBox[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	if w.child != nil {
		w.child.Lifecycle(ctx, ev, d, e)
	}
}

func (w *SizedBox[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	if w.child != nil {
		w.child.Update(ctx, new, e)
	}
}

func (w *SizedBox[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	inner := w.boxConstraints(bc)
	if w.child == nil {
		return inner.Constrain(geometry.Size{Width: w.width, Height: w.height})
	}
	size := w.child.Layout(ctx, inner, d, e)
	w.child.SetOrigin(geometry.Offset{})
	return size
}

func (w *SizedBox[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	if w.child != nil {
		w.child.Paint(ctx, d, e)
	}
}
