package widgets

import (
	"math"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// ZStack layers children on top of each other, first child at the bottom.
// All children get the same constraints; the stack takes the largest child
// size. Events are offered topmost first, and a handled event stops there.
type ZStack[T data.Data[T]] struct {
	children []*widget.Pod[T]
}

// Stacked layers the given widgets bottom to top.
func Stacked[T data.Data[T]](children ...widget.Widget[T]) *ZStack[T] {
	s := &ZStack[T]{}
	for _, c := range children {
		s.children = append(s.children, widget.NewPod(c))
	}
	return s
}

func (w *ZStack[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	for i := len(w.children) - 1; i >= 0; i-- {
		w.children[i].Event(ctx, ev, d, e)
		if ctx.IsHandled() {
			return
		}
	}
}

func (w *ZStack[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	for _, c := range w.children {
		c.Lifecycle(ctx, ev, d, e)
	}
}

func (w *ZStack[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	for _, c := range w.children {
		c.Update(ctx, new, e)
	}
}

func (w *ZStack[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	var size geometry.Size
	for _, c := range w.children {
		childSize := c.Layout(ctx, bc, d, e)
		c.SetOrigin(geometry.Offset{})
		size.Width = math.Max(size.Width, childSize.Width)
		size.Height = math.Max(size.Height, childSize.Height)
	}
	return bc.Constrain(size)
}

func (w *ZStack[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	for _, c := range w.children {
		c.Paint(ctx, d, e)
	}
}
