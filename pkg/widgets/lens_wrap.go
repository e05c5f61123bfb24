// Package widgets provides the built-in widget library: adapters that
// re-scope data (LensWrap, PrismWrap, EnvScope), layout containers (Flex,
// ZStack, List, Either, Padding, Align, SizedBox), and basic leaves
// (Label, Button, Spinner).
package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/lens"
	"github.com/go-quill/quill/pkg/widget"
)

// LensWrap embeds a widget written against a part type A into a tree whose
// data type is the whole S, projecting through a lens on every pass. The
// child pod compares the projected part against its previous value, so a
// change elsewhere in S leaves the child's update short-circuited.
type LensWrap[S data.Data[S], A data.Data[A]] struct {
	lens  lens.Lens[S, A]
	child *widget.Pod[A]
}

// Lensed wraps child so it can serve in a tree over S.
func Lensed[S data.Data[S], A data.Data[A]](l lens.Lens[S, A], child widget.Widget[A]) *LensWrap[S, A] {
	return &LensWrap[S, A]{lens: l, child: widget.NewPod(child)}
}

// Child returns the wrapped pod, mainly for tests and introspection.
func (w *LensWrap[S, A]) Child() *widget.Pod[A] { return w.child }

func (w *LensWrap[S, A]) Event(ctx *widget.EventCtx, ev widget.Event, d *S, e env.Env) {
	w.lens.WithMut(d, func(part *A) {
		w.child.Event(ctx, ev, part, e)
	})
}

func (w *LensWrap[S, A]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *S, e env.Env) {
	w.lens.With(d, func(part *A) {
		w.child.Lifecycle(ctx, ev, part, e)
	})
}

func (w *LensWrap[S, A]) Update(ctx *widget.UpdateCtx, old, new *S, e env.Env) {
	w.lens.With(new, func(part *A) {
		w.child.Update(ctx, part, e)
	})
}

func (w *LensWrap[S, A]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *S, e env.Env) geometry.Size {
	var size geometry.Size
	w.lens.With(d, func(part *A) {
		size = w.child.Layout(ctx, bc, part, e)
	})
	w.child.SetOrigin(geometry.Offset{})
	return size
}

func (w *LensWrap[S, A]) Paint(ctx *widget.PaintCtx, d *S, e env.Env) {
	w.lens.With(d, func(part *A) {
		w.child.Paint(ctx, part, e)
	})
}

func (w *LensWrap[S, A]) DebugState(d *S) widget.DebugState {
	ds := widget.DebugState{DisplayName: "LensWrap"}
	w.lens.With(d, func(part *A) {
		ds.Children = []widget.DebugState{w.child.DebugState(part)}
	})
	return ds
}
