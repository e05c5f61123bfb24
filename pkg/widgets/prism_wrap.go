package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/lens"
	"github.com/go-quill/quill/pkg/widget"
)

// PrismWrap embeds a widget written against a variant payload A into a
// tree over a sum type S. While the variant is absent the child receives
// no passes at all and the wrap occupies no space; the whole is never
// touched in that case.
type PrismWrap[S data.Data[S], A data.Data[A]] struct {
	prism lens.Prism[S, A]
	child *widget.Pod[A]
	// present mirrors whether the variant matched on the last pass that
	// could observe it.
	present bool
}

// Prismed wraps child behind a prism over S.
func Prismed[S data.Data[S], A data.Data[A]](p lens.Prism[S, A], child widget.Widget[A]) *PrismWrap[S, A] {
	return &PrismWrap[S, A]{prism: p, child: widget.NewPod(child)}
}

func (w *PrismWrap[S, A]) Event(ctx *widget.EventCtx, ev widget.Event, d *S, e env.Env) {
	if !w.child.IsInitialized() {
		return
	}
	w.prism.WithMut(d, func(part *A) {
		w.child.Event(ctx, ev, part, e)
	})
}

func (w *PrismWrap[S, A]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *S, e env.Env) {
	matched := w.prism.With(d, func(part *A) {
		w.child.Lifecycle(ctx, ev, part, e)
	})
	switch ev.(type) {
	case widget.WidgetAdded, widget.RouteWidgetAdded:
		w.present = matched
	}
}

func (w *PrismWrap[S, A]) Update(ctx *widget.UpdateCtx, old, new *S, e env.Env) {
	matched := w.prism.With(new, func(part *A) {
		if w.child.IsInitialized() {
			w.child.Update(ctx, part, e)
		}
	})
	if matched != w.present {
		w.present = matched
		ctx.RequestLayout()
		if matched && !w.child.IsInitialized() {
			// The variant appeared after this wrap was added; the routing
			// walk delivers WidgetAdded to the child.
			ctx.ChildrenChanged()
		}
	}
}

func (w *PrismWrap[S, A]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *S, e env.Env) geometry.Size {
	size := bc.Min()
	if w.child.IsInitialized() {
		w.prism.With(d, func(part *A) {
			size = w.child.Layout(ctx, bc, part, e)
		})
		w.child.SetOrigin(geometry.Offset{})
	}
	return size
}

func (w *PrismWrap[S, A]) Paint(ctx *widget.PaintCtx, d *S, e env.Env) {
	if !w.child.IsInitialized() {
		return
	}
	w.prism.With(d, func(part *A) {
		w.child.Paint(ctx, part, e)
	})
}

func (w *PrismWrap[S, A]) DebugState(d *S) widget.DebugState {
	ds := widget.DebugState{DisplayName: "PrismWrap", MainValue: "absent"}
	w.prism.With(d, func(part *A) {
		ds.MainValue = "present"
		if w.child.IsInitialized() {
			ds.Children = []widget.DebugState{w.child.DebugState(part)}
		}
	})
	return ds
}
