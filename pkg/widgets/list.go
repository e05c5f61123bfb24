package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// List renders one child per element of a data.List, stacking them along
// an axis. Children are built on demand by the element widget factory;
// when elements are appended or removed the pod count follows the data in
// the update pass.
type List[I data.Data[I]] struct {
	build    func() widget.Widget[I]
	axis     Axis
	spacing  float64
	children []*widget.Pod[I]
}

// ListOf builds a vertical list whose element widgets come from build.
func ListOf[I data.Data[I]](build func() widget.Widget[I]) *List[I] {
	return &List[I]{build: build, axis: Vertical}
}

// WithAxis sets the stacking direction.
func (w *List[I]) WithAxis(axis Axis) *List[I] {
	w.axis = axis
	return w
}

// WithSpacing sets the gap between adjacent elements.
func (w *List[I]) WithSpacing(spacing float64) *List[I] {
	w.spacing = spacing
	return w
}

// ChildPods exposes the element pods for tests and introspection.
func (w *List[I]) ChildPods() []*widget.Pod[I] {
	return w.children
}

// forEach runs f over the pods paired with their elements, writing any
// element mutation back into the copy-on-write list.
func (w *List[I]) forEach(d *data.List[I], f func(pod *widget.Pod[I], item *I)) {
	for i, pod := range w.children {
		if i >= d.Len() {
			break
		}
		item := d.At(i)
		f(pod, &item)
		if !item.Same(d.At(i)) {
			*d = d.Set(i, item)
		}
	}
}

func (w *List[I]) Event(ctx *widget.EventCtx, ev widget.Event, d *data.List[I], e env.Env) {
	w.forEach(d, func(pod *widget.Pod[I], item *I) {
		pod.Event(ctx, ev, item, e)
	})
}

func (w *List[I]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *data.List[I], e env.Env) {
	if _, ok := ev.(widget.WidgetAdded); ok {
		w.syncChildren(*d)
	}
	w.forEach(d, func(pod *widget.Pod[I], item *I) {
		pod.Lifecycle(ctx, ev, item, e)
	})
}

func (w *List[I]) Update(ctx *widget.UpdateCtx, old, new *data.List[I], e env.Env) {
	if w.syncChildren(*new) {
		ctx.ChildrenChanged()
	}
	w.forEach(new, func(pod *widget.Pod[I], item *I) {
		if pod.IsInitialized() {
			pod.Update(ctx, item, e)
		}
	})
}

// syncChildren grows or shrinks the pod slice to match the data length.
// It reports whether pods were added, which requires a RouteWidgetAdded
// walk before the new pods can participate in passes.
func (w *List[I]) syncChildren(d data.List[I]) bool {
	added := false
	for len(w.children) < d.Len() {
		w.children = append(w.children, widget.NewPod(w.build()))
		added = true
	}
	if len(w.children) > d.Len() {
		w.children = w.children[:d.Len()]
	}
	return added
}

func (w *List[I]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *data.List[I], e env.Env) geometry.Size {
	loose := bc.Loosen()
	var major, maxMinor float64
	w.forEach(d, func(pod *widget.Pod[I], item *I) {
		if !pod.IsInitialized() {
			return
		}
		size := pod.Layout(ctx, loose, item, e)
		if w.axis == Horizontal {
			pod.SetOrigin(geometry.Offset{X: major})
		} else {
			pod.SetOrigin(geometry.Offset{Y: major})
		}
		major += w.axis.major(size) + w.spacing
		if w.axis.minor(size) > maxMinor {
			maxMinor = w.axis.minor(size)
		}
	})
	if major > 0 {
		major -= w.spacing
	}
	return bc.Constrain(w.axis.pack(major, maxMinor))
}

func (w *List[I]) Paint(ctx *widget.PaintCtx, d *data.List[I], e env.Env) {
	w.forEach(d, func(pod *widget.Pod[I], item *I) {
		if pod.IsInitialized() {
			pod.Paint(ctx, item, e)
		}
	})
}

func (w *List[I]) DebugState(d *data.List[I]) widget.DebugState {
	ds := widget.DebugState{DisplayName: "List"}
	w.forEach(d, func(pod *widget.Pod[I], item *I) {
		ds.Children = append(ds.Children, pod.DebugState(item))
	})
	return ds
}
