package widgets

import (
	"math"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/widget"
)

// Axis is the main direction of a Flex container.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

func (a Axis) major(s geometry.Size) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

func (a Axis) minor(s geometry.Size) float64 {
	if a == Horizontal {
		return s.Height
	}
	return s.Width
}

func (a Axis) pack(major, minor float64) geometry.Size {
	if a == Horizontal {
		return geometry.Size{Width: major, Height: minor}
	}
	return geometry.Size{Width: minor, Height: major}
}

// CrossAlignment positions children on the axis perpendicular to the main
// direction.
type CrossAlignment int

const (
	CrossStart CrossAlignment = iota
	CrossCenter
	CrossEnd
)

func (c CrossAlignment) String() string {
	switch c {
	case CrossStart:
		return "start"
	case CrossCenter:
		return "center"
	default:
		return "end"
	}
}

type flexChild[T data.Data[T]] struct {
	pod  *widget.Pod[T]
	flex float64
}

// Flex lays children out along one axis. Fixed children are measured
// first; the remaining main-axis space is divided among flexible children
// in proportion to their flex factor.
type Flex[T data.Data[T]] struct {
	axis     Axis
	cross    CrossAlignment
	spacing  float64
	children []flexChild[T]
}

// Row creates a horizontal Flex.
func Row[T data.Data[T]]() *Flex[T] {
	return &Flex[T]{axis: Horizontal}
}

// Column creates a vertical Flex.
func Column[T data.Data[T]]() *Flex[T] {
	return &Flex[T]{axis: Vertical}
}

// WithSpacing sets the gap between adjacent children.
func (w *Flex[T]) WithSpacing(spacing float64) *Flex[T] {
	w.spacing = spacing
	return w
}

// WithCrossAlignment sets the perpendicular alignment.
func (w *Flex[T]) WithCrossAlignment(c CrossAlignment) *Flex[T] {
	w.cross = c
	return w
}

// Add appends a fixed-size child.
func (w *Flex[T]) Add(child widget.Widget[T]) *Flex[T] {
	return w.AddFlex(child, 0)
}

// AddFlex appends a child that shares leftover main-axis space in
// proportion to flex. A factor of zero means fixed-size.
func (w *Flex[T]) AddFlex(child widget.Widget[T], flex float64) *Flex[T] {
	w.children = append(w.children, flexChild[T]{pod: widget.NewPod(child), flex: flex})
	return w
}

// ChildPods exposes the child pods for tests and introspection.
func (w *Flex[T]) ChildPods() []*widget.Pod[T] {
	pods := make([]*widget.Pod[T], len(w.children))
	for i, c := range w.children {
		pods[i] = c.pod
	}
	return pods
}

func (w *Flex[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	for _, c := range w.children {
		c.pod.Event(ctx, ev, d, e)
	}
}

func (w *Flex[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	for _, c := range w.children {
		c.pod.Lifecycle(ctx, ev, d, e)
	}
}

func (w *Flex[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	for _, c := range w.children {
		c.pod.Update(ctx, new, e)
	}
}

func (w *Flex[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	var totalFlex, fixedMajor, maxMinor float64
	gaps := w.spacing * float64(max(len(w.children)-1, 0))

	// First pass: measure the fixed children with loose constraints.
	loose := bc.Loosen()
	for _, c := range w.children {
		if c.flex > 0 {
			totalFlex += c.flex
			continue
		}
		size := c.pod.Layout(ctx, loose, d, e)
		fixedMajor += w.axis.major(size)
		maxMinor = math.Max(maxMinor, w.axis.minor(size))
	}

	// Second pass: hand each flexible child its share of the remainder.
	// Flex factors need a bounded main axis; without one the children are
	// measured at their natural size.
	available := w.axis.major(bc.Max())
	unbounded := math.IsInf(available, 1)
	remaining := math.Max(available-fixedMajor-gaps, 0)
	for _, c := range w.children {
		if c.flex == 0 {
			continue
		}
		childBC := loose
		if !unbounded {
			share := remaining * c.flex / totalFlex
			if w.axis == Horizontal {
				childBC.MinWidth = share
				childBC.MaxWidth = share
			} else {
				childBC.MinHeight = share
				childBC.MaxHeight = share
			}
		}
		size := c.pod.Layout(ctx, childBC, d, e)
		maxMinor = math.Max(maxMinor, w.axis.minor(size))
	}

	// Position children along the main axis.
	var offset, contentMajor float64
	for _, c := range w.children {
		size := c.pod.Size()
		minorGap := maxMinor - w.axis.minor(size)
		var minorOffset float64
		switch w.cross {
		case CrossCenter:
			minorOffset = minorGap / 2
		case CrossEnd:
			minorOffset = minorGap
		}
		if w.axis == Horizontal {
			c.pod.SetOrigin(geometry.Offset{X: offset, Y: minorOffset})
		} else {
			c.pod.SetOrigin(geometry.Offset{X: minorOffset, Y: offset})
		}
		contentMajor = offset + w.axis.major(size)
		offset = contentMajor + w.spacing
	}

	major := contentMajor
	if totalFlex > 0 && !unbounded {
		major = math.Max(major, available)
	}
	return bc.Constrain(w.axis.pack(major, maxMinor))
}

func (w *Flex[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	for _, c := range w.children {
		c.pod.Paint(ctx, d, e)
	}
}

func (w *Flex[T]) DebugState(d *T) widget.DebugState {
	ds := widget.DebugState{DisplayName: "Flex", MainValue: w.axis.String()}
	for _, c := range w.children {
		ds.Children = append(ds.Children, c.pod.DebugState(d))
	}
	return ds
}
