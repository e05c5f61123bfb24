package widgets

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/theme"
	"github.com/go-quill/quill/pkg/widget"
)

const spinnerRevolution float32 = 1.0 // seconds per revolution

// Spinner is an indeterminate progress indicator: a dial sweeping through
// a full turn once per second, driven by animation frames.
type Spinner[T data.Data[T]] struct {
	tween *gween.Tween
	// phase is the current rotation in radians.
	phase float64
}

// NewSpinner builds a spinner.
func NewSpinner[T data.Data[T]]() *Spinner[T] {
	return &Spinner[T]{tween: gween.New(0, 2*math.Pi, spinnerRevolution, ease.Linear)}
}

// Phase returns the current rotation in radians.
func (w *Spinner[T]) Phase() float64 { return w.phase }

func (w *Spinner[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	frame, ok := ev.(widget.AnimFrame)
	if !ok {
		return
	}
	value, finished := w.tween.Update(float32(frame.Interval.Seconds()))
	w.phase = float64(value)
	if finished {
		w.tween.Reset()
	}
	ctx.RequestPaint()
	ctx.RequestAnimFrame()
}

func (w *Spinner[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	if _, ok := ev.(widget.WidgetAdded); ok {
		ctx.RequestAnimFrame()
	}
}

func (w *Spinner[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {}

func (w *Spinner[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	return bc.Constrain(geometry.Size{Width: 28, Height: 28})
}

func (w *Spinner[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	size := ctx.Size()
	center := geometry.Offset{X: size.Width / 2, Y: size.Height / 2}
	radius := math.Min(size.Width, size.Height)/2 - 2

	color := env.GetOr(e, theme.SpinnerColor, graphics.ColorWhite)
	ctx.Canvas.DrawCircle(center, radius, graphics.StrokePaint(color, 2))
	tip := geometry.Offset{
		X: center.X + radius*math.Cos(w.phase),
		Y: center.Y + radius*math.Sin(w.phase),
	}
	ctx.Canvas.DrawLine(center, tip, graphics.StrokePaint(color, 2))
}

func (w *Spinner[T]) DebugState(d *T) widget.DebugState {
	return widget.DebugState{DisplayName: "Spinner"}
}
