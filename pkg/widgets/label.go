package widgets

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/theme"
	"github.com/go-quill/quill/pkg/widget"
)

// labelFace is the measurement face for all text widgets. Rendering is the
// backend's concern; layout only needs consistent metrics.
var labelFace font.Face = basicfont.Face7x13

// MeasureText returns the size of a single line of text under the shared
// measurement face.
func MeasureText(text string) geometry.Size {
	advance := font.MeasureString(labelFace, text)
	metrics := labelFace.Metrics()
	return geometry.Size{
		Width:  float64(advance >> 6),
		Height: float64((metrics.Ascent + metrics.Descent) >> 6),
	}
}

// Label displays a single line of text derived from the data.
type Label[T data.Data[T]] struct {
	text func(*T, env.Env) string

	current string
}

// NewLabel builds a label whose text follows the data.
func NewLabel[T data.Data[T]](text func(*T, env.Env) string) *Label[T] {
	return &Label[T]{text: text}
}

// StaticLabel builds a label with fixed text.
func StaticLabel[T data.Data[T]](text string) *Label[T] {
	return NewLabel[T](func(*T, env.Env) string { return text })
}

// Text returns the label's current text.
func (w *Label[T]) Text() string { return w.current }

func (w *Label[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {}

func (w *Label[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	if _, ok := ev.(widget.WidgetAdded); ok {
		w.current = w.text(d, e)
	}
}

func (w *Label[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	text := w.text(new, e)
	if text == w.current {
		return
	}
	w.current = text
	ctx.RequestLayout()
	ctx.RequestPaint()
}

func (w *Label[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	return bc.Constrain(MeasureText(w.current))
}

func (w *Label[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	color := env.GetOr(e, theme.TextColor, graphics.ColorWhite)
	if ctx.IsDisabled() {
		color = env.GetOr(e, theme.DisabledText, color)
	}
	ctx.Canvas.DrawText(w.current, geometry.Offset{Y: baseline()}, graphics.FillPaint(color))
}

func (w *Label[T]) DebugState(d *T) widget.DebugState {
	return widget.DebugState{DisplayName: "Label", MainValue: w.current}
}

func baseline() float64 {
	return float64(labelFace.Metrics().Ascent >> 6)
}
