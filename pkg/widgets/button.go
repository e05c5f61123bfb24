package widgets

import (
	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/theme"
	"github.com/go-quill/quill/pkg/widget"
)

// Button is a push button with a text label. The click action fires on
// release, only when the pointer is still over the button.
type Button[T data.Data[T]] struct {
	label   *Label[T]
	onClick func(ctx *widget.EventCtx, d *T, e env.Env)
}

// NewButton builds a button with fixed text and a click action.
func NewButton[T data.Data[T]](text string, onClick func(ctx *widget.EventCtx, d *T, e env.Env)) *Button[T] {
	return &Button[T]{label: StaticLabel[T](text), onClick: onClick}
}

// DynamicButton builds a button whose text follows the data.
func DynamicButton[T data.Data[T]](text func(*T, env.Env) string, onClick func(ctx *widget.EventCtx, d *T, e env.Env)) *Button[T] {
	return &Button[T]{label: NewLabel(text), onClick: onClick}
}

func (w *Button[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	switch ev.(type) {
	case widget.MouseDown:
		ctx.SetActive(true)
		ctx.RequestPaint()
		ctx.SetHandled()
	case widget.MouseUp:
		if ctx.IsActive() {
			ctx.SetActive(false)
			ctx.RequestPaint()
			if ctx.IsHot() && w.onClick != nil {
				w.onClick(ctx, d, e)
			}
			ctx.SetHandled()
		}
	}
}

func (w *Button[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	switch ev.(type) {
	case widget.HotChanged, widget.DisabledChanged:
		ctx.RequestPaint()
	}
	w.label.Lifecycle(ctx, ev, d, e)
}

func (w *Button[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	w.label.Update(ctx, old, new, e)
}

func (w *Button[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	padding := env.GetOr(e, theme.BasicPadding, 8.0)
	text := w.label.Layout(ctx, bc.Loosen(), d, e)
	return bc.Constrain(geometry.Size{
		Width:  text.Width + 2*padding,
		Height: text.Height + 2*padding,
	})
}

func (w *Button[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	bounds := ctx.Size().ToRect()

	fill := env.GetOr(e, theme.ButtonDark, graphics.RGB(0x40, 0x40, 0x40))
	switch {
	case ctx.IsDisabled():
		fill = env.GetOr(e, theme.ButtonDark, fill).WithAlpha(0x80)
	case ctx.IsActive():
		fill = env.GetOr(e, theme.ButtonActive, fill)
	case ctx.IsHot():
		fill = env.GetOr(e, theme.ButtonHot, fill)
	}
	ctx.Canvas.DrawRect(bounds, graphics.FillPaint(fill))

	border := env.GetOr(e, theme.BorderColor, graphics.ColorWhite)
	width := env.GetOr(e, theme.BorderWidth, 1.0)
	ctx.Canvas.DrawRect(bounds, graphics.StrokePaint(border, width))

	padding := env.GetOr(e, theme.BasicPadding, 8.0)
	ctx.WithSave(func(c *widget.PaintCtx) {
		c.Canvas.Translate(padding, padding)
		w.label.Paint(c, d, e)
	})
}

func (w *Button[T]) DebugState(d *T) widget.DebugState {
	return widget.DebugState{DisplayName: "Button", MainValue: w.label.Text()}
}
