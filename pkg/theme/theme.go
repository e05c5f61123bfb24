// Package theme defines the environment keys used by the built-in widgets
// and provides the default bindings for them. Applications can override
// individual values programmatically through env.Adding, or load overrides
// from a YAML file with Load.
package theme

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/graphics"
)

// Environment keys read by the built-in widgets.
var (
	WindowBackground = env.NewKey[graphics.Color]("quill.theme.window-background")
	TextColor        = env.NewKey[graphics.Color]("quill.theme.text-color")
	DisabledText     = env.NewKey[graphics.Color]("quill.theme.disabled-text")
	TextSize         = env.NewKey[float64]("quill.theme.text-size")

	ButtonLight  = env.NewKey[graphics.Color]("quill.theme.button-light")
	ButtonDark   = env.NewKey[graphics.Color]("quill.theme.button-dark")
	ButtonHot    = env.NewKey[graphics.Color]("quill.theme.button-hot")
	ButtonActive = env.NewKey[graphics.Color]("quill.theme.button-active")
	BorderColor  = env.NewKey[graphics.Color]("quill.theme.border-color")
	BorderWidth  = env.NewKey[float64]("quill.theme.border-width")

	Accent       = env.NewKey[graphics.Color]("quill.theme.accent")
	SpinnerColor = env.NewKey[graphics.Color]("quill.theme.spinner-color")

	BasicPadding = env.NewKey[float64]("quill.theme.basic-padding")
	WidgetGap    = env.NewKey[float64]("quill.theme.widget-gap")
)

// fromPalette converts an SVG 1.1 named color to a framework color.
func fromPalette(c color.RGBA) graphics.Color {
	return graphics.FromRGBA(c)
}

// Default binds every theme key on top of the given environment. The
// defaults are a dark palette drawn from the SVG 1.1 color names.
func Default(e env.Env) env.Env {
	e = env.Adding(e, WindowBackground, fromPalette(colornames.Darkslategray))
	e = env.Adding(e, TextColor, fromPalette(colornames.Whitesmoke))
	e = env.Adding(e, DisabledText, fromPalette(colornames.Gray))
	e = env.Adding(e, TextSize, 15)

	e = env.Adding(e, ButtonLight, fromPalette(colornames.Slategray))
	e = env.Adding(e, ButtonDark, fromPalette(colornames.Darkslategray))
	e = env.Adding(e, ButtonHot, fromPalette(colornames.Lightslategray))
	e = env.Adding(e, ButtonActive, fromPalette(colornames.Steelblue))
	e = env.Adding(e, BorderColor, fromPalette(colornames.Silver))
	e = env.Adding(e, BorderWidth, 1)

	e = env.Adding(e, Accent, fromPalette(colornames.Dodgerblue))
	e = env.Adding(e, SpinnerColor, fromPalette(colornames.Whitesmoke))

	e = env.Adding(e, BasicPadding, 8)
	e = env.Adding(e, WidgetGap, 4)
	return e
}
