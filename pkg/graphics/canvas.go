package graphics

import (
	"fmt"

	"github.com/go-quill/quill/pkg/geometry"
)

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// Paint carries the style parameters for a single draw operation.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// FillPaint returns a fill paint in the given color.
func FillPaint(color Color) Paint {
	return Paint{Color: color}
}

// StrokePaint returns a stroke paint in the given color and width.
func StrokePaint(color Color, width float64) Paint {
	return Paint{Color: color, Style: PaintStyleStroke, StrokeWidth: width}
}

// Canvas receives drawing operations during the paint pass.
//
// A Canvas is only valid for the duration of a single paint callback and
// must not be retained past it.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect geometry.Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect geometry.Rect, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end geometry.Offset, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center geometry.Offset, radius float64, paint Paint)

	// DrawText draws a text run anchored at the given baseline origin.
	DrawText(text string, origin geometry.Offset, paint Paint)
}
