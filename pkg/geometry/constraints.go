package geometry

import "math"

// Constraints describes the min/max size box a parent hands to a child
// during layout. A child must return a size within these bounds.
//
// Constraints are comparable; the pod uses equality with the previously
// received constraints to decide whether a cached layout can be reused.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// TightConstraints returns constraints that admit exactly one size.
func TightConstraints(size Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// LooseConstraints returns constraints with a zero minimum and the given maximum.
func LooseConstraints(max Size) Constraints {
	return Constraints{MaxWidth: max.Width, MaxHeight: max.Height}
}

// UnboundedConstraints returns constraints with no upper limit on either axis.
func UnboundedConstraints() Constraints {
	return Constraints{MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)}
}

// IsTight reports whether the constraints admit exactly one size.
func (c Constraints) IsTight() bool {
	return floatEqual(c.MinWidth, c.MaxWidth) && floatEqual(c.MinHeight, c.MaxHeight)
}

// Min returns the smallest size satisfying the constraints.
func (c Constraints) Min() Size {
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Max returns the largest size satisfying the constraints.
func (c Constraints) Max() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// Constrain clamps the given size to these constraints.
func (c Constraints) Constrain(size Size) Size {
	return size.Clamp(c.Min(), c.Max())
}

// Loosen returns a copy of the constraints with zero minimums.
func (c Constraints) Loosen() Constraints {
	return Constraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// Shrink reduces the maximum (and minimum, where needed) dimensions by the
// given size, flooring at zero. Containers use it to carve out space for
// their own chrome before passing constraints down.
func (c Constraints) Shrink(diff Size) Constraints {
	shrunk := Constraints{
		MinWidth:  math.Max(0, c.MinWidth-diff.Width),
		MaxWidth:  math.Max(0, c.MaxWidth-diff.Width),
		MinHeight: math.Max(0, c.MinHeight-diff.Height),
		MaxHeight: math.Max(0, c.MaxHeight-diff.Height),
	}
	return shrunk
}

// HasBoundedWidth reports whether the width is bounded above.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether the height is bounded above.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}
