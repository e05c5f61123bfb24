// Package data defines the value-comparison model that drives selective
// recomputation in the widget tree.
//
// Application state flowing through the tree must support a cheap Same
// comparison. If Same returns true the framework skips updating, laying out
// and repainting the subtree, so Same must never report true for values
// that could render differently. The reverse is allowed: two equal values
// that were allocated separately may report false.
//
// The comparison policy deliberately differs from == in two places:
//
//   - Floating point values compare by bit pattern, not IEEE equality.
//     Two NaNs with identical bits are the same; 0.0 and -0.0 are not.
//     Widget behavior such as repaint suppression relies on this.
//   - Values held behind shared allocations (Shared, List, pointers,
//     slices, maps) compare by identity of the allocation, never by
//     structural traversal.
package data

// Data is the constraint for state types passed through the widget tree.
//
// The type parameter is the implementing type itself: a state type S
// satisfies Data[S] by providing a Same method against its own type.
// Composite types usually delegate to [SameStruct]:
//
//	type AppState struct {
//		Name  string
//		Count uint64
//	}
//
//	func (s AppState) Same(other AppState) bool {
//		return data.SameStruct(s, other)
//	}
type Data[T any] interface {
	// Same reports whether two values are the same.
	//
	// This is intended to always be a fast operation. If it returns true,
	// the two values must be equal, but two equal values need not be
	// considered the same, as is often the case for separately allocated
	// copies.
	Same(other T) bool
}
