package widget

import "sync/atomic"

// WidgetID uniquely identifies a widget instance within the process. IDs
// are stable for the lifetime of the instance and never reused.
type WidgetID uint64

// NoWidget is the zero id, used where a target is optional.
const NoWidget WidgetID = 0

var idCounter atomic.Uint64

// NextID mints a fresh widget id. Safe for concurrent use, though widget
// construction normally happens on the UI goroutine.
func NextID() WidgetID {
	return WidgetID(idCounter.Add(1))
}
