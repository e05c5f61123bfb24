// Package widget defines the tree contract at the heart of the toolkit:
// the Widget interface with its five passes, the retained Pod wrapper that
// owns geometry, identity, and dirty flags, and the context types each pass
// receives.
//
// Control flows depth-first for every pass. Data and environment flow down
// the tree; geometry requirements and repaint/relayout requests flow back
// up through the pods. A widget never talks to another widget directly; it
// mutates the shared data value or submits commands and notifications.
package widget

import (
	"fmt"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
)

// Widget is implemented by every node in the tree, parameterized over the
// application data type it reads.
//
// Containers own their children as *Pod values and forward each pass to
// them; the pods decide whether the child actually needs to run it.
type Widget[T data.Data[T]] interface {
	// Event handles a user or system event. It may mutate the data value
	// in place; the change is picked up by the following update pass.
	Event(ctx *EventCtx, ev Event, d *T, e env.Env)

	// Lifecycle handles structural and status notifications. It must not
	// mutate the data value; only the widget's private state may change.
	Lifecycle(ctx *LifeCycleCtx, ev LifeCycle, d *T, e env.Env)

	// Update reconciles the widget with changed data or environment. The
	// pod has already established that something changed; old holds the
	// value from the previous pass. Update must not mutate new.
	Update(ctx *UpdateCtx, old, new *T, e env.Env)

	// Layout measures the widget under the given constraints and returns
	// its size, which must honor the bounds. Containers must lay out and
	// position their children (via Pod.Layout and Pod.SetOrigin) before
	// returning.
	Layout(ctx *LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size

	// Paint draws the widget. Children are painted by forwarding to their
	// pods, which handle the coordinate translation.
	Paint(ctx *PaintCtx, d *T, e env.Env)
}

// DebugState is an introspection snapshot of one widget, computed eagerly
// on request. Not used on any hot path.
type DebugState struct {
	// DisplayName identifies the widget kind, by default its Go type.
	DisplayName string
	// MainValue is the widget's primary value rendered as text, like a
	// label's text or a checkbox's state. May be empty.
	MainValue string
	// Attrs holds auxiliary key/value pairs.
	Attrs map[string]string
	// Children holds the snapshots of child widgets in paint order.
	Children []DebugState
}

// Debuggable is optionally implemented by widgets that want to customize
// their DebugState snapshot. Containers should include their children's
// snapshots via Pod.DebugState.
type Debuggable[T any] interface {
	DebugState(d *T) DebugState
}

func (ds DebugState) String() string {
	if ds.MainValue == "" {
		return ds.DisplayName
	}
	return fmt.Sprintf("%s(%s)", ds.DisplayName, ds.MainValue)
}
