package widget

import "github.com/go-quill/quill/pkg/geometry"

// LifeCycle is a structural or status notification delivered through the
// lifecycle pass. Lifecycle events never mutate application data; widgets
// may only adjust their private state in response.
type LifeCycle interface {
	isLifeCycle()
}

type (
	// WidgetAdded is delivered exactly once, before any other pass reaches
	// the widget. Containers receiving it must forward it to their child
	// pods so the whole new subtree initializes.
	WidgetAdded struct{}

	// SizeChanged reports the size the widget was just given by layout.
	SizeChanged struct{ Size geometry.Size }

	// HotChanged reports that the pointer entered or left the widget. It
	// is delivered before the pointer event that caused the change.
	HotChanged struct{ Hot bool }

	// FocusChanged reports that the widget gained or lost keyboard focus.
	FocusChanged struct{ Focused bool }

	// DisabledChanged reports that the widget's effective disabled state
	// flipped, whether from its own request or an ancestor's.
	DisabledChanged struct{ Disabled bool }

	// RouteWidgetAdded walks the tree after a structural change so that
	// freshly inserted pods receive WidgetAdded. Containers forward it;
	// pods convert it for uninitialized subtrees.
	RouteWidgetAdded struct{}

	// RouteFocusChanged walks the tree after the focus owner changed.
	// Pods matching Old or New convert it to a FocusChanged for their
	// widget. NoWidget means no previous or no new owner.
	RouteFocusChanged struct{ Old, New WidgetID }

	// RouteDisabledChanged walks the tree after some widget changed its
	// explicit disabled flag, recomputing effective disabled states.
	RouteDisabledChanged struct{}
)

func (WidgetAdded) isLifeCycle()          {}
func (SizeChanged) isLifeCycle()          {}
func (HotChanged) isLifeCycle()           {}
func (FocusChanged) isLifeCycle()         {}
func (DisabledChanged) isLifeCycle()      {}
func (RouteWidgetAdded) isLifeCycle()     {}
func (RouteFocusChanged) isLifeCycle()    {}
func (RouteDisabledChanged) isLifeCycle() {}
