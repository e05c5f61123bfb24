package widget

import (
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/shell"
)

// WidgetState is the retained per-pod bookkeeping: dirty flags, geometry,
// identity, and interaction status. Flags are set by the wrapped widget
// through its context during a pass and cleared by the pod when the
// corresponding pass completes; a parent's flags are the OR of its own and
// its children's, merged upward as each pass unwinds.
type WidgetState struct {
	id WidgetID

	// Request flags. needsLayout and needsPaint start set so a fresh pod
	// always lays out and paints once.
	needsLayout   bool
	needsPaint    bool
	requestUpdate bool
	requestAnim   bool

	// Interaction status.
	hot     bool
	active  bool
	focused bool
	// hasFocus is true when this widget or a descendant holds focus. Key
	// events recurse only along the focus path.
	hasFocus bool
	disabled bool // explicitly disabled by the widget itself
	// pendingDisabled stages a SetDisabled request; it becomes effective in
	// the next RouteDisabledChanged pass, not mid-event.
	pendingDisabled bool
	// ancestorDisabled caches whether any ancestor is effectively disabled.
	ancestorDisabled bool
	// disabledChanged marks that an explicit disabled flag changed somewhere
	// in this subtree; the application answers with RouteDisabledChanged.
	disabledChanged bool
	// childrenChanged marks that a container added or removed child pods;
	// the application answers with RouteWidgetAdded.
	childrenChanged bool

	// Focus change request bubbled to the root. focusTarget is NoWidget
	// for a resign request.
	focusRequested bool
	focusTarget    WidgetID

	// Geometry. origin is relative to the parent; constraints are the ones
	// last used, kept for the layout cache.
	origin      geometry.Offset
	size        geometry.Size
	constraints geometry.Constraints
	hasLayout   bool

	// isNew is true until WidgetAdded has been delivered.
	isNew bool

	// timers holds tokens registered by this subtree, so timer events only
	// descend where they are expected. Tokens are one-shot.
	timers map[shell.TimerToken]struct{}

	// children holds the ids of widgets seen below this pod, for routing
	// targeted commands. Entries are never pruned when a child is dropped,
	// so a hit may be stale; a miss is definitive.
	children map[WidgetID]struct{}
}

func newWidgetState() WidgetState {
	return WidgetState{
		id:          NextID(),
		needsLayout: true,
		needsPaint:  true,
		isNew:       true,
	}
}

// NewRootState creates a state suitable as the synthetic parent of a root
// pod. The application layer reads the merged flags off it after a pass.
func NewRootState() *WidgetState {
	s := newWidgetState()
	s.isNew = false
	return &s
}

// ID returns the widget id.
func (s *WidgetState) ID() WidgetID { return s.id }

// NeedsLayout reports whether this subtree requested a layout pass.
func (s *WidgetState) NeedsLayout() bool { return s.needsLayout }

// NeedsPaint reports whether this subtree requested a paint pass.
func (s *WidgetState) NeedsPaint() bool { return s.needsPaint }

// WantsAnimFrame reports whether this subtree requested an animation frame.
func (s *WidgetState) WantsAnimFrame() bool { return s.requestAnim }

// ClearRequests resets the merged pass-request flags. The application
// layer calls this on the synthetic root state between pipeline runs.
func (s *WidgetState) ClearRequests() {
	s.needsLayout = false
	s.needsPaint = false
	s.requestAnim = false
	s.requestUpdate = false
}

// TakeFocusRequest returns and clears a bubbled focus change request.
// NoWidget as the target means a resign request.
func (s *WidgetState) TakeFocusRequest() (WidgetID, bool) {
	if !s.focusRequested {
		return NoWidget, false
	}
	s.focusRequested = false
	target := s.focusTarget
	s.focusTarget = NoWidget
	return target, true
}

// TakeDisabledChanged returns and clears the bubbled disabled-change flag.
// The application answers true with a RouteDisabledChanged walk.
func (s *WidgetState) TakeDisabledChanged() bool {
	changed := s.disabledChanged
	s.disabledChanged = false
	return changed
}

// TakeChildrenChanged returns and clears the bubbled structural-change
// flag. The application answers true with a RouteWidgetAdded walk.
func (s *WidgetState) TakeChildrenChanged() bool {
	changed := s.childrenChanged
	s.childrenChanged = false
	return changed
}

func (s *WidgetState) effectiveDisabled() bool {
	return s.disabled || s.ancestorDisabled
}

func (s *WidgetState) addTimer(tok shell.TimerToken) {
	if s.timers == nil {
		s.timers = map[shell.TimerToken]struct{}{}
	}
	s.timers[tok] = struct{}{}
}

func (s *WidgetState) hasTimer(tok shell.TimerToken) bool {
	_, ok := s.timers[tok]
	return ok
}

func (s *WidgetState) removeTimer(tok shell.TimerToken) {
	delete(s.timers, tok)
}

func (s *WidgetState) addChild(id WidgetID) {
	if s.children == nil {
		s.children = map[WidgetID]struct{}{}
	}
	s.children[id] = struct{}{}
}

// mayContain reports whether the given widget may live in this subtree.
func (s *WidgetState) mayContain(id WidgetID) bool {
	_, ok := s.children[id]
	return ok
}

// mergeUp folds a child's request flags into this state as a pass unwinds.
// Requests only ever travel upward.
func (s *WidgetState) mergeUp(child *WidgetState) {
	s.needsLayout = s.needsLayout || child.needsLayout
	s.needsPaint = s.needsPaint || child.needsPaint
	s.requestAnim = s.requestAnim || child.requestAnim
	s.requestUpdate = s.requestUpdate || child.requestUpdate
	s.hasFocus = s.hasFocus || child.hasFocus
	s.disabledChanged = s.disabledChanged || child.disabledChanged
	s.childrenChanged = s.childrenChanged || child.childrenChanged
	s.addChild(child.id)
	for id := range child.children {
		s.addChild(id)
	}
	// Focus requests transfer rather than copy, so a request is consumed
	// exactly once on its way to the root.
	if child.focusRequested {
		if !s.focusRequested {
			s.focusRequested = true
			s.focusTarget = child.focusTarget
		}
		child.focusRequested = false
		child.focusTarget = NoWidget
	}
	for tok := range child.timers {
		s.addTimer(tok)
	}
}
