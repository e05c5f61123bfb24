package widget

// Selector names a kind of command or notification. Selectors should be
// package-qualified strings, like "quill.scroll-to-top".
type Selector string

type targetKind int

const (
	targetGlobal targetKind = iota
	targetWidget
)

// Target addresses a command: the whole window or one widget.
type Target struct {
	kind   targetKind
	widget WidgetID
}

// Global addresses every widget in the window.
func Global() Target {
	return Target{kind: targetGlobal}
}

// ToWidget addresses a single widget by id.
func ToWidget(id WidgetID) Target {
	return Target{kind: targetWidget, widget: id}
}

// IsGlobal reports whether the target is the whole window.
func (t Target) IsGlobal() bool {
	return t.kind == targetGlobal
}

// Widget returns the addressed widget id, if the target is a widget.
func (t Target) Widget() (WidgetID, bool) {
	return t.widget, t.kind == targetWidget
}

// Command is an addressed message. Commands submitted during a pass are
// queued and dispatched as CommandEvent events in a follow-up event pass,
// never delivered re-entrantly.
type Command struct {
	Selector Selector
	Payload  any
	Target   Target
}

// NewCommand creates a global command.
func NewCommand(sel Selector, payload any) Command {
	return Command{Selector: sel, Payload: payload, Target: Global()}
}

// To returns a copy of the command addressed to the given target.
func (c Command) To(t Target) Command {
	c.Target = t
	return c
}

// CommandEvent delivers a queued command through the event pass.
type CommandEvent struct{ Command Command }

func (CommandEvent) isEvent() {}

// Payload extracts a command's payload as a T.
func Payload[T any](c Command) (T, bool) {
	v, ok := c.Payload.(T)
	return v, ok
}

// Notification is a message submitted by a widget during the event pass
// and delivered to its ancestors, nearest first, until one handles it.
type Notification struct {
	Selector Selector
	Payload  any
	// Source is the widget that submitted the notification.
	Source WidgetID
}

func (Notification) isEvent() {}

// CommandQueue collects commands submitted during passes. The application
// layer drains it between passes. Not safe for concurrent use; external
// threads must hand commands to the UI thread first.
type CommandQueue struct {
	items []Command
}

// Push appends a command.
func (q *CommandQueue) Push(c Command) {
	q.items = append(q.items, c)
}

// Drain removes and returns all queued commands in submission order.
func (q *CommandQueue) Drain() []Command {
	items := q.items
	q.items = nil
	return items
}

// Len reports the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.items)
}
