package shell

import (
	"sort"
	"time"

	"github.com/go-quill/quill/pkg/geometry"
)

// Headless is an in-process WindowHandle with a fake clock. It records what
// the widget tree asked of it so tests can assert on invalidations, timers,
// and clipboard traffic without a platform backend.
type Headless struct {
	slots *TimerSlots
	now   time.Duration

	pending []pendingTimer

	InvalidateCount  int
	InvalidatedRects []geometry.Rect
	AnimFrames       int
	Title            string
	CurrentCursor    Cursor
	Closed           bool

	clipboard memClipboard
	// NoClipboard makes the clipboard report ErrUnimplemented, for testing
	// graceful degradation on limited backends.
	NoClipboard bool
}

type pendingTimer struct {
	token    TimerToken
	deadline time.Duration
}

// NewHeadless returns a headless window with its own timer allocator.
func NewHeadless() *Headless {
	return &Headless{slots: NewTimerSlots()}
}

func (h *Headless) Invalidate() {
	h.InvalidateCount++
}

func (h *Headless) InvalidateRect(r geometry.Rect) {
	h.InvalidateCount++
	h.InvalidatedRects = append(h.InvalidatedRects, r)
}

func (h *Headless) RequestAnimFrame() {
	h.AnimFrames++
}

func (h *Headless) ScheduleTimer(after time.Duration) TimerToken {
	tok := h.slots.Alloc()
	h.pending = append(h.pending, pendingTimer{token: tok, deadline: h.now + after})
	return tok
}

func (h *Headless) CancelTimer(tok TimerToken) {
	for i, p := range h.pending {
		if p.token == tok {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			h.slots.Release(tok)
			return
		}
	}
}

// AdvanceTime moves the fake clock forward and returns the tokens of timers
// that fired, in deadline order. Fired tokens are released back to the
// allocator.
func (h *Headless) AdvanceTime(d time.Duration) []TimerToken {
	h.now += d
	var fired []pendingTimer
	var rest []pendingTimer
	for _, p := range h.pending {
		if p.deadline <= h.now {
			fired = append(fired, p)
		} else {
			rest = append(rest, p)
		}
	}
	h.pending = rest
	sort.Slice(fired, func(i, j int) bool { return fired[i].deadline < fired[j].deadline })
	tokens := make([]TimerToken, 0, len(fired))
	for _, p := range fired {
		tokens = append(tokens, p.token)
		h.slots.Release(p.token)
	}
	return tokens
}

// PendingTimers reports how many timers are armed.
func (h *Headless) PendingTimers() int {
	return len(h.pending)
}

func (h *Headless) Clipboard() Clipboard {
	if h.NoClipboard {
		return unimplementedClipboard{}
	}
	return &h.clipboard
}

func (h *Headless) SetTitle(title string) {
	h.Title = title
}

func (h *Headless) SetCursor(c Cursor) {
	h.CurrentCursor = c
}

func (h *Headless) Close() {
	h.Closed = true
}

type memClipboard struct {
	text    string
	hasText bool
	formats map[string][]byte
}

func (c *memClipboard) PutString(s string) error {
	c.text = s
	c.hasText = true
	return nil
}

func (c *memClipboard) GetString() (string, error) {
	if !c.hasText {
		return "", &Error{Op: "clipboard.get", Err: ErrDropped}
	}
	return c.text, nil
}

func (c *memClipboard) PutFormat(format string, payload []byte) error {
	if c.formats == nil {
		c.formats = map[string][]byte{}
	}
	c.formats[format] = append([]byte(nil), payload...)
	return nil
}

func (c *memClipboard) GetFormat(format string) ([]byte, error) {
	payload, ok := c.formats[format]
	if !ok {
		return nil, &Error{Op: "clipboard.get-format", Err: ErrDropped}
	}
	return append([]byte(nil), payload...), nil
}

type unimplementedClipboard struct{}

func (unimplementedClipboard) PutString(string) error {
	return Unimplemented("clipboard.put")
}

func (unimplementedClipboard) GetString() (string, error) {
	return "", Unimplemented("clipboard.get")
}

func (unimplementedClipboard) PutFormat(string, []byte) error {
	return Unimplemented("clipboard.put-format")
}

func (unimplementedClipboard) GetFormat(string) ([]byte, error) {
	return nil, Unimplemented("clipboard.get-format")
}
