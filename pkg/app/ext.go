package app

import (
	"sync"

	"github.com/go-quill/quill/pkg/widget"
)

// ExternalHandle lets goroutines outside the UI thread submit commands to
// a running tree. Submissions are buffered; the event loop moves them onto
// the UI thread by calling AppRoot.PumpExternal between platform events.
type ExternalHandle struct {
	mu      sync.Mutex
	pending []widget.Command
	wake    func()
}

// Submit queues a command for dispatch on the UI thread. Safe for
// concurrent use.
func (h *ExternalHandle) Submit(c widget.Command) {
	h.mu.Lock()
	h.pending = append(h.pending, c)
	wake := h.wake
	h.mu.Unlock()
	if wake != nil {
		wake()
	}
}

func (h *ExternalHandle) take() []widget.Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	pending := h.pending
	h.pending = nil
	return pending
}

// ExternalHandle returns the submitter for this tree, creating it on first
// use. Submissions wake the window so the event loop runs soon.
func (a *AppRoot[T]) ExternalHandle() *ExternalHandle {
	if a.external == nil {
		a.external = &ExternalHandle{wake: a.window.Invalidate}
	}
	return a.external
}

// PumpExternal dispatches externally submitted commands. The event loop
// calls it on the UI thread, typically once per iteration.
func (a *AppRoot[T]) PumpExternal() {
	if a.external == nil {
		return
	}
	pending := a.external.take()
	if len(pending) == 0 {
		return
	}
	for _, c := range pending {
		a.queue.Push(c)
	}
	a.settle()
}
