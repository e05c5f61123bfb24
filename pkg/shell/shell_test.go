package shell

import (
	"errors"
	"testing"
	"time"
)

func TestTimerSlotsSmallestFirst(t *testing.T) {
	s := NewTimerSlots()
	a, b, c := s.Alloc(), s.Alloc(), s.Alloc()
	if a != 1 || b != 2 || c != 3 {
		t.Fatalf("initial tokens = %d, %d, %d", a, b, c)
	}
	s.Release(b)
	s.Release(a)
	if got := s.Alloc(); got != 1 {
		t.Fatalf("after releasing 2 then 1, Alloc = %d, want 1", got)
	}
	if got := s.Alloc(); got != 2 {
		t.Fatalf("second Alloc = %d, want 2", got)
	}
	if got := s.Alloc(); got != 4 {
		t.Fatalf("with pool drained, Alloc = %d, want 4", got)
	}
}

func TestTimerSlotsIgnoresBogusRelease(t *testing.T) {
	s := NewTimerSlots()
	tok := s.Alloc()
	s.Release(0)
	s.Release(99)
	s.Release(tok)
	s.Release(tok) // double release
	if got := s.Alloc(); got != tok {
		t.Fatalf("Alloc = %d, want %d", got, tok)
	}
	if got := s.Alloc(); got != 2 {
		t.Fatalf("Alloc = %d, want 2", got)
	}
}

func TestHeadlessTimers(t *testing.T) {
	h := NewHeadless()
	slow := h.ScheduleTimer(100 * time.Millisecond)
	fast := h.ScheduleTimer(10 * time.Millisecond)

	fired := h.AdvanceTime(50 * time.Millisecond)
	if len(fired) != 1 || fired[0] != fast {
		t.Fatalf("fired = %v, want [%d]", fired, fast)
	}
	if h.PendingTimers() != 1 {
		t.Fatalf("pending = %d, want 1", h.PendingTimers())
	}
	fired = h.AdvanceTime(50 * time.Millisecond)
	if len(fired) != 1 || fired[0] != slow {
		t.Fatalf("fired = %v, want [%d]", fired, slow)
	}
	// Both tokens released; the smallest slot comes back first.
	if got := h.ScheduleTimer(time.Millisecond); got != fast {
		t.Fatalf("reused token = %d, want %d", got, fast)
	}
}

func TestHeadlessCancelTimer(t *testing.T) {
	h := NewHeadless()
	tok := h.ScheduleTimer(10 * time.Millisecond)
	h.CancelTimer(tok)
	if fired := h.AdvanceTime(time.Second); len(fired) != 0 {
		t.Fatalf("canceled timer fired: %v", fired)
	}
}

func TestClipboardRoundTrip(t *testing.T) {
	h := NewHeadless()
	cb := h.Clipboard()
	if _, err := cb.GetString(); !errors.Is(err, ErrDropped) {
		t.Fatalf("empty clipboard error = %v, want ErrDropped", err)
	}
	if err := cb.PutString("hello"); err != nil {
		t.Fatal(err)
	}
	if s, err := cb.GetString(); err != nil || s != "hello" {
		t.Fatalf("GetString = %q, %v", s, err)
	}
	if err := cb.PutFormat("application/x-blob", []byte{1, 2}); err != nil {
		t.Fatal(err)
	}
	payload, err := cb.GetFormat("application/x-blob")
	if err != nil || len(payload) != 2 {
		t.Fatalf("GetFormat = %v, %v", payload, err)
	}
}

func TestClipboardUnimplementedFailsSoft(t *testing.T) {
	h := NewHeadless()
	h.NoClipboard = true
	_, err := h.Clipboard().GetString()
	if !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("error = %v, want ErrUnimplemented", err)
	}
}
