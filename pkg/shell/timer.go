package shell

import (
	"sort"
	"sync"
)

// TimerToken correlates a fired timer callback with the widget that
// scheduled it. The zero token is never allocated and means "no timer".
type TimerToken uint64

// TimerSlots allocates timer tokens. Freed slots are reused before new ones
// are minted, smallest first, so long-running applications that churn
// timers keep their token space dense. Backends share one allocator per
// process; tests may construct their own.
type TimerSlots struct {
	mu   sync.Mutex
	free []TimerToken // sorted ascending
	next TimerToken
}

// NewTimerSlots returns an allocator whose first token is 1.
func NewTimerSlots() *TimerSlots {
	return &TimerSlots{next: 1}
}

// Alloc returns the smallest available token.
func (s *TimerSlots) Alloc() TimerToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.free) > 0 {
		tok := s.free[0]
		s.free = s.free[1:]
		return tok
	}
	tok := s.next
	s.next++
	return tok
}

// Release returns a token to the pool. Releasing the zero token or a token
// that was never allocated is a no-op.
func (s *TimerSlots) Release(tok TimerToken) {
	if tok == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok >= s.next {
		return
	}
	i := sort.Search(len(s.free), func(i int) bool { return s.free[i] >= tok })
	if i < len(s.free) && s.free[i] == tok {
		return
	}
	s.free = append(s.free, 0)
	copy(s.free[i+1:], s.free[i:])
	s.free[i] = tok
}
