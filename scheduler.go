package livebg

import "sync"

// Scheduler is the host's refresh-synchronized callback primitive: fn runs
// once, approximately before the next display frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameScheduler queues frame callbacks until the host pumps it. Hosts call
// Advance once per display refresh (ebiten Draw, a terminal ticker, or a test
// loop). Callbacks requested while a frame is running wait for the next one,
// so a self-rescheduling tick runs exactly once per Advance frame.
type FrameScheduler struct {
	mu      sync.Mutex
	pending []func()
	running []func()
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestFrame queues fn for the next frame.
func (s *FrameScheduler) RequestFrame(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Advance runs the given number of frames and returns how many callbacks were
// invoked in total.
func (s *FrameScheduler) Advance(frames int) int {
	calls := 0
	for range frames {
		s.mu.Lock()
		s.running, s.pending = s.pending, s.running[:0]
		batch := s.running
		s.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		calls += len(batch)
	}
	return calls
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
