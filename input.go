package livebg

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidViewport is returned by Resize for negative dimensions.
	ErrInvalidViewport = errors.New("livebg: invalid viewport size")
	// ErrInvalidPointer is returned by PointerMove for NaN, infinite or
	// negative coordinates.
	ErrInvalidPointer = errors.New("livebg: invalid pointer position")
)

// PointerSentinel is the pointer position before any real pointer input. It
// is far enough outside any surface that no particle is ever repelled by it.
var PointerSentinel = Vec2{X: -1000, Y: -1000}

// Viewport holds the current drawing-surface dimensions in pixels.
type Viewport struct {
	Width, Height int
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Snapshot is the input state a tick reads once at its start.
type Snapshot struct {
	Viewport Viewport
	Pointer  Vec2
}

// inputState holds the viewport and pointer written by host events. Writers
// may run on any goroutine; a tick copies both fields under the same lock so
// it never sees a half-written coordinate pair.
type inputState struct {
	mu       sync.Mutex
	viewport Viewport
	pointer  Vec2
}

func newInputState() *inputState {
	return &inputState{pointer: PointerSentinel}
}

func (s *inputState) resize(w, h int) error {
	if w < 0 || h < 0 {
		return ErrInvalidViewport
	}
	s.mu.Lock()
	s.viewport = Viewport{Width: w, Height: h}
	s.mu.Unlock()
	return nil
}

func (s *inputState) move(x, y float64) error {
	if !finite(x) || !finite(y) || x < 0 || y < 0 {
		return ErrInvalidPointer
	}
	s.mu.Lock()
	s.pointer = Vec2{X: x, Y: y}
	s.mu.Unlock()
	return nil
}

func (s *inputState) leave() {
	s.mu.Lock()
	s.pointer = PointerSentinel
	s.mu.Unlock()
}

func (s *inputState) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Viewport: s.viewport, Pointer: s.pointer}
}
