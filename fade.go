package livebg

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fade eases the background's master opacity from 0 to 1 over a number of
// ticks. A zero-length fade is always fully opaque.
type fade struct {
	tween *gween.Tween
	value float64
	done  bool
}

func newFade(ticks int) *fade {
	if ticks <= 0 {
		return &fade{value: 1, done: true}
	}
	return &fade{tween: gween.New(0, 1, float32(ticks), ease.OutQuad)}
}

// advance moves the fade forward one tick and returns the opacity to draw
// this tick with.
func (f *fade) advance() float64 {
	if f.done {
		return f.value
	}
	v, finished := f.tween.Update(1)
	f.value = clamp01(float64(v))
	if finished {
		f.value = 1
		f.done = true
	}
	return f.value
}

// reset restarts the fade from transparent.
func (f *fade) reset() {
	if f.tween == nil {
		return
	}
	f.tween.Reset()
	f.value = 0
	f.done = false
}
