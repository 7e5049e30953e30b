package livebg

import "testing"

func TestFadeZeroTicks(t *testing.T) {
	f := newFade(0)
	for range 3 {
		assertNear(t, "opacity", f.advance(), 1)
	}
	f.reset()
	assertNear(t, "after reset", f.advance(), 1)
}

func TestFadeEasesToOpaque(t *testing.T) {
	f := newFade(4)
	first := f.advance()
	if !(first > 0 && first < 1) {
		t.Fatalf("first opacity = %v, want in (0, 1)", first)
	}
	// OutQuad: 1 - (1-t)^2 at t = 1/4
	assertNear(t, "first", first, 1-0.75*0.75)
	for range 3 {
		f.advance()
	}
	assertNear(t, "done", f.advance(), 1)

	f.reset()
	assertNear(t, "restarted", f.advance(), first)
}
