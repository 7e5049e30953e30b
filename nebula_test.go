package livebg

import (
	"math"
	"testing"
)

func TestNebulaCenterStaysNearAnchor(t *testing.T) {
	l := DefaultNebulaLayer()
	vp := Viewport{Width: 1280, Height: 720}
	for i := range l.Blobs {
		b := &l.Blobs[i]
		ax, ay := b.AnchorX*1280, b.AnchorY*720
		for tick := 0.0; tick < 50000; tick += 97 {
			cx, cy := l.Center(b, vp, tick)
			if math.Abs(cx-ax) > 0.08*1280+1e-9 || math.Abs(cy-ay) > 0.06*720+1e-9 {
				t.Fatalf("blob %d at tick %v: center (%v, %v) too far from anchor (%v, %v)", i, tick, cx, cy, ax, ay)
			}
		}
	}
}

func TestNebulaCenterAtTickZero(t *testing.T) {
	l := DefaultNebulaLayer()
	b := &l.Blobs[0]
	cx, cy := l.Center(b, Viewport{Width: 1000, Height: 500}, 0)
	// phase 0: sin(0) = 0, cos(0) = 1
	assertNear(t, "cx", cx, 200)
	assertNear(t, "cy", cy, (0.25+0.06)*500)
}

func TestNebulaRender(t *testing.T) {
	l := DefaultNebulaLayer()
	vp := Viewport{Width: 800, Height: 600}
	s := NewRecordingSurface(800, 600)
	l.Render(s, vp, 10, 1)

	if s.Count(PrimitiveRect) != 4 || len(s.Primitives) != 4 {
		t.Fatalf("primitives = %v, want 4 rects", s.Kinds())
	}
	for i, p := range s.Primitives {
		b := &l.Blobs[i]
		cx, cy := l.Center(b, vp, 10)
		assertNear(t, "width", p.Rect.Width, 2*b.Radius)
		assertNear(t, "height", p.Rect.Height, 2*b.Radius)
		assertNear(t, "left", p.Rect.X, cx-b.Radius)
		assertNear(t, "top", p.Rect.Y, cy-b.Radius)

		g := p.Gradient
		if g.Kind != GradientRadial || len(g.Stops) != 3 {
			t.Fatalf("blob %d gradient = %+v, want radial with 3 stops", i, g)
		}
		assertNear(t, "radius", g.Radius, b.Radius)
		assertNear(t, "core", g.Stops[0].Color.A, 0.06)
		assertNear(t, "mid offset", g.Stops[1].Offset, 0.5)
		assertNear(t, "mid", g.Stops[1].Color.A, 0.025)
		assertNear(t, "edge", g.Stops[2].Color.A, 0)
		assertNear(t, "hue", g.Stops[0].Color.R, b.Color.R)
	}
}

func TestNebulaRenderOpacity(t *testing.T) {
	l := DefaultNebulaLayer()
	s := NewRecordingSurface(800, 600)
	l.Render(s, Viewport{Width: 800, Height: 600}, 0, 0.5)
	assertNear(t, "core", s.Primitives[0].Gradient.Stops[0].Color.A, 0.03)
}
