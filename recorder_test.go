package livebg

import "testing"

func TestRecordingSurfaceCopiesInputs(t *testing.T) {
	s := NewRecordingSurface(100, 50)
	w, h := s.Size()
	if w != 100 || h != 50 {
		t.Fatalf("Size = %dx%d", w, h)
	}

	pts := []Vec2{{X: 0, Y: 50}, {X: 50, Y: 10}, {X: 100, Y: 50}}
	stops := []GradientStop{{Offset: 0, Color: Color{A: 0.5}}, {Offset: 1}}
	g := LinearGradient(0, 0, 0, 50, stops...)
	s.FillPath(pts, g)

	pts[1].Y = 999
	stops[0].Color.A = 0.9

	p := s.Primitives[0]
	assertNear(t, "point", p.Points[1].Y, 10)
	assertNear(t, "stop", p.Gradient.Stops[0].Color.A, 0.5)
}

func TestRecordingSurfaceCountsAndReset(t *testing.T) {
	s := NewRecordingSurface(10, 10)
	s.Clear()
	s.FillCircle(1, 1, 1, Color{A: 1})
	s.FillCircle(2, 2, 1, Color{A: 1})
	s.StrokeLine(0, 0, 1, 1, 1, Color{A: 1})
	s.FillRect(Rect{Width: 1, Height: 1}, nil)

	if s.Count(PrimitiveCircle) != 2 || s.Count(PrimitiveLine) != 1 || s.Count(PrimitiveRect) != 1 {
		t.Errorf("kinds = %v", s.Kinds())
	}
	if got := s.Kinds()[0].String(); got != "clear" {
		t.Errorf("first kind = %q, want clear", got)
	}
	s.Reset()
	if len(s.Primitives) != 0 {
		t.Errorf("%d primitives after Reset", len(s.Primitives))
	}
}
