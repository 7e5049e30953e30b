package livebg

import "testing"

func TestComputeConnectionsThreshold(t *testing.T) {
	at := []Particle{NewParticle(100, 100, 1, 0.5, 0.01, 0), NewParticle(240, 100, 1, 0.5, 0.01, 0)}
	if edges := ComputeConnections(at, 140, 0.12, nil); len(edges) != 0 {
		t.Errorf("distance 140: edges = %v, want none", edges)
	}

	inside := []Particle{NewParticle(100, 100, 1, 0.5, 0.01, 0), NewParticle(239.9, 100, 1, 0.5, 0.01, 0)}
	edges := ComputeConnections(inside, 140, 0.12, nil)
	if len(edges) != 1 {
		t.Fatalf("distance 139.9: edges = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.I != 0 || e.J != 1 {
		t.Errorf("edge = (%d, %d), want (0, 1)", e.I, e.J)
	}
	if !(e.Alpha > 0) {
		t.Errorf("alpha = %v, want > 0", e.Alpha)
	}
	d := 239.9 - 100.0
	assertNear(t, "alpha", e.Alpha, (1-d/140)*0.12)
}

func TestComputeConnectionsAlphaDecreasesWithDistance(t *testing.T) {
	prev := 1.0
	for d := 0.0; d < 140; d += 7 {
		ps := []Particle{NewParticle(0, 0, 1, 0.5, 0.01, 0), NewParticle(d*0.6, d*0.8, 1, 0.5, 0.01, 0)}
		edges := ComputeConnections(ps, 140, 0.12, nil)
		if len(edges) != 1 {
			t.Fatalf("distance %v: edges = %d, want 1", d, len(edges))
		}
		if !(edges[0].Alpha < prev) {
			t.Fatalf("distance %v: alpha %v not below %v", d, edges[0].Alpha, prev)
		}
		prev = edges[0].Alpha
	}
}

func TestComputeConnectionsPairOrder(t *testing.T) {
	ps := []Particle{
		NewParticle(0, 0, 1, 0.5, 0.01, 0),
		NewParticle(50, 0, 1, 0.5, 0.01, 0),
		NewParticle(500, 500, 1, 0.5, 0.01, 0),
		NewParticle(0, 50, 1, 0.5, 0.01, 0),
	}
	edges := ComputeConnections(ps, 140, 0.12, nil)
	want := [][2]int{{0, 1}, {0, 3}, {1, 3}}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want pairs %v", edges, want)
	}
	for i, w := range want {
		if edges[i].I != w[0] || edges[i].J != w[1] {
			t.Errorf("edge %d = (%d, %d), want (%d, %d)", i, edges[i].I, edges[i].J, w[0], w[1])
		}
	}
}

func TestComputeConnectionsDegenerate(t *testing.T) {
	if edges := ComputeConnections(nil, 140, 0.12, nil); len(edges) != 0 {
		t.Errorf("no particles: edges = %v, want none", edges)
	}
	one := []Particle{NewParticle(0, 0, 1, 0.5, 0.01, 0)}
	if edges := ComputeConnections(one, 140, 0.12, nil); len(edges) != 0 {
		t.Errorf("one particle: edges = %v, want none", edges)
	}
	two := []Particle{NewParticle(0, 0, 1, 0.5, 0.01, 0), NewParticle(1, 0, 1, 0.5, 0.01, 0)}
	if edges := ComputeConnections(two, 0, 0.12, nil); len(edges) != 0 {
		t.Errorf("zero threshold: edges = %v, want none", edges)
	}
}

func TestComputeConnectionsReusesBuffer(t *testing.T) {
	ps := []Particle{NewParticle(0, 0, 1, 0.5, 0.01, 0), NewParticle(10, 0, 1, 0.5, 0.01, 0)}
	buf := make([]ConnectionEdge, 0, 8)
	buf = ComputeConnections(ps, 140, 0.12, buf)
	buf = ComputeConnections(ps, 140, 0.12, buf)
	if len(buf) != 1 {
		t.Errorf("edges = %d after two passes, want 1", len(buf))
	}
}

func TestDrawConnections(t *testing.T) {
	ps := []Particle{NewParticle(0, 0, 1, 0.5, 0.01, 0), NewParticle(70, 0, 1, 0.5, 0.01, 0)}
	edges := ComputeConnections(ps, 140, 0.12, nil)
	s := NewRecordingSurface(800, 600)
	teal := mustHex("#2dd4bf")
	DrawConnections(s, ps, edges, ConnectionStyle{Color: teal, Width: 0.6}, 1)

	if len(s.Primitives) != 1 || s.Primitives[0].Kind != PrimitiveLine {
		t.Fatalf("primitives = %v, want one line", s.Kinds())
	}
	l := s.Primitives[0]
	assertNear(t, "x1", l.X1, 70)
	assertNear(t, "width", l.Width, 0.6)
	assertNear(t, "alpha", l.Color.A, 0.06)
	assertNear(t, "green", l.Color.G, teal.G)
}
