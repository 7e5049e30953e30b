package livebg

import "math"

// ConnectionEdge joins particles I and J (I < J). Alpha is derived from
// their distance and drives the line's opacity.
type ConnectionEdge struct {
	I, J  int
	Alpha float64
}

// ConnectionStyle is how edges are stroked.
type ConnectionStyle struct {
	Color Color
	Width float64
}

// ComputeConnections appends to dst[:0] one edge for every unordered pair
// whose distance d is strictly below maxDistance, with alpha
// (1 - d/maxDistance) * scale. Pairs are enumerated i < j in index order.
//
// The scan is quadratic. Particle counts stay around a hundred, so a spatial
// index would only add bookkeeping; any replacement must produce the same
// edges and alphas.
func ComputeConnections(ps []Particle, maxDistance, scale float64, dst []ConnectionEdge) []ConnectionEdge {
	dst = dst[:0]
	if maxDistance <= 0 {
		return dst
	}
	for i := 0; i < len(ps); i++ {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			dx := a.X - b.X
			if dx >= maxDistance || dx <= -maxDistance {
				continue
			}
			dy := a.Y - b.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d < maxDistance {
				dst = append(dst, ConnectionEdge{
					I:     i,
					J:     j,
					Alpha: (1 - d/maxDistance) * scale,
				})
			}
		}
	}
	return dst
}

// DrawConnections strokes each edge between its particles' current
// positions, in edge order.
func DrawConnections(s Surface, ps []Particle, edges []ConnectionEdge, style ConnectionStyle, opacity float64) {
	for _, e := range edges {
		a, b := &ps[e.I], &ps[e.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, style.Width, style.Color.WithAlpha(e.Alpha*opacity))
	}
}
