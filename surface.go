package livebg

import (
	"image"
	"math"
)

// Surface is a 2D immediate-mode drawing context supplied by the host.
// Coordinates are surface pixels with the origin at the top-left.
type Surface interface {
	// Size returns the current surface dimensions in pixels.
	Size() (width, height int)
	// Clear resets the whole surface to transparent.
	Clear()
	// FillCircle fills a circle of radius r centered at (cx, cy).
	FillCircle(cx, cy, r float64, c Color)
	// StrokeLine draws a line segment of the given width.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// FillRect fills r with the gradient g.
	FillRect(r Rect, g *Gradient)
	// FillPath fills the closed polygon described by points with g.
	FillPath(points []Vec2, g *Gradient)
}

// Snapshotter is implemented by surfaces that can hand back their pixels,
// used for screenshots during scripted runs.
type Snapshotter interface {
	Snapshot() image.Image
}

// GradientKind selects how a Gradient maps a point to its color ramp.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota // ramp along (X0,Y0) -> (X1,Y1)
	GradientRadial                     // ramp from (X0,Y0) outward to Radius
)

// GradientStop is one color stop. Offset is in [0, 1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient describes a color ramp in surface coordinates. Stops must be
// sorted by Offset. Points before the first stop take the first color and
// points past the last stop take the last color.
type Gradient struct {
	Kind   GradientKind
	X0, Y0 float64
	X1, Y1 float64
	Radius float64
	Stops  []GradientStop
}

// LinearGradient returns a linear gradient from (x0, y0) to (x1, y1).
func LinearGradient(x0, y0, x1, y1 float64, stops ...GradientStop) *Gradient {
	return &Gradient{Kind: GradientLinear, X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}
}

// RadialGradient returns a radial gradient centered at (cx, cy).
func RadialGradient(cx, cy, radius float64, stops ...GradientStop) *Gradient {
	return &Gradient{Kind: GradientRadial, X0: cx, Y0: cy, Radius: radius, Stops: stops}
}

// Offset returns the ramp position of (x, y), clamped to [0, 1].
func (g *Gradient) Offset(x, y float64) float64 {
	switch g.Kind {
	case GradientRadial:
		if g.Radius <= 0 {
			return 1
		}
		return clamp01(math.Hypot(x-g.X0, y-g.Y0) / g.Radius)
	default:
		dx, dy := g.X1-g.X0, g.Y1-g.Y0
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0
		}
		return clamp01(((x-g.X0)*dx + (y-g.Y0)*dy) / l2)
	}
}

// At returns the gradient color at (x, y).
func (g *Gradient) At(x, y float64) Color {
	return g.ColorAtOffset(g.Offset(x, y))
}

// ColorAtOffset returns the ramp color at offset t.
func (g *Gradient) ColorAtOffset(t float64) Color {
	n := len(g.Stops)
	if n == 0 {
		return ColorTransparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < n; i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return g.Stops[n-1].Color
}
