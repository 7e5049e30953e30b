package livebg

import "math"

// NebulaBlob is a slowly drifting radial glow. The anchor is a fraction of
// the viewport; the radius is in pixels.
type NebulaBlob struct {
	AnchorX, AnchorY float64
	Radius           float64
	Color            Color
	// Speed is the drift's angular speed in radians per tick.
	Speed float64
	Phase float64
}

// NebulaLayer draws its blobs in order; later blobs composite over earlier
// ones. Render only reads the layer, so it may be shared between
// compositors.
type NebulaLayer struct {
	Blobs []NebulaBlob
	// DriftX and DriftY are the drift amplitudes as viewport fractions.
	DriftX, DriftY float64
	// CoreAlpha is the opacity at a blob's center; MidAlpha at half radius.
	CoreAlpha, MidAlpha float64
}

// DefaultNebulaLayer returns the teal, amber, pink and cyan glows.
func DefaultNebulaLayer() *NebulaLayer {
	return &NebulaLayer{
		Blobs: []NebulaBlob{
			{AnchorX: 0.2, AnchorY: 0.25, Radius: 280, Color: mustHex("#2dd4bf"), Speed: 0.0004, Phase: 0},
			{AnchorX: 0.75, AnchorY: 0.6, Radius: 220, Color: mustHex("#f59e0b"), Speed: 0.0003, Phase: 2},
			{AnchorX: 0.5, AnchorY: 0.8, Radius: 250, Color: mustHex("#f472b6"), Speed: 0.00035, Phase: 4},
			{AnchorX: 0.85, AnchorY: 0.2, Radius: 200, Color: mustHex("#06b6d4"), Speed: 0.00045, Phase: 1},
		},
		DriftX:    0.08,
		DriftY:    0.06,
		CoreAlpha: 0.06,
		MidAlpha:  0.025,
	}
}

// Center returns the blob's rendered center at tick t. The vertical drift
// runs at 0.7 of the horizontal speed so the path never closes into a
// circle.
func (l *NebulaLayer) Center(b *NebulaBlob, vp Viewport, t float64) (cx, cy float64) {
	cx = (b.AnchorX + math.Sin(t*b.Speed+b.Phase)*l.DriftX) * float64(vp.Width)
	cy = (b.AnchorY + math.Cos(t*b.Speed*0.7+b.Phase)*l.DriftY) * float64(vp.Height)
	return cx, cy
}

// Render fills a 2r square around each blob's center with a radial gradient
// fading from CoreAlpha through MidAlpha to transparent.
func (l *NebulaLayer) Render(s Surface, vp Viewport, t, opacity float64) {
	for i := range l.Blobs {
		b := &l.Blobs[i]
		cx, cy := l.Center(b, vp, t)
		stops := []GradientStop{
			{Offset: 0, Color: b.Color.WithAlpha(l.CoreAlpha * opacity)},
			{Offset: 0.5, Color: b.Color.WithAlpha(l.MidAlpha * opacity)},
			{Offset: 1, Color: b.Color.WithAlpha(0)},
		}
		g := Gradient{Kind: GradientRadial, X0: cx, Y0: cy, Radius: b.Radius, Stops: stops}
		s.FillRect(Rect{X: cx - b.Radius, Y: cy - b.Radius, Width: 2 * b.Radius, Height: 2 * b.Radius}, &g)
	}
}
