// Package ebitenbg hosts a livebg background in an Ebitengine window. The
// game's Draw callback is the refresh-synchronized scheduler: every Draw
// pumps one frame of the compositor onto the screen image.
package ebitenbg

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/livebg"
)

// radialSegments is the number of slices in a radial gradient fan.
const radialSegments = 48

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhite lazily creates the 3x3 white source image used for untextured
// triangles. The 1x1 center avoids sampling bleed at the edges.
func ensureWhite() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(livebg.Color{R: 1, G: 1, B: 1, A: 1}.NRGBA())
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Surface implements livebg.Surface on an *ebiten.Image. The host retargets
// it to the screen image at the start of every Draw.
type Surface struct {
	// Background fills the target on Clear. The zero value clears to
	// transparent black.
	Background livebg.Color

	target *ebiten.Image
	w, h   int

	path  vector.Path
	verts []ebiten.Vertex
	inds  []uint16
	triOp ebiten.DrawTrianglesOptions
}

// NewSurface creates a surface with no target yet.
func NewSurface() *Surface {
	s := &Surface{}
	s.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	s.triOp.AntiAlias = true
	return s
}

// SetTarget points the surface at img for subsequent draw calls.
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
	if img != nil {
		b := img.Bounds()
		s.w, s.h = b.Dx(), b.Dy()
	}
}

// SetSize records the layout size before the first target is known.
func (s *Surface) SetSize(w, h int) {
	s.w, s.h = w, h
}

// Size returns the target's size, or the last layout size.
func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

// Clear fills the target with Background.
func (s *Surface) Clear() {
	if s.target == nil {
		return
	}
	if s.Background.A == 0 {
		s.target.Clear()
		return
	}
	s.target.Fill(s.Background.NRGBA())
}

// FillCircle draws an anti-aliased filled circle.
func (s *Surface) FillCircle(cx, cy, r float64, c livebg.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), c.NRGBA(), true)
}

// StrokeLine draws an anti-aliased line.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c livebg.Color) {
	if s.target == nil {
		return
	}
	vector.StrokeLine(s.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), true)
}

// FillRect fills r with g. Radial gradients are drawn as a triangle fan with
// one ring per stop; the corners outside the last ring take the last stop's
// color, which for glows is transparent and skipped.
func (s *Surface) FillRect(r livebg.Rect, g *livebg.Gradient) {
	if s.target == nil || g == nil || len(g.Stops) == 0 {
		return
	}
	if g.Kind == livebg.GradientRadial {
		last := g.Stops[len(g.Stops)-1].Color
		if last.A > 0 {
			s.fillQuad(r, g)
		}
		s.verts, s.inds = appendRadialFan(s.verts[:0], s.inds[:0], g, radialSegments)
		s.target.DrawTriangles(s.verts, s.inds, ensureWhite(), &s.triOp)
		return
	}
	s.fillQuad(r, g)
}

// fillQuad draws r as two triangles with the gradient sampled at each
// corner.
func (s *Surface) fillQuad(r livebg.Rect, g *livebg.Gradient) {
	s.verts = s.verts[:0]
	corners := [4]livebg.Vec2{
		{X: r.X, Y: r.Y}, {X: r.X + r.Width, Y: r.Y},
		{X: r.X, Y: r.Y + r.Height}, {X: r.X + r.Width, Y: r.Y + r.Height},
	}
	for _, p := range corners {
		s.verts = append(s.verts, vertex(p.X, p.Y, g.At(p.X, p.Y)))
	}
	s.inds = append(s.inds[:0], 0, 1, 2, 1, 3, 2)
	s.target.DrawTriangles(s.verts, s.inds, ensureWhite(), &s.triOp)
}

// FillPath fills the polygon with the non-zero rule, coloring each vertex
// from the gradient.
func (s *Surface) FillPath(points []livebg.Vec2, g *livebg.Gradient) {
	if s.target == nil || g == nil || len(points) < 3 {
		return
	}
	s.path = vector.Path{}
	s.path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		s.path.LineTo(float32(p.X), float32(p.Y))
	}
	s.path.Close()

	s.verts, s.inds = s.path.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	for i := range s.verts {
		v := &s.verts[i]
		c := g.At(float64(v.DstX), float64(v.DstY))
		*v = vertex(float64(v.DstX), float64(v.DstY), c)
	}
	op := s.triOp
	op.FillRule = ebiten.FillRuleNonZero
	s.target.DrawTriangles(s.verts, s.inds, ensureWhite(), &op)
}

// vertex builds a white-textured vertex with a premultiplied color.
func vertex(x, y float64, c livebg.Color) ebiten.Vertex {
	r, g, b, a := c.Premultiplied()
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(r),
		ColorG: float32(g),
		ColorB: float32(b),
		ColorA: float32(a),
	}
}

// appendRadialFan triangulates a radial gradient: a center vertex colored
// with the first stop, then one ring of segments vertices per remaining
// stop, joined ring to ring.
func appendRadialFan(verts []ebiten.Vertex, inds []uint16, g *livebg.Gradient, segments int) ([]ebiten.Vertex, []uint16) {
	verts = append(verts, vertex(g.X0, g.Y0, g.Stops[0].Color))
	rings := 0
	for _, st := range g.Stops[1:] {
		rad := st.Offset * g.Radius
		for k := range segments {
			a := 2 * math.Pi * float64(k) / float64(segments)
			verts = append(verts, vertex(g.X0+math.Cos(a)*rad, g.Y0+math.Sin(a)*rad, st.Color))
		}
		rings++
	}
	if rings == 0 {
		return verts, inds
	}

	ring := func(r, k int) uint16 {
		return uint16(1 + r*segments + k%segments)
	}
	for k := range segments {
		inds = append(inds, 0, ring(0, k), ring(0, k+1))
	}
	for r := 1; r < rings; r++ {
		for k := range segments {
			a, b := ring(r-1, k), ring(r-1, k+1)
			c, d := ring(r, k), ring(r, k+1)
			inds = append(inds, a, c, b, b, c, d)
		}
	}
	return verts, inds
}
