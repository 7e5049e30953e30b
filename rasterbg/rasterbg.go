// Package rasterbg is a headless livebg surface that renders into an
// *image.RGBA with the pure-Go rasterizer from golang.org/x/image/vector.
// It needs no graphics driver, which makes it suitable for exporting frames
// and for scripted captures in tests.
package rasterbg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/phanxgames/livebg"
)

// kappa places cubic control points for a quarter-circle arc.
const kappa = 0.5522847498

// Surface implements livebg.Surface and livebg.Snapshotter.
type Surface struct {
	img *image.RGBA
	z   *vector.Rasterizer

	// clip is the pixel rectangle the rasterizer currently covers.
	clip image.Rectangle
}

// New creates a transparent w x h surface.
func New(w, h int) *Surface {
	w, h = max(w, 0), max(h, 0)
	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
	}
}

// Resize reallocates the backing image. The previous contents are dropped.
func (s *Surface) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if b := s.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.z.Reset(w, h)
}

// Image returns the backing image. It is overwritten by later frames.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot returns a copy of the current frame.
func (s *Surface) Snapshot() image.Image {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Size returns the image dimensions.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) empty() bool {
	return s.img.Bounds().Empty()
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// FillCircle fills a circle built from four cubic arcs.
func (s *Surface) FillCircle(cx, cy, r float64, c livebg.Color) {
	if s.empty() || r <= 0 {
		return
	}
	if !s.begin(cx-r, cy-r, cx+r, cy+r) {
		return
	}
	k := kappa * r
	s.moveTo(cx+r, cy)
	s.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.z.ClosePath()
	s.z.Draw(s.img, s.clip, image.NewUniform(c.NRGBA()), s.clip.Min)
}

// StrokeLine fills the quad spanned by the segment and its width.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c livebg.Color) {
	if s.empty() || width <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	ex, ey := math.Abs(nx), math.Abs(ny)
	if !s.begin(min(x0, x1)-ex, min(y0, y1)-ey, max(x0, x1)+ex, max(y0, y1)+ey) {
		return
	}
	s.moveTo(x0+nx, y0+ny)
	s.lineTo(x1+nx, y1+ny)
	s.lineTo(x1-nx, y1-ny)
	s.lineTo(x0-nx, y0-ny)
	s.z.ClosePath()
	s.z.Draw(s.img, s.clip, image.NewUniform(c.NRGBA()), s.clip.Min)
}

// FillRect composites the gradient over r, clipped to the image.
func (s *Surface) FillRect(r livebg.Rect, g *livebg.Gradient) {
	if s.empty() || g == nil {
		return
	}
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	).Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(s.img, rect, &gradientImage{g: g, bounds: s.img.Bounds()}, rect.Min, draw.Over)
}

// FillPath fills the closed polygon with the gradient.
func (s *Surface) FillPath(points []livebg.Vec2, g *livebg.Gradient) {
	if s.empty() || g == nil || len(points) < 3 {
		return
	}
	x0, y0, x1, y1 := points[0].X, points[0].Y, points[0].X, points[0].Y
	for _, p := range points[1:] {
		x0, y0 = min(x0, p.X), min(y0, p.Y)
		x1, y1 = max(x1, p.X), max(y1, p.Y)
	}
	if !s.begin(x0, y0, x1, y1) {
		return
	}
	s.moveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.lineTo(p.X, p.Y)
	}
	s.z.ClosePath()
	s.z.Draw(s.img, s.clip, &gradientImage{g: g, bounds: s.img.Bounds()}, s.clip.Min)
}

// begin sizes the rasterizer to the pixel bounds of [x0,x1]x[y0,y1] clipped
// to the image, padded by one pixel for coverage. Path coordinates are
// offset by the clip origin. It reports false when nothing is visible.
func (s *Surface) begin(x0, y0, x1, y1 float64) bool {
	if math.IsNaN(x0 + y0 + x1 + y1) {
		return false
	}
	s.clip = image.Rect(
		int(math.Floor(x0))-1, int(math.Floor(y0))-1,
		int(math.Ceil(x1))+1, int(math.Ceil(y1))+1,
	).Intersect(s.img.Bounds())
	if s.clip.Empty() {
		return false
	}
	s.z.Reset(s.clip.Dx(), s.clip.Dy())
	s.z.DrawOp = draw.Over
	return true
}

func (s *Surface) moveTo(x, y float64) { s.z.MoveTo(s.local(x, y)) }
func (s *Surface) lineTo(x, y float64) { s.z.LineTo(s.local(x, y)) }

func (s *Surface) cubeTo(bx, by, cx, cy, dx, dy float64) {
	x1, y1 := s.local(bx, by)
	x2, y2 := s.local(cx, cy)
	x3, y3 := s.local(dx, dy)
	s.z.CubeTo(x1, y1, x2, y2, x3, y3)
}

func (s *Surface) local(x, y float64) (float32, float32) {
	return float32(x - float64(s.clip.Min.X)), float32(y - float64(s.clip.Min.Y))
}

// gradientImage adapts a livebg.Gradient to image.Image, sampling at pixel
// centers.
type gradientImage struct {
	g      *livebg.Gradient
	bounds image.Rectangle
}

func (gi *gradientImage) ColorModel() color.Model { return color.NRGBAModel }
func (gi *gradientImage) Bounds() image.Rectangle { return gi.bounds }

func (gi *gradientImage) At(x, y int) color.Color {
	return gi.g.At(float64(x)+0.5, float64(y)+0.5).NRGBA()
}
