// Package termbg runs a livebg background in a terminal through tcell. Each
// cell stands for a CellWidth x CellHeight block of virtual pixels; glows
// and waves tint cell backgrounds, particles and connections become glyphs.
package termbg

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/phanxgames/livebg"
)

// Default cell size in virtual pixels, roughly a terminal glyph's aspect.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// cell priorities; a glyph is only replaced by one of equal or higher
// priority within a frame.
const (
	layerNone = iota
	layerLine
	layerParticle
)

type cell struct {
	bg    colorful.Color
	fg    colorful.Color
	glyph rune
	layer int
}

// SurfaceOptions tunes how the background maps onto terminal cells.
type SurfaceOptions struct {
	CellWidth, CellHeight int
	// Background is the color behind everything.
	Background livebg.Color
	// GlowGain multiplies gradient alphas; the glows are far too faint to
	// register in a terminal at their true opacity.
	GlowGain float64
	// LineGain multiplies connection alphas.
	LineGain float64
	// Dither is the amplitude of the noise added to gradient alphas.
	Dither float64
	// Seed seeds the dither noise.
	Seed int64
}

// DefaultSurfaceOptions returns the stock terminal mapping.
func DefaultSurfaceOptions() SurfaceOptions {
	return SurfaceOptions{
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		Background: livebg.Color{R: 0.02, G: 0.03, B: 0.06, A: 1},
		GlowGain:   5,
		LineGain:   4,
		Dither:     0.03,
		Seed:       1,
	}
}

// Surface implements livebg.Surface on a tcell screen. Drawing only touches
// an in-memory cell buffer; Flush pushes it to the screen.
type Surface struct {
	screen     tcell.Screen
	opts       SurfaceOptions
	background colorful.Color
	noise      opensimplex.Noise
	cols, rows int
	cells      []cell
}

// NewSurface creates a surface sized to the screen.
func NewSurface(screen tcell.Screen, opts SurfaceOptions) *Surface {
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	s := &Surface{
		screen:     screen,
		opts:       opts,
		background: toColorful(opts.Background),
		noise:      opensimplex.NewNormalized(opts.Seed),
	}
	s.Sync()
	return s
}

// Sync re-reads the screen size and reallocates the cell buffer.
func (s *Surface) Sync() {
	cols, rows := s.screen.Size()
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == s.cols && rows == s.rows && s.cells != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
	s.Clear()
}

// Size returns the virtual pixel size, the cell grid scaled by the cell
// size.
func (s *Surface) Size() (int, int) {
	return s.cols * s.opts.CellWidth, s.rows * s.opts.CellHeight
}

// Grid returns the cell grid dimensions.
func (s *Surface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// CellCenter maps a cell to the virtual pixel at its center.
func (s *Surface) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * float64(s.opts.CellWidth),
		(float64(row) + 0.5) * float64(s.opts.CellHeight)
}

func (s *Surface) cellAt(x, y float64) (int, int, bool) {
	col := int(math.Floor(x / float64(s.opts.CellWidth)))
	row := int(math.Floor(y / float64(s.opts.CellHeight)))
	return col, row, col >= 0 && row >= 0 && col < s.cols && row < s.rows
}

// Clear resets every cell to the background.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{bg: s.background, fg: s.background, glyph: ' '}
	}
}

// FillCircle marks the cell under the center with a dot sized by radius.
func (s *Surface) FillCircle(cx, cy, r float64, c livebg.Color) {
	col, row, ok := s.cellAt(cx, cy)
	if !ok {
		return
	}
	glyph := '·'
	switch {
	case r >= 2.3:
		glyph = '●'
	case r >= 1.5:
		glyph = '•'
	}
	s.mark(col, row, glyph, c, math.Min(c.A*1.5, 1), layerParticle)
}

// StrokeLine walks the cells between the endpoints and marks each with a
// box-drawing glyph matching the slope.
func (s *Surface) StrokeLine(x0, y0, x1, y1, _ float64, c livebg.Color) {
	c0, r0, _ := s.cellAt(x0, y0)
	c1, r1, _ := s.cellAt(x1, y1)
	steps := max(abs(c1-c0), abs(r1-r0))
	if steps < 2 {
		return
	}
	glyph := lineGlyph(x1-x0, y1-y0)
	a := math.Min(c.A*s.opts.LineGain, 1)
	// The endpoint cells belong to the particles.
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		col := c0 + int(math.Round(t*float64(c1-c0)))
		row := r0 + int(math.Round(t*float64(r1-r0)))
		if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
			continue
		}
		s.mark(col, row, glyph, c, a, layerLine)
	}
}

func lineGlyph(dx, dy float64) rune {
	switch {
	case math.Abs(dx) > 2*math.Abs(dy):
		return '─'
	case math.Abs(dy) > 2*math.Abs(dx):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (s *Surface) mark(col, row int, glyph rune, c livebg.Color, alpha float64, layer int) {
	cl := &s.cells[row*s.cols+col]
	if layer < cl.layer {
		return
	}
	cl.glyph = glyph
	cl.layer = layer
	cl.fg = cl.bg.BlendRgb(toColorful(c), alpha).Clamped()
}

// FillRect tints every cell whose center lies inside r.
func (s *Surface) FillRect(r livebg.Rect, g *livebg.Gradient) {
	if g == nil {
		return
	}
	c0, r0, _ := s.cellAt(r.X, r.Y)
	c1, r1, _ := s.cellAt(r.X+r.Width, r.Y+r.Height)
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			x, y := s.CellCenter(col, row)
			if r.Contains(x, y) {
				s.tint(col, row, g.At(x, y))
			}
		}
	}
}

// FillPath tints every cell whose center lies inside the polygon (even-odd
// rule).
func (s *Surface) FillPath(points []livebg.Vec2, g *livebg.Gradient) {
	if g == nil || len(points) < 3 {
		return
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	c0, r0, _ := s.cellAt(minX, minY)
	c1, r1, _ := s.cellAt(maxX, maxY)
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			x, y := s.CellCenter(col, row)
			if insidePolygon(points, x, y) {
				s.tint(col, row, g.At(x, y))
			}
		}
	}
}

func insidePolygon(pts []livebg.Vec2, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

// tint blends c into the cell background at the gained, dithered alpha.
func (s *Surface) tint(col, row int, c livebg.Color) {
	if c.A <= 0 {
		return
	}
	n := s.noise.Eval2(float64(col)*0.37, float64(row)*0.37)
	a := c.A*s.opts.GlowGain + (n-0.5)*s.opts.Dither
	if a <= 0 {
		return
	}
	cl := &s.cells[row*s.cols+col]
	cl.bg = cl.bg.BlendRgb(toColorful(c), math.Min(a, 1)).Clamped()
	if cl.layer == layerNone {
		cl.fg = cl.bg
	}
}

// Flush writes the cell buffer to the screen and shows it.
func (s *Surface) Flush() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cl := &s.cells[row*s.cols+col]
			style := tcell.StyleDefault.Background(toTcell(cl.bg)).Foreground(toTcell(cl.fg))
			s.screen.SetContent(col, row, cl.glyph, nil, style)
		}
	}
	s.screen.Show()
}

func toColorful(c livebg.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
