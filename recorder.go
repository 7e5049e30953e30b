package livebg

// PrimitiveKind identifies a recorded draw call.
type PrimitiveKind uint8

const (
	PrimitiveClear  PrimitiveKind = iota // Surface.Clear
	PrimitiveCircle                      // Surface.FillCircle
	PrimitiveLine                        // Surface.StrokeLine
	PrimitiveRect                        // Surface.FillRect
	PrimitivePath                        // Surface.FillPath
)

// String returns the primitive kind's name.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveClear:
		return "clear"
	case PrimitiveCircle:
		return "circle"
	case PrimitiveLine:
		return "line"
	case PrimitiveRect:
		return "rect"
	case PrimitivePath:
		return "path"
	}
	return "unknown"
}

// Primitive is one draw call captured by a RecordingSurface. Only the fields
// relevant to Kind are set.
type Primitive struct {
	Kind     PrimitiveKind
	X0, Y0   float64 // circle center or line start
	X1, Y1   float64 // line end
	Radius   float64 // circle radius
	Width    float64 // line width
	Color    Color   // circle or line color
	Rect     Rect
	Points   []Vec2
	Gradient Gradient
}

// RecordingSurface is a Surface that stores every draw call instead of
// rendering it. It lets a compositor run headless with assertions on what
// was drawn, in order.
type RecordingSurface struct {
	Width, Height int
	Primitives    []Primitive
}

// NewRecordingSurface creates a recording surface of the given size.
func NewRecordingSurface(w, h int) *RecordingSurface {
	return &RecordingSurface{Width: w, Height: h}
}

// Size returns the configured dimensions.
func (r *RecordingSurface) Size() (int, int) { return r.Width, r.Height }

// Clear records a clear call.
func (r *RecordingSurface) Clear() {
	r.Primitives = append(r.Primitives, Primitive{Kind: PrimitiveClear})
}

// FillCircle records a filled circle.
func (r *RecordingSurface) FillCircle(cx, cy, radius float64, c Color) {
	r.Primitives = append(r.Primitives, Primitive{
		Kind: PrimitiveCircle, X0: cx, Y0: cy, Radius: radius, Color: c,
	})
}

// StrokeLine records a line.
func (r *RecordingSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	r.Primitives = append(r.Primitives, Primitive{
		Kind: PrimitiveLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c,
	})
}

// FillRect records a gradient rectangle.
func (r *RecordingSurface) FillRect(rect Rect, g *Gradient) {
	r.Primitives = append(r.Primitives, Primitive{
		Kind: PrimitiveRect, Rect: rect, Gradient: copyGradient(g),
	})
}

// FillPath records a gradient path. The points are copied.
func (r *RecordingSurface) FillPath(points []Vec2, g *Gradient) {
	pts := make([]Vec2, len(points))
	copy(pts, points)
	r.Primitives = append(r.Primitives, Primitive{
		Kind: PrimitivePath, Points: pts, Gradient: copyGradient(g),
	})
}

// Reset drops all recorded primitives.
func (r *RecordingSurface) Reset() {
	r.Primitives = r.Primitives[:0]
}

// Count returns how many recorded primitives have the given kind.
func (r *RecordingSurface) Count(kind PrimitiveKind) int {
	n := 0
	for i := range r.Primitives {
		if r.Primitives[i].Kind == kind {
			n++
		}
	}
	return n
}

// Kinds returns the recorded kinds in draw order.
func (r *RecordingSurface) Kinds() []PrimitiveKind {
	out := make([]PrimitiveKind, len(r.Primitives))
	for i := range r.Primitives {
		out[i] = r.Primitives[i].Kind
	}
	return out
}

func copyGradient(g *Gradient) Gradient {
	if g == nil {
		return Gradient{}
	}
	out := *g
	out.Stops = append([]GradientStop(nil), g.Stops...)
	return out
}
