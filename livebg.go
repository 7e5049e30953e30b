package livebg

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at surface submission time.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// ParseHexColor parses a "#rrggbb" or "#rgb" string into an opaque Color.
// The leading '#' is optional, since INI files treat it as a comment marker.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// mustHex is ParseHexColor for package-level palettes.
func mustHex(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts c to a straight-alpha color.NRGBA, clamping each component.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Premultiplied returns the color components multiplied by alpha.
func (c Color) Premultiplied() (r, g, b, a float64) {
	a = clamp01(c.A)
	return clamp01(c.R) * a, clamp01(c.G) * a, clamp01(c.B) * a, a
}

// lerpColor linearly interpolates every component of a and b by t.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

// Vec2 is a 2D vector used for positions, offsets and directions.
type Vec2 struct {
	X, Y float64
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range used for randomized particle
// attributes.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// UnmarshalText parses "min max" (whitespace or comma separated). A single
// value sets both bounds.
func (r *Range) UnmarshalText(text []byte) error {
	fields := strings.FieldsFunc(string(text), func(c rune) bool {
		return c == ' ' || c == '\t' || c == ','
	})
	if len(fields) == 0 || len(fields) > 2 {
		return fmt.Errorf("parse range %q: want \"min max\"", text)
	}
	lo, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("parse range %q: %w", text, err)
	}
	hi := lo
	if len(fields) == 2 {
		if hi, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return fmt.Errorf("parse range %q: %w", text, err)
		}
	}
	if hi < lo {
		return fmt.Errorf("parse range %q: max below min", text)
	}
	r.Min, r.Max = lo, hi
	return nil
}

// MarshalText formats the range as "min max".
func (r Range) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatFloat(r.Min, 'g', -1, 64) + " " +
		strconv.FormatFloat(r.Max, 'g', -1, 64)), nil
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
