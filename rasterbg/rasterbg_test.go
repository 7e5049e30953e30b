package rasterbg

import (
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/livebg"
)

var teal = livebg.Color{R: 45 / 255.0, G: 212 / 255.0, B: 191 / 255.0, A: 1}

func TestFillCircle(t *testing.T) {
	s := New(20, 20)
	s.FillCircle(10, 10, 5, teal)

	center := s.Image().RGBAAt(10, 10)
	assert.InDelta(t, 45, int(center.R), 2)
	assert.InDelta(t, 212, int(center.G), 2)
	assert.InDelta(t, 255, int(center.A), 2)
	assert.Zero(t, s.Image().RGBAAt(0, 0).A, "corner outside the circle")
	assert.Zero(t, s.Image().RGBAAt(10, 17).A, "below the circle")
}

func TestStrokeLine(t *testing.T) {
	s := New(20, 20)
	s.StrokeLine(2, 10, 18, 10, 2, teal)
	assert.NotZero(t, s.Image().RGBAAt(10, 9).A)
	assert.NotZero(t, s.Image().RGBAAt(10, 10).A)
	assert.Zero(t, s.Image().RGBAAt(10, 3).A)

	// degenerate strokes draw nothing
	s.Clear()
	s.StrokeLine(5, 5, 5, 5, 1, teal)
	s.StrokeLine(1, 1, 9, 9, 0, teal)
	for _, v := range s.Image().Pix {
		require.Zero(t, v)
	}
}

func TestFillRectRadialGradient(t *testing.T) {
	s := New(41, 41)
	g := livebg.RadialGradient(20.5, 20.5, 20,
		livebg.GradientStop{Offset: 0, Color: teal.WithAlpha(0.5)},
		livebg.GradientStop{Offset: 1, Color: teal.WithAlpha(0)},
	)
	s.FillRect(livebg.Rect{X: 0.5, Y: 0.5, Width: 40, Height: 40}, g)

	img := s.Image()
	assert.InDelta(t, 128, int(img.RGBAAt(20, 20).A), 2, "center")
	assert.InDelta(t, 64, int(img.RGBAAt(30, 20).A), 2, "half radius")
	assert.Zero(t, img.RGBAAt(1, 1).A, "outside the radius")
	assert.Greater(t, int(img.RGBAAt(20, 20).A), int(img.RGBAAt(25, 20).A))
}

func TestFillRectClipped(t *testing.T) {
	s := New(10, 10)
	g := livebg.LinearGradient(0, 0, 0, 10, livebg.GradientStop{Color: teal})
	s.FillRect(livebg.Rect{X: -50, Y: -50, Width: 500, Height: 500}, g)
	for _, p := range [][2]int{{0, 0}, {9, 9}, {5, 0}} {
		assert.Equal(t, uint8(255), s.Image().RGBAAt(p[0], p[1]).A)
	}
	s.FillRect(livebg.Rect{X: 100, Y: 100, Width: 5, Height: 5}, g)
}

func TestFillPath(t *testing.T) {
	s := New(20, 20)
	g := livebg.LinearGradient(0, 10, 0, 20,
		livebg.GradientStop{Offset: 0, Color: teal},
		livebg.GradientStop{Offset: 1, Color: teal.WithAlpha(0)},
	)
	s.FillPath([]livebg.Vec2{{X: 0, Y: 20}, {X: 0, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}, g)

	img := s.Image()
	assert.Zero(t, img.RGBAAt(10, 5).A, "above the path")
	top, bottom := img.RGBAAt(10, 10).A, img.RGBAAt(10, 19).A
	assert.Greater(t, int(top), int(bottom), "fades toward the bottom")
	assert.Greater(t, int(top), 200)
}

func TestPrimitivesClipToImage(t *testing.T) {
	s := New(20, 20)
	s.FillCircle(0, 0, 4, teal)
	s.StrokeLine(-10, 19, 30, 19, 2, teal)
	s.FillCircle(-50, -50, 4, teal)
	s.StrokeLine(100, 100, 120, 120, 3, teal)

	img := s.Image()
	assert.InDelta(t, 255, int(img.RGBAAt(1, 1).A), 2, "corner circle")
	assert.NotZero(t, img.RGBAAt(0, 19).A, "line enters from the left")
	assert.NotZero(t, img.RGBAAt(19, 19).A, "line leaves on the right")
	assert.Zero(t, img.RGBAAt(10, 10).A)
	assert.Zero(t, img.RGBAAt(6, 0).A, "outside the corner circle")
}

func TestPrimitivesTouchOnlyTheirBounds(t *testing.T) {
	s := New(64, 64)
	s.FillCircle(40, 40, 3, teal)
	img := s.Image()
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if x >= 36 && x < 44 && y >= 36 && y < 44 {
				continue
			}
			require.Zero(t, img.RGBAAt(x, y).A, "pixel %d,%d", x, y)
		}
	}
	assert.InDelta(t, 255, int(img.RGBAAt(40, 40).A), 2)
}

func TestResizeAndSnapshot(t *testing.T) {
	s := New(8, 8)
	s.FillCircle(4, 4, 3, teal)
	snap := s.Snapshot()
	s.Clear()
	_, _, _, a := snap.At(4, 4).RGBA()
	assert.NotZero(t, a, "snapshot survives Clear")

	s.Resize(16, 4)
	w, h := s.Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 4, h)

	empty := New(0, 0)
	empty.FillCircle(0, 0, 1, teal)
	empty.FillPath([]livebg.Vec2{{}, {X: 1}, {Y: 1}}, livebg.LinearGradient(0, 0, 1, 1))
}

func startCompositor(t *testing.T, s *Surface) (*livebg.Compositor, *livebg.FrameScheduler) {
	t.Helper()
	c, err := livebg.NewCompositor(livebg.Options{
		Rand:   rand.New(rand.NewPCG(9, 9)),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	sched := livebg.NewFrameScheduler()
	require.NoError(t, c.Start(s, sched))
	return c, sched
}

func TestCompositorFrames(t *testing.T) {
	s := New(320, 240)
	c, sched := startCompositor(t, s)
	sched.Advance(30)
	assert.Equal(t, uint64(30), c.Ticks())

	painted := 0
	pix := s.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > 0 {
			painted++
		}
	}
	assert.Greater(t, painted, 320*240/10, "glows and waves should cover a good share of the frame")

	// bottom rows sit under the wave bands
	assert.NotZero(t, s.Image().RGBAAt(160, 235).A)
}

func TestFrameCost(t *testing.T) {
	s := New(320, 240)
	c, sched := startCompositor(t, s)
	sched.Advance(1)

	start := time.Now()
	sched.Advance(1)
	elapsed := time.Since(start)
	assert.Equal(t, uint64(2), c.Ticks())
	assert.Less(t, int64(elapsed), int64(time.Second), "one 100-particle frame took %s", elapsed)
}

func TestScriptScreenshot(t *testing.T) {
	s := New(120, 80)
	c, sched := startCompositor(t, s)
	script, err := livebg.LoadScript([]byte(`{"steps": [
		{"action": "tick", "frames": 5},
		{"action": "drag", "fromX": 10, "fromY": 40, "toX": 110, "toY": 40, "frames": 5},
		{"action": "screenshot", "label": "after-drag"}
	]}`))
	require.NoError(t, err)
	script.ScreenshotDir = t.TempDir()
	require.NoError(t, script.Run(c, sched))
	require.Len(t, script.Screenshots, 1)

	f, err := os.Open(script.Screenshots[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}
