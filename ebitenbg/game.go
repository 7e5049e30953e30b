package ebitenbg

import (
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/livebg"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height set the initial window size in device-independent
	// pixels.
	Width, Height int
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// Background fills the window before the layers are drawn.
	Background livebg.Color
	// ScreenshotDir is where F12 captures are written. Default "screenshots".
	ScreenshotDir string
}

// Game implements ebiten.Game around a Compositor. Update feeds the cursor
// to the pointer input, Layout feeds the window size to the viewport and
// Draw runs one compositor frame.
type Game struct {
	c       *livebg.Compositor
	cfg     RunConfig
	surface *Surface
	sched   *livebg.FrameScheduler
	fps     *fpsOverlay

	started  bool
	disabled bool
	shot     bool
	w, h     int
}

// NewGame creates a Game for c. The compositor is started on the first
// Update, once the window size is known.
func NewGame(c *livebg.Compositor, cfg RunConfig) *Game {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	s := NewSurface()
	s.Background = cfg.Background
	g := &Game{
		c:       c,
		cfg:     cfg,
		surface: s,
		sched:   livebg.NewFrameScheduler(),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Surface returns the game's drawing surface.
func (g *Game) Surface() *Surface { return g.surface }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if !g.started && !g.disabled {
		g.started = true
		if err := g.c.Start(g.surface, g.sched); err != nil {
			g.disabled = true
			slog.Warn("background disabled", "error", err)
		}
	}

	mx, my := ebiten.CursorPosition()
	if insideWindow(mx, my, g.w, g.h) {
		_ = g.c.PointerMove(float64(mx), float64(my))
	} else {
		g.c.PointerLeave()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.shot = true
	}
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw implements ebiten.Game. Each call is one display refresh.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.sched.Advance(1)
	if g.shot {
		g.shot = false
		g.capture(screen)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen tracks the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.surface.SetSize(g.w, g.h)
		if err := g.c.Resize(g.w, g.h); err != nil {
			slog.Debug("resize rejected", "width", g.w, "height", g.h, "error", err)
		}
	}
	return outsideWidth, outsideHeight
}

// capture writes the current screen to a PNG under ScreenshotDir.
func (g *Game) capture(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := livebg.UnpremultiplyRGBA(pixels, w, h)
	path, err := livebg.SavePNG(g.cfg.ScreenshotDir, "background", img)
	if err != nil {
		slog.Error("screenshot failed", "error", err)
		return
	}
	slog.Info("screenshot saved", "path", path)
}

func insideWindow(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}

// Run opens a window and runs c until the window is closed.
func Run(c *livebg.Compositor, cfg RunConfig) error {
	if c == nil {
		return errors.New("ebitenbg: nil compositor")
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "livebg"
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := NewGame(c, cfg)
	defer c.Stop()
	return ebiten.RunGame(g)
}
