package ebitenbg

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsInterval is how often the overlay text is redrawn, in seconds.
const fpsInterval = 0.5

// fpsOverlay shows the current FPS and TPS in the top-left corner. The text
// is rendered into its own image every ~0.5 seconds and blitted each frame.
type fpsOverlay struct {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img        *ebiten.Image
	lastUpdate float64
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{lastUpdate: fpsInterval}
}

func (o *fpsOverlay) update(dt float64) {
	o.lastUpdate += dt
	if o.lastUpdate < fpsInterval {
		return
	}
	o.lastUpdate = 0
	if o.img == nil {
		o.img = ebiten.NewImage(100, 32)
	}

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fpsText(ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}

func fpsText(fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}
