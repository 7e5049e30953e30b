package termbg

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/livebg"
)

// Options configures Run.
type Options struct {
	// FPS is the refresh rate of the ticker that pumps frames. Default 30.
	FPS int
	// Surface tunes the cell mapping. Zero value means DefaultSurfaceOptions.
	Surface SurfaceOptions
}

// Run drives c on an initialized screen until ctx is done or the user
// presses Esc or Ctrl-C. Terminal events are read on their own goroutine:
// pointer motion goes straight to the compositor, while resizes are handed
// to the frame loop because they reallocate the cell buffer. The caller owns
// the screen and should Fini it afterwards, which also ends the event
// goroutine.
func Run(ctx context.Context, c *livebg.Compositor, screen tcell.Screen, opts Options) error {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	so := opts.Surface
	if so == (SurfaceOptions{}) {
		so = DefaultSurfaceOptions()
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	surface := NewSurface(screen, so)
	sched := livebg.NewFrameScheduler()
	if err := c.Start(surface, sched); err != nil {
		return err
	}
	defer c.Stop()

	done := make(chan struct{})
	defer close(done)
	resized := make(chan struct{}, 1)
	quit := make(chan struct{}, 1)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				select {
				case resized <- struct{}{}:
				default:
				}
			case *tcell.EventMouse:
				col, row := ev.Position()
				x, y := surface.CellCenter(col, row)
				_ = c.PointerMove(x, y)
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					select {
					case quit <- struct{}{}:
					default:
					}
				}
			}
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-resized:
			surface.Sync()
			screen.Sync()
			w, h := surface.Size()
			_ = c.Resize(w, h)
		case <-ticker.C:
			sched.Advance(1)
			surface.Flush()
		}
	}
}
