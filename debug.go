package livebg

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Stats describes the most recent tick.
type Stats struct {
	Tick      uint64
	Particles int
	Edges     int
	Opacity   float64
	TickTime  time.Duration
}

// debugLog writes a stats line every LoopConfig.StatsInterval ticks when
// debug mode is on.
func (c *Compositor) debugLog(st Stats) {
	every := uint64(c.cfg.Loop.StatsInterval)
	if !c.cfg.Loop.Debug || every == 0 || st.Tick%every != 0 {
		return
	}
	c.log.Info("frame stats",
		"tick", humanize.Comma(int64(st.Tick)),
		"particles", st.Particles,
		"edges", humanize.Comma(int64(st.Edges)),
		"opacity", humanize.FtoaWithDigits(st.Opacity, 2),
		"tick_time", st.TickTime,
	)
}
