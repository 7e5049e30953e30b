package livebg

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSurfaceUnavailable is returned by Start when the host has no drawing
	// surface. The background is skipped; nothing else is affected.
	ErrSurfaceUnavailable = errors.New("livebg: drawing surface unavailable")
	// ErrNoScheduler is returned by Start without a scheduler.
	ErrNoScheduler = errors.New("livebg: no frame scheduler")
	// ErrAlreadyRunning is returned by Start on a running compositor.
	ErrAlreadyRunning = errors.New("livebg: compositor already running")
)

// State is the compositor's lifecycle state.
type State int32

const (
	StateIdle    State = iota // never started, or started without a surface
	StateRunning              // rescheduling itself every frame
	StateStopped              // halted by Stop; Start resumes it
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Options configures a Compositor. Zero fields take defaults.
type Options struct {
	// Config holds the tunables. Unset sections and fields are filled by
	// Config.WithDefaults, so the zero value means DefaultConfig().
	Config Config
	// Nebula defaults to DefaultNebulaLayer().
	Nebula *NebulaLayer
	// Waves defaults to DefaultWaveLayer().
	Waves *WaveLayer
	// Rand seeds particle creation. Nil uses a time-seeded source.
	Rand *rand.Rand
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Compositor is the background's simulation context and per-tick
// orchestrator. It owns the particle field, the tick counter and the input
// state; each tick clears the surface and draws nebula, particles,
// connections and waves in that order, then requests the next frame.
//
// Resize, PointerMove and PointerLeave may be called from any goroutine.
// Start and the scheduled ticks belong to the host's frame loop; Stop may be
// called from anywhere and takes effect at the top of the next tick.
type Compositor struct {
	cfg    Config
	id     string
	log    *slog.Logger
	rng    *rand.Rand
	input  *inputState
	nebula *NebulaLayer
	waves  *WaveLayer
	line   ConnectionStyle
	fade   *fade

	field   *ParticleField
	edges   []ConnectionEdge
	scratch waveScratch
	tick    uint64
	surface Surface
	sched   Scheduler

	state atomic.Int32
	run   atomic.Uint64

	statsMu sync.Mutex
	stats   Stats
}

// NewCompositor validates opts and builds an idle compositor.
func NewCompositor(opts Options) (*Compositor, error) {
	cfg := opts.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lineColor, err := ParseHexColor(cfg.Connections.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c := &Compositor{
		cfg:    cfg,
		id:     uuid.NewString(),
		rng:    opts.Rand,
		input:  newInputState(),
		nebula: opts.Nebula,
		waves:  opts.Waves,
		line:   ConnectionStyle{Color: lineColor, Width: cfg.Connections.LineWidth},
		fade:   newFade(cfg.Loop.FadeInTicks),
	}
	if c.nebula == nil {
		c.nebula = DefaultNebulaLayer()
	}
	if c.waves == nil {
		c.waves = DefaultWaveLayer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c.log = logger.With("background", c.id)
	return c, nil
}

// ID returns the compositor's instance id, also attached to its log lines.
func (c *Compositor) ID() string { return c.id }

// Config returns the validated configuration.
func (c *Compositor) Config() Config { return c.cfg }

// State returns the current lifecycle state.
func (c *Compositor) State() State { return State(c.state.Load()) }

// Field returns the particle field, or nil before the first Start.
func (c *Compositor) Field() *ParticleField { return c.field }

// Surface returns the surface passed to the last Start.
func (c *Compositor) Surface() Surface { return c.surface }

// Ticks returns the number of ticks run so far.
func (c *Compositor) Ticks() uint64 {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats.Tick
}

// Stats returns the most recent tick's stats.
func (c *Compositor) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// Snapshot returns the current viewport and pointer as the next tick will
// see them.
func (c *Compositor) Snapshot() Snapshot {
	return c.input.snapshot()
}

// Resize overwrites the viewport. Negative sizes are rejected and the
// previous viewport is kept.
func (c *Compositor) Resize(width, height int) error {
	if err := c.input.resize(width, height); err != nil {
		c.log.Debug("resize rejected", "width", width, "height", height)
		return err
	}
	return nil
}

// PointerMove overwrites the pointer position. Invalid coordinates are
// rejected and the previous position is kept.
func (c *Compositor) PointerMove(x, y float64) error {
	if err := c.input.move(x, y); err != nil {
		c.log.Debug("pointer move rejected", "x", x, "y", y)
		return err
	}
	return nil
}

// PointerLeave resets the pointer to PointerSentinel so it no longer repels
// particles.
func (c *Compositor) PointerLeave() {
	c.input.leave()
}

// Start reads the surface size into the viewport and schedules the first
// tick. Without a surface the background is skipped: Start logs, returns
// ErrSurfaceUnavailable and the compositor stays idle. Starting a stopped
// compositor resumes it with its particles intact; ticks scheduled by the
// earlier run are ignored.
func (c *Compositor) Start(s Surface, sched Scheduler) error {
	if s == nil {
		c.log.Info("drawing surface unavailable, background disabled")
		return ErrSurfaceUnavailable
	}
	if sched == nil {
		return ErrNoScheduler
	}
	prev := c.State()
	if prev == StateRunning {
		return ErrAlreadyRunning
	}

	w, h := s.Size()
	if err := c.Resize(w, h); err != nil {
		c.log.Warn("surface reported invalid size", "width", w, "height", h)
	}
	c.surface = s
	c.sched = sched
	if c.field == nil {
		c.field = NewParticleField(c.cfg.Particles, c.cfg.Pointer, Viewport{Width: w, Height: h}, c.rng)
	}
	if prev == StateStopped {
		c.fade.reset()
	}

	run := c.run.Add(1)
	var next func()
	next = func() { c.frame(run, next) }
	c.state.Store(int32(StateRunning))
	c.log.Info("background started", "particles", c.field.Len(), "width", w, "height", h)
	sched.RequestFrame(next)
	return nil
}

// Stop halts the loop. The tick already scheduled becomes a no-op.
func (c *Compositor) Stop() {
	if c.state.CompareAndSwap(int32(StateRunning), int32(StateStopped)) {
		c.log.Info("background stopped", "tick", c.Ticks())
	}
}

// current reports whether run is the live run and the loop is running.
func (c *Compositor) current(run uint64) bool {
	return c.State() == StateRunning && c.run.Load() == run
}

// frame is one scheduled tick of the given run.
func (c *Compositor) frame(run uint64, next func()) {
	if !c.current(run) {
		return
	}
	c.tickOnce()
	if c.current(run) {
		c.sched.RequestFrame(next)
	}
}

// tickOnce runs one simulate-and-draw cycle. A panicking surface degrades
// the frame; it never escapes the tick.
func (c *Compositor) tickOnce() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("tick recovered from panic", "tick", c.tick, "panic", r)
			c.record(Stats{Tick: c.tick, Particles: c.field.Len()})
		}
	}()

	start := time.Now()
	c.tick++
	snap := c.input.snapshot()
	opacity := c.fade.advance()
	vp := snap.Viewport
	s := c.surface

	s.Clear()
	if vp.Empty() {
		c.record(Stats{Tick: c.tick, Particles: c.field.Len(), Opacity: opacity, TickTime: time.Since(start)})
		return
	}

	t := float64(c.tick)
	c.nebula.Render(s, vp, t, opacity)

	c.field.Step(snap.Pointer, vp)
	c.field.Draw(s, opacity)

	ps := c.field.Particles()
	c.edges = ComputeConnections(ps, c.cfg.Connections.MaxDistance, c.cfg.Connections.AlphaScale, c.edges)
	DrawConnections(s, ps, c.edges, c.line, opacity)

	c.waves.render(s, vp, t, opacity, &c.scratch)

	c.record(Stats{
		Tick:      c.tick,
		Particles: len(ps),
		Edges:     len(c.edges),
		Opacity:   opacity,
		TickTime:  time.Since(start),
	})
}

func (c *Compositor) record(st Stats) {
	c.statsMu.Lock()
	c.stats = st
	c.statsMu.Unlock()
	c.debugLog(st)
}
