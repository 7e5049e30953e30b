// Package livebg renders a continuously animated generative background: a
// field of drifting particles joined by proximity lines, layered with
// drifting nebula glows and two animated wave silhouettes, composited once
// per display refresh.
//
// The package holds the simulation and the compositor. It draws through the
// [Surface] interface, so the same background runs in an Ebitengine window
// (package ebitenbg), in a terminal (package termbg) or headless into an
// image (package rasterbg).
//
// # Quick start
//
//	c, err := livebg.NewCompositor(livebg.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	sched := livebg.NewFrameScheduler()
//	surface := rasterbg.New(800, 600)
//	if err := c.Start(surface, sched); err != nil {
//		return // no surface: the background is simply skipped
//	}
//	sched.Advance(60) // one frame per display refresh
//
// # Tick
//
// Every tick the [Compositor] increments its tick counter, reads one
// snapshot of the viewport and pointer, clears the surface, then draws the
// [NebulaLayer], steps and draws the [ParticleField], computes and strokes
// the connection edges ([ComputeConnections]) and fills the [WaveLayer]
// bands. Finally it asks the [Scheduler] for the next frame. [Compositor.Stop]
// ends the loop at the top of the next tick.
//
// # Physics
//
// Particles use a fixed-timestep Euler integrator tied to the refresh rate:
// pointer repulsion inside a fixed radius, multiplicative damping, unit
// integration and wrap-around at the padded viewport edges.
//
// # Configuration
//
// All tunables live in [Config]. [LoadConfig] reads them from an INI file.
//
// # Testing
//
// [RecordingSurface] captures draw calls for assertions and [Script] replays
// pointer, resize and frame steps from JSON.
package livebg
