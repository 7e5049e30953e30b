package livebg

import (
	"math"
	"math/rand/v2"
	"time"
)

// Particle is one drifting point. Position, velocity and pulse phase change
// every tick; radius, base alpha and pulse speed are fixed at creation.
type Particle struct {
	X, Y   float64
	VX, VY float64
	// Phase is the pulse phase in radians.
	Phase float64
	// ColorIndex selects the particle's color from its field's palette.
	ColorIndex int

	radius     float64
	baseAlpha  float64
	pulseSpeed float64
}

// NewParticle creates a particle at rest at (x, y) with fixed visual
// attributes.
func NewParticle(x, y, radius, baseAlpha, pulseSpeed float64, colorIndex int) Particle {
	return Particle{
		X: x, Y: y,
		ColorIndex: colorIndex,
		radius:     radius,
		baseAlpha:  baseAlpha,
		pulseSpeed: pulseSpeed,
	}
}

// Radius returns the particle's draw radius in pixels.
func (p *Particle) Radius() float64 { return p.radius }

// BaseAlpha returns the alpha the pulse oscillates around.
func (p *Particle) BaseAlpha() float64 { return p.baseAlpha }

// PulseSpeed returns the per-tick phase increment.
func (p *Particle) PulseSpeed() float64 { return p.pulseSpeed }

// Alpha returns the current pulsed alpha, baseAlpha + sin(phase)*amplitude.
// The value is not clamped.
func (p *Particle) Alpha(amplitude float64) float64 {
	return p.baseAlpha + math.Sin(p.Phase)*amplitude
}

// Repulsion returns the velocity increment the pointer applies to p. It is
// zero unless 0 < d < radius, where d is the pointer-to-particle distance;
// otherwise it points from the pointer toward p with magnitude
// ((radius-d)/radius)*force.
func Repulsion(p *Particle, pointer Vec2, radius, force float64) Vec2 {
	dx := p.X - pointer.X
	dy := p.Y - pointer.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if !(d < radius) || d <= 0 {
		return Vec2{}
	}
	f := (radius - d) / radius * force
	return Vec2{X: dx / d * f, Y: dy / d * f}
}

// ParticleField owns a fixed set of particles and advances their motion.
type ParticleField struct {
	cfg       ParticleConfig
	pointer   PointerConfig
	palette   []Color
	particles []Particle
}

// NewParticleField creates cfg.Count particles spread over a square at least
// twice the size of bounds. A nil rng uses a time-seeded source.
func NewParticleField(cfg ParticleConfig, pointer PointerConfig, bounds Viewport, rng *rand.Rand) *ParticleField {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	palette := cfg.palette()
	if len(palette) == 0 {
		palette = []Color{{R: 1, G: 1, B: 1, A: 1}}
	}

	area := max(cfg.Area, 2*float64(bounds.Width), 2*float64(bounds.Height))
	n := max(cfg.Count, 0)
	f := &ParticleField{
		cfg:       cfg,
		pointer:   pointer,
		palette:   palette,
		particles: make([]Particle, n),
	}
	for i := range f.particles {
		p := &f.particles[i]
		p.X = rng.Float64() * area
		p.Y = rng.Float64() * area
		p.VX = cfg.Velocity.Random(rng)
		p.VY = cfg.Velocity.Random(rng)
		p.radius = cfg.Radius.Random(rng)
		p.ColorIndex = rng.IntN(len(palette))
		p.baseAlpha = cfg.Alpha.Random(rng)
		p.Phase = rng.Float64() * 2 * math.Pi
		p.pulseSpeed = cfg.PulseSpeed.Random(rng)
	}
	return f
}

// newParticleFieldFrom wraps existing particles. Used by tests that need
// exact positions.
func newParticleFieldFrom(cfg ParticleConfig, pointer PointerConfig, ps []Particle) *ParticleField {
	f := &ParticleField{cfg: cfg, pointer: pointer, palette: cfg.palette(), particles: ps}
	if len(f.palette) == 0 {
		f.palette = []Color{{R: 1, G: 1, B: 1, A: 1}}
	}
	return f
}

// Particles returns the live particle slice. Callers must not grow it.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Len returns the particle count.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Palette returns the field's colors. The returned slice MUST NOT be mutated.
func (f *ParticleField) Palette() []Color {
	return f.palette
}

// Step advances every particle by one tick: pointer repulsion, damping, unit
// Euler integration, wrap into [-margin, dim+margin], pulse phase advance.
func (f *ParticleField) Step(pointer Vec2, vp Viewport) {
	damping := f.cfg.Damping
	m := f.cfg.Margin
	w := float64(vp.Width)
	h := float64(vp.Height)
	radius := f.pointer.Radius
	force := f.pointer.Force

	for i := range f.particles {
		p := &f.particles[i]

		push := Repulsion(p, pointer, radius, force)
		p.VX += push.X
		p.VY += push.Y

		p.VX *= damping
		p.VY *= damping

		p.X += p.VX
		p.Y += p.VY

		p.X = wrap(p.X, w, m)
		p.Y = wrap(p.Y, h, m)

		p.Phase += p.pulseSpeed
		if p.Phase > 2*math.Pi {
			p.Phase -= 2 * math.Pi
		}
	}
}

// wrap re-enters v at the opposite side once it leaves [-margin, dim+margin].
func wrap(v, dim, margin float64) float64 {
	if v < -margin {
		return dim + margin
	}
	if v > dim+margin {
		return -margin
	}
	return v
}

// Draw fills one circle per particle with its palette color at its pulsed
// alpha scaled by opacity.
func (f *ParticleField) Draw(s Surface, opacity float64) {
	amp := f.cfg.PulseAmplitude
	for i := range f.particles {
		p := &f.particles[i]
		a := clamp01(p.Alpha(amp)) * opacity
		s.FillCircle(p.X, p.Y, p.radius, f.palette[p.ColorIndex%len(f.palette)].WithAlpha(a))
	}
}

// Velocity returns the summed speed of all particles.
func (f *ParticleField) Velocity() float64 {
	total := 0.0
	for i := range f.particles {
		total += math.Hypot(f.particles[i].VX, f.particles[i].VY)
	}
	return total
}
