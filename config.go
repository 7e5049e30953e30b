package livebg

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"
)

// ErrInvalidConfig wraps every validation failure reported by Config.Validate.
var ErrInvalidConfig = errors.New("livebg: invalid config")

// ParticleConfig controls particle creation and motion.
type ParticleConfig struct {
	// Count is the fixed number of particles created at startup.
	Count int
	// Area is the minimum side of the square initial positions are sampled
	// from. The effective side is at least twice the larger viewport edge.
	Area float64
	// Velocity is the range each initial velocity component is drawn from.
	Velocity Range
	// Radius is the range of particle radii in pixels.
	Radius Range
	// Alpha is the range of base alpha values.
	Alpha Range
	// PulseSpeed is the range of per-tick pulse phase increments (radians).
	PulseSpeed Range
	// PulseAmplitude is how far the drawn alpha oscillates around the base.
	PulseAmplitude float64
	// Damping multiplies velocity every tick. Must be in (0, 1).
	Damping float64
	// Margin is how far past an edge a particle travels before wrapping.
	Margin float64
	// Palette lists particle colors as hex strings ("#rrggbb" or "rrggbb").
	Palette []string
}

// PointerConfig controls pointer repulsion.
type PointerConfig struct {
	Radius float64
	Force  float64
}

// ConnectionConfig controls the proximity lines between particles.
type ConnectionConfig struct {
	MaxDistance float64
	AlphaScale  float64
	LineWidth   float64
	Color       string
}

// LoopConfig controls the compositor's tick loop.
type LoopConfig struct {
	// FadeInTicks eases the whole background in over this many ticks.
	// Zero draws at full opacity from the first tick.
	FadeInTicks int
	// Debug enables periodic stats logging.
	Debug bool
	// StatsInterval is the number of ticks between debug stats lines.
	// NewCompositor treats zero as the default of 300.
	StatsInterval int
}

// Config holds every tunable of the background. Section and field names
// double as the INI keys read by LoadConfig.
type Config struct {
	Particles   ParticleConfig
	Pointer     PointerConfig
	Connections ConnectionConfig
	Loop        LoopConfig
}

// DefaultPalette is teal, cyan, amber and pink.
var DefaultPalette = []string{"#2dd4bf", "#06b6d4", "#f59e0b", "#f472b6"}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Particles: ParticleConfig{
			Count:          100,
			Area:           2000,
			Velocity:       Range{-0.3, 0.3},
			Radius:         Range{0.8, 3.0},
			Alpha:          Range{0.15, 0.65},
			PulseSpeed:     Range{0.005, 0.02},
			PulseAmplitude: 0.12,
			Damping:        0.992,
			Margin:         10,
			Palette:        append([]string(nil), DefaultPalette...),
		},
		Pointer: PointerConfig{
			Radius: 150,
			Force:  0.3,
		},
		Connections: ConnectionConfig{
			MaxDistance: 140,
			AlphaScale:  0.12,
			LineWidth:   0.6,
			Color:       "#2dd4bf",
		},
		Loop: LoopConfig{
			StatsInterval: 300,
		},
	}
}

// LoadConfig reads an INI file over DefaultConfig and validates the result.
//
//	[Particles]
//	Count = 80
//	Radius = 1 2.5
//	Palette = 2dd4bf
//	Palette = "#f59e0b"
//
// A multi-valued Palette replaces the default palette entirely.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Particles.Palette = nil
	if err := gcfg.ReadFileInto(&cfg, path); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if len(cfg.Particles.Palette) == 0 {
		cfg.Particles.Palette = append([]string(nil), DefaultPalette...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigString is LoadConfig for in-memory INI text.
func LoadConfigString(text string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Particles.Palette = nil
	if err := gcfg.ReadStringInto(&cfg, text); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(cfg.Particles.Palette) == 0 {
		cfg.Particles.Palette = append([]string(nil), DefaultPalette...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	p := &c.Particles
	switch {
	case p.Count < 0:
		return invalid("Particles.Count must be non-negative, but is %d", p.Count)
	case !finite(p.Area) || p.Area < 0:
		return invalid("Particles.Area must be non-negative, but is %g", p.Area)
	case !(p.Damping > 0 && p.Damping < 1):
		return invalid("Particles.Damping must be in (0, 1), but is %g", p.Damping)
	case !finite(p.Margin) || p.Margin < 0:
		return invalid("Particles.Margin must be non-negative, but is %g", p.Margin)
	case p.Radius.Min <= 0:
		return invalid("Particles.Radius must be positive, but starts at %g", p.Radius.Min)
	case p.Alpha.Min < 0 || p.Alpha.Max > 1:
		return invalid("Particles.Alpha must lie in [0, 1], but is [%g, %g]", p.Alpha.Min, p.Alpha.Max)
	case p.PulseSpeed.Min < 0:
		return invalid("Particles.PulseSpeed must be non-negative, but starts at %g", p.PulseSpeed.Min)
	case !finite(p.PulseAmplitude) || p.PulseAmplitude < 0:
		return invalid("Particles.PulseAmplitude must be non-negative, but is %g", p.PulseAmplitude)
	case len(p.Palette) == 0:
		return invalid("Particles.Palette needs at least one color")
	}
	for _, s := range p.Palette {
		if _, err := ParseHexColor(s); err != nil {
			return invalid("Particles.Palette: %v", err)
		}
	}

	if !finite(c.Pointer.Radius) || c.Pointer.Radius < 0 {
		return invalid("Pointer.Radius must be non-negative, but is %g", c.Pointer.Radius)
	}
	if !finite(c.Pointer.Force) {
		return invalid("Pointer.Force must be finite")
	}

	k := &c.Connections
	switch {
	case !finite(k.MaxDistance) || k.MaxDistance < 0:
		return invalid("Connections.MaxDistance must be non-negative, but is %g", k.MaxDistance)
	case k.AlphaScale < 0 || k.AlphaScale > 1:
		return invalid("Connections.AlphaScale must lie in [0, 1], but is %g", k.AlphaScale)
	case !(k.LineWidth > 0) || math.IsInf(k.LineWidth, 0):
		return invalid("Connections.LineWidth must be positive, but is %g", k.LineWidth)
	}
	if _, err := ParseHexColor(k.Color); err != nil {
		return invalid("Connections.Color: %v", err)
	}

	if c.Loop.FadeInTicks < 0 {
		return invalid("Loop.FadeInTicks must be non-negative, but is %d", c.Loop.FadeInTicks)
	}
	if c.Loop.StatsInterval < 0 {
		return invalid("Loop.StatsInterval must be non-negative, but is %d", c.Loop.StatsInterval)
	}
	return nil
}

// WithDefaults fills the unset parts of c from DefaultConfig. A section left
// entirely at its zero value takes the default section. Within a section that
// is set, fields whose zero value is never valid (Particles.Damping,
// Particles.Radius, Particles.Palette, Connections.LineWidth,
// Connections.Color) and a zero Loop.StatsInterval take their defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()

	p := &c.Particles
	if p.isZero() {
		c.Particles = d.Particles
	} else {
		if p.Damping == 0 {
			p.Damping = d.Particles.Damping
		}
		if p.Radius == (Range{}) {
			p.Radius = d.Particles.Radius
		}
		if len(p.Palette) == 0 {
			p.Palette = d.Particles.Palette
		}
	}

	if c.Pointer == (PointerConfig{}) {
		c.Pointer = d.Pointer
	}

	k := &c.Connections
	if *k == (ConnectionConfig{}) {
		c.Connections = d.Connections
	} else {
		if k.LineWidth == 0 {
			k.LineWidth = d.Connections.LineWidth
		}
		if k.Color == "" {
			k.Color = d.Connections.Color
		}
	}

	if c.Loop.StatsInterval == 0 {
		c.Loop.StatsInterval = d.Loop.StatsInterval
	}
	return c
}

func (p *ParticleConfig) isZero() bool {
	return p.Count == 0 && p.Area == 0 && p.Velocity == (Range{}) && p.Radius == (Range{}) &&
		p.Alpha == (Range{}) && p.PulseSpeed == (Range{}) && p.PulseAmplitude == 0 &&
		p.Damping == 0 && p.Margin == 0 && len(p.Palette) == 0
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// palette parses the configured particle colors. Validate has already
// rejected malformed entries.
func (p *ParticleConfig) palette() []Color {
	out := make([]Color, 0, len(p.Palette))
	for _, s := range p.Palette {
		if c, err := ParseHexColor(s); err == nil {
			out = append(out, c)
		}
	}
	return out
}
