package livebg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Particles.Count)
	assert.Equal(t, Range{Min: -0.3, Max: 0.3}, cfg.Particles.Velocity)
	assert.Equal(t, 140.0, cfg.Connections.MaxDistance)
	assert.Equal(t, DefaultPalette, cfg.Particles.Palette)
}

func TestWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Config{}.WithDefaults())

	cfg := Config{
		Particles:   ParticleConfig{Count: 40, Alpha: Range{Min: 0.2, Max: 0.4}},
		Connections: ConnectionConfig{MaxDistance: 90},
		Loop:        LoopConfig{FadeInTicks: 12},
	}.WithDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 40, cfg.Particles.Count)
	assert.Equal(t, Range{Min: 0.2, Max: 0.4}, cfg.Particles.Alpha)
	assert.Equal(t, 0.992, cfg.Particles.Damping)
	assert.Equal(t, Range{Min: 0.8, Max: 3.0}, cfg.Particles.Radius)
	assert.Equal(t, DefaultPalette, cfg.Particles.Palette)
	assert.Zero(t, cfg.Particles.Velocity, "set sections keep their zero fields")
	assert.Equal(t, DefaultConfig().Pointer, cfg.Pointer)
	assert.Equal(t, 90.0, cfg.Connections.MaxDistance)
	assert.Zero(t, cfg.Connections.AlphaScale)
	assert.Equal(t, 0.6, cfg.Connections.LineWidth)
	assert.Equal(t, "#2dd4bf", cfg.Connections.Color)
	assert.Equal(t, 12, cfg.Loop.FadeInTicks)
	assert.Equal(t, 300, cfg.Loop.StatsInterval)

	// out-of-range values are left for Validate
	bad := Config{Particles: ParticleConfig{Damping: 1.5}}.WithDefaults()
	assert.True(t, errors.Is(bad.Validate(), ErrInvalidConfig))
}

func TestLoadConfigString(t *testing.T) {
	cfg, err := LoadConfigString(`
[Particles]
Count = 40
Radius = 1, 2.5
Damping = 0.98
Palette = ffffff
Palette = "#000000"

[Pointer]
Radius = 90

[Connections]
Color = "#f59e0b"

[Loop]
FadeInTicks = 30
Debug = true
`)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Particles.Count)
	assert.Equal(t, Range{Min: 1, Max: 2.5}, cfg.Particles.Radius)
	assert.Equal(t, 0.98, cfg.Particles.Damping)
	assert.Equal(t, []string{"ffffff", "#000000"}, cfg.Particles.Palette)
	assert.Equal(t, 90.0, cfg.Pointer.Radius)
	assert.Equal(t, 0.3, cfg.Pointer.Force, "unset keys keep their defaults")
	assert.Equal(t, "#f59e0b", cfg.Connections.Color)
	assert.Equal(t, 30, cfg.Loop.FadeInTicks)
	assert.True(t, cfg.Loop.Debug)

	pal := cfg.Particles.palette()
	require.Len(t, pal, 2)
	assert.Equal(t, Color{R: 1, G: 1, B: 1, A: 1}, pal[0])
}

func TestLoadConfigStringKeepsDefaultPalette(t *testing.T) {
	cfg, err := LoadConfigString("[Particles]\nCount = 10\n")
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, cfg.Particles.Palette)
}

func TestLoadConfigStringInvalid(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"damping", "[Particles]\nDamping = 1"},
		{"negative count", "[Particles]\nCount = -1"},
		{"alpha above one", "[Particles]\nAlpha = 0.5 1.5"},
		{"bad palette", "[Particles]\nPalette = nothex"},
		{"line width", "[Connections]\nLineWidth = 0"},
		{"fade", "[Loop]\nFadeInTicks = -3"},
	}
	for _, tt := range tests {
		_, err := LoadConfigString(tt.text)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%s: %v", tt.name, err)
	}
}

func TestLoadConfigStringSyntax(t *testing.T) {
	_, err := LoadConfigString("[Particles]\nRadius = 3 1\n")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidConfig))

	_, err = LoadConfigString("[Nope]\nX = 1\n")
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livebg.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Pointer]\nForce = 0.5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Pointer.Force)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}
