package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1024, cfg.MaxParticles)
	assert.Equal(t, ProviderBuiltin, cfg.Physics.Provider)
	assert.InDelta(t, 1.0/60.0, cfg.Physics.TimeStep, 1e-9)
	assert.Equal(t, [2]float32{0, -150}, cfg.Physics.Gravity)
	require.NoError(t, cfg.Validate())
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("max_particles: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxParticles)
	assert.Equal(t, ProviderBuiltin, cfg.Physics.Provider)
	assert.Equal(t, [2]float32{0, -150}, cfg.Physics.Gravity)
}

func TestParsePresets(t *testing.T) {
	data := `
physics:
  provider: chipmunk
  gravity: [0, -300]
presets:
  burst:
    lifetime: 2
    target_fragments: 32
    linvel: [50, 100]
    angvel: [-5, -2.5, 2.5, 5]
    linvel_addtl: [0, [10, 20]]
    fade: true
`
	cfg, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, ProviderChipmunk, cfg.Physics.Provider)
	assert.Equal(t, [2]float32{0, -300}, cfg.Physics.Gravity)

	burst, ok := cfg.Presets["burst"]
	require.True(t, ok)
	assert.Equal(t, Range{2}, burst.Lifetime)
	assert.Equal(t, 32, burst.TargetFragments)
	assert.Equal(t, Range{50, 100}, burst.LinearVelocity)
	assert.Equal(t, []float32{-5, -2.5, 2.5, 5}, burst.AngularVelocity)
	assert.Equal(t, Range{0}, burst.AdditionalLinvel[0])
	assert.Equal(t, Range{10, 20}, burst.AdditionalLinvel[1])
	assert.True(t, burst.Fade)
	assert.False(t, burst.Shrink)
}

func TestValidate(t *testing.T) {
	_, err := Parse([]byte("max_particles: 0\n"))
	assert.ErrorIs(t, err, ErrMaxParticles)

	_, err = Parse([]byte("physics:\n  provider: box2d\n"))
	assert.ErrorIs(t, err, ErrProvider)

	_, err = Parse([]byte("physics:\n  timestep: -1\n"))
	assert.ErrorIs(t, err, ErrTimeStep)

	_, err = Parse([]byte("presets:\n  bad:\n    mass: [1, 2, 3]\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "despawn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_particles: 64\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxParticles)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
