package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"despawn-particles/internal/config"
	"despawn-particles/internal/geom"
	"despawn-particles/internal/scene"
)

func TestPick(t *testing.T) {
	w := scene.NewWorld()
	a := w.Spawn(scene.WithTransform(geom.FromXY(0, 0)))
	b := w.Spawn(scene.WithTransform(geom.FromXY(30, 0)))
	targets := map[scene.Entity]float32{a: 20, b: 20}

	got, ok := pick(w, targets, mgl32.Vec2{20, 0})
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = pick(w, targets, mgl32.Vec2{100, 100})
	assert.False(t, ok)

	w.Despawn(b)
	got, ok = pick(w, targets, mgl32.Vec2{12, 0})
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestPresetNamesSorted(t *testing.T) {
	cfg := config.Default()
	cfg.Presets = map[string]config.Preset{"zap": {}, "burst": {}, "mist": {}}
	assert.Equal(t, []string{"burst", "mist", "zap"}, presetNames(cfg))
}

func TestChecker(t *testing.T) {
	img := checker(4, 4, 2)
	assert.Equal(t, img.RGBAAt(0, 0), img.RGBAAt(1, 1))
	assert.NotEqual(t, img.RGBAAt(0, 0), img.RGBAAt(2, 0))
}
