// Package particle owns live despawn fragments: their timers, visuals and
// kinematic bodies, plus the FIFO used to cap how many exist at once.
package particle

import (
	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/material"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/phys"
)

// ID identifies a particle for its whole life. IDs are never reused.
type ID uint64

type Timer struct {
	Duration float32
	Elapsed  float32
}

func NewTimer(seconds float32) Timer {
	return Timer{Duration: seconds}
}

// Tick advances the timer and clamps it at Duration.
func (t *Timer) Tick(dt float32) {
	t.Elapsed += dt
	if t.Elapsed > t.Duration {
		t.Elapsed = t.Duration
	}
}

func (t Timer) Finished() bool {
	return t.Elapsed >= t.Duration
}

// PercentLeft is 1 at spawn and 0 on expiry.
func (t Timer) PercentLeft() float32 {
	if t.Duration <= 0 {
		return 0
	}
	return 1 - t.Elapsed/t.Duration
}

type Effects uint8

const (
	Shrinking Effects = 1 << iota
	Fading
)

func (e Effects) Has(f Effects) bool { return e&f != 0 }

// Visual is what the renderer draws for a particle. Exactly one of
// Textured and Color is set.
type Visual struct {
	Mesh     *mesh.Mesh
	Textured *material.Despawn
	Color    *material.Color
	// OriginalAlpha is the tint alpha at spawn, used when fading Color.
	OriginalAlpha float32
}

type Particle struct {
	ID      ID
	Timer   Timer
	Body    phys.Body
	Visual  Visual
	Effects Effects
	// BaseScale is the spawn scale; shrinking scales down from it.
	BaseScale mgl32.Vec3
}
