package phys

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"despawn-particles/internal/geom"
)

func newBody(vel mgl32.Vec2, damping, mass float32) *Body {
	return &Body{
		Transform: geom.Identity(),
		Velocity:  Velocity{Linear: vel},
		Damping:   Damping{Linear: damping, Angular: damping},
		Mass:      mass,
	}
}

func TestGravityScale(t *testing.T) {
	assert.Equal(t, float32(0), GravityScale(0))
	assert.Equal(t, float32(0), GravityScale(-3))
	assert.Equal(t, float32(1), GravityScale(0.001))
	assert.Equal(t, float32(1), GravityScale(1))
	assert.Equal(t, float32(1), GravityScale(250))
}

func TestIntegrateDamping(t *testing.T) {
	const elapsed = float32(1.0 / 60.0)

	b := newBody(mgl32.Vec2{10, 0}, 1, 0)
	Integrate(b, elapsed, DefaultGravity)
	assert.InDelta(t, 10/(1+elapsed), b.Velocity.Linear.X(), 1e-5)
	assert.Equal(t, float32(0), b.Velocity.Linear.Y())
	assert.InDelta(t, b.Velocity.Linear.X()*elapsed, b.Transform.Translation.X(), 1e-6)

	heavy := newBody(mgl32.Vec2{10, 0}, 1, 0.001)
	Integrate(heavy, elapsed, DefaultGravity)
	assert.InDelta(t, -150*elapsed, heavy.Velocity.Linear.Y(), 1e-5)
}

func TestIntegrateNeverFlipsSign(t *testing.T) {
	b := newBody(mgl32.Vec2{5, -5}, 1000, 0)
	b.Velocity.Angular = 3
	Integrate(b, 1, mgl32.Vec2{})
	assert.Greater(t, b.Velocity.Linear.X(), float32(0))
	assert.Less(t, b.Velocity.Linear.Y(), float32(0))
	assert.Greater(t, b.Velocity.Angular, float32(0))
}

func TestIntegrateRotation(t *testing.T) {
	b := newBody(mgl32.Vec2{}, 0, 0)
	b.Velocity.Angular = 2
	Integrate(b, 0.25, mgl32.Vec2{})
	assert.InDelta(t, 0.5, geom.AngleZ(b.Transform.Rotation), 1e-4)
}

func TestClockAccumulates(t *testing.T) {
	c := clock{step: 1.0 / 60.0}

	_, ok := c.tick(0.01)
	assert.False(t, ok)

	elapsed, ok := c.tick(0.01)
	require.True(t, ok)
	assert.InDelta(t, 0.02, elapsed, 1e-9)

	// a long frame fires once, it does not replay missed steps
	elapsed, ok = c.tick(0.5)
	require.True(t, ok)
	assert.InDelta(t, 0.5, elapsed, 1e-9)
	assert.Less(t, c.acc, c.step)
}

func TestBuiltinAdvance(t *testing.T) {
	p := NewBuiltin(DefaultOptions())
	b := newBody(mgl32.Vec2{10, 0}, 1, 0)
	p.Attach(b)
	p.Attach(b)
	require.Equal(t, 1, p.Len())

	p.Advance(1.0 / 120.0)
	assert.Equal(t, float32(10), b.Velocity.Linear.X())

	p.Advance(1.0 / 120.0)
	assert.InDelta(t, 10/(1+1.0/60.0), b.Velocity.Linear.X(), 1e-4)

	p.Detach(b)
	assert.Equal(t, 0, p.Len())
	before := b.Velocity.Linear
	p.Advance(1)
	assert.Equal(t, before, b.Velocity.Linear)
}

func TestBuiltinParallelMatchesSerial(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 4
	p := NewBuiltin(opts)

	bodies := make([]*Body, parallelThreshold*3)
	for i := range bodies {
		bodies[i] = newBody(mgl32.Vec2{float32(i), 1}, 0.5, float32(i%2))
		p.Attach(bodies[i])
	}
	// detach from the middle to exercise swap-remove
	p.Detach(bodies[10])
	p.Advance(1.0 / 60.0)

	elapsed := float32(1.0 / 60.0)
	for i, b := range bodies {
		want := newBody(mgl32.Vec2{float32(i), 1}, 0.5, float32(i%2))
		if i != 10 {
			Integrate(want, elapsed, DefaultGravity)
		}
		assert.Equal(t, want.Velocity, b.Velocity, "body %d", i)
		assert.Equal(t, want.Transform.Translation, b.Transform.Translation, "body %d", i)
	}
}

func TestChipmunkMatchesBuiltin(t *testing.T) {
	builtin := NewBuiltin(DefaultOptions())
	chip := NewChipmunk(DefaultOptions())

	a := newBody(mgl32.Vec2{40, 80}, 0.5, 1)
	a.Velocity.Angular = 3
	b := newBody(mgl32.Vec2{40, 80}, 0.5, 1)
	b.Velocity.Angular = 3
	builtin.Attach(a)
	chip.Attach(b)

	for i := 0; i < 30; i++ {
		builtin.Advance(1.0 / 60.0)
		chip.Advance(1.0 / 60.0)
	}

	assert.InDelta(t, a.Velocity.Linear.X(), b.Velocity.Linear.X(), 1e-2)
	assert.InDelta(t, a.Velocity.Linear.Y(), b.Velocity.Linear.Y(), 1e-2)
	assert.InDelta(t, a.Velocity.Angular, b.Velocity.Angular, 1e-3)
	assert.InDelta(t, a.Transform.Translation.X(), b.Transform.Translation.X(), 1e-2)
	assert.InDelta(t, a.Transform.Translation.Y(), b.Transform.Translation.Y(), 1e-2)
	assert.InDelta(t, geom.AngleZ(a.Transform.Rotation), geom.AngleZ(b.Transform.Rotation), 1e-3)

	chip.Detach(b)
	assert.Equal(t, 0, chip.Len())
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, BuiltinName, p.Name())

	p, err = NewProvider(ChipmunkName, Options{})
	require.NoError(t, err)
	assert.Equal(t, ChipmunkName, p.Name())

	_, err = NewProvider("box2d", DefaultOptions())
	assert.Error(t, err)
}
