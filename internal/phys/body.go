// Package phys integrates particle kinematics. Bodies never interact with
// each other: there is no collision and no constraint solving.
package phys

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/geom"
)

const DefaultTimeStep = 1.0 / 60.0

var DefaultGravity = mgl32.Vec2{0, -150}

type Velocity struct {
	Linear  mgl32.Vec2
	Angular float32
}

type Damping struct {
	Linear  float32
	Angular float32
}

// Body is the kinematic state of one particle. Providers hold pointers to
// bodies, so a Body must not move in memory while attached.
type Body struct {
	Transform geom.Transform
	Velocity  Velocity
	Damping   Damping
	Mass      float32
}

// GravityScale is 0 for massless bodies and 1 for any positive mass.
func GravityScale(mass float32) float32 {
	return float32(math.Ceil(float64(geom.Clamp(mass, 0, 1))))
}

// Integrate advances b by elapsed seconds: damping, gated gravity, then
// position and rotation about +Z.
func Integrate(b *Body, elapsed float32, gravity mgl32.Vec2) {
	b.Velocity.Linear = b.Velocity.Linear.Mul(1 / (1 + elapsed*b.Damping.Linear))
	b.Velocity.Angular *= 1 / (1 + elapsed*b.Damping.Angular)

	b.Velocity.Linear = b.Velocity.Linear.Add(gravity.Mul(elapsed * GravityScale(b.Mass)))

	b.Transform.Translation = b.Transform.Translation.Add(b.Velocity.Linear.Mul(elapsed).Vec3(0))
	b.Transform.RotateZ(b.Velocity.Angular * elapsed)
}
