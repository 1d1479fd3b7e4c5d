package phys

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"

	"despawn-particles/internal/geom"
)

// Chipmunk runs bodies through a cp.Space. Bodies have no shapes, so the
// space only integrates positions. Velocities are damped and pulled by
// gravity before each step, since chipmunk moves bodies before it
// updates their velocity.
type Chipmunk struct {
	space   *cp.Space
	gravity cp.Vector
	clock   clock
	bodies  map[*Body]*cp.Body
}

func NewChipmunk(opts Options) *Chipmunk {
	if opts.TimeStep <= 0 {
		opts.TimeStep = DefaultTimeStep
	}
	return &Chipmunk{
		space:   cp.NewSpace(),
		gravity: cp.Vector{X: float64(opts.Gravity.X()), Y: float64(opts.Gravity.Y())},
		clock:   clock{step: opts.TimeStep},
		bodies:  make(map[*Body]*cp.Body),
	}
}

func (p *Chipmunk) Name() string { return ChipmunkName }

func (p *Chipmunk) Len() int { return len(p.bodies) }

func (p *Chipmunk) Attach(b *Body) {
	if _, ok := p.bodies[b]; ok {
		return
	}
	cb := cp.NewBody(1, 1)
	cb.UserData = b
	cb.SetVelocityUpdateFunc(func(*cp.Body, cp.Vector, float64, float64) {})
	push(b, cb)
	p.space.AddBody(cb)
	p.bodies[b] = cb
}

func (p *Chipmunk) Detach(b *Body) {
	cb, ok := p.bodies[b]
	if !ok {
		return
	}
	p.space.RemoveBody(cb)
	delete(p.bodies, b)
}

func (p *Chipmunk) Advance(dt float64) {
	elapsed, ok := p.clock.tick(dt)
	if !ok {
		return
	}
	for b, cb := range p.bodies {
		push(b, cb)
		dampedVelocity(cb, p.gravity, elapsed)
	}
	p.space.Step(elapsed)
	for b, cb := range p.bodies {
		pull(b, cb)
	}
}

func dampedVelocity(body *cp.Body, gravity cp.Vector, dt float64) {
	b := body.UserData.(*Body)
	v := body.Velocity().Mult(1 / (1 + dt*float64(b.Damping.Linear)))
	v = v.Add(gravity.Mult(dt * float64(GravityScale(b.Mass))))
	body.SetVelocity(v.X, v.Y)
	body.SetAngularVelocity(body.AngularVelocity() / (1 + dt*float64(b.Damping.Angular)))
}

// push copies the particle state into the engine body.
func push(b *Body, cb *cp.Body) {
	t := b.Transform.Translation
	cb.SetPosition(cp.Vector{X: float64(t.X()), Y: float64(t.Y())})
	cb.SetAngle(float64(geom.AngleZ(b.Transform.Rotation)))
	cb.SetVelocity(float64(b.Velocity.Linear.X()), float64(b.Velocity.Linear.Y()))
	cb.SetAngularVelocity(float64(b.Velocity.Angular))
}

// pull copies the engine state back. Z and scale are not simulated.
func pull(b *Body, cb *cp.Body) {
	pos := cb.Position()
	b.Transform.Translation = mgl32.Vec3{float32(pos.X), float32(pos.Y), b.Transform.Translation.Z()}
	b.Transform.Rotation = mgl32.QuatRotate(float32(cb.Angle()), geom.UnitZ)
	v := cb.Velocity()
	b.Velocity.Linear = mgl32.Vec2{float32(v.X), float32(v.Y)}
	b.Velocity.Angular = float32(cb.AngularVelocity())
}
