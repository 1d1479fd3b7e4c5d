package despawn

import (
	"math"
	"math/rand"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/geom"
	"despawn-particles/internal/material"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/particle"
	"despawn-particles/internal/phys"
	"despawn-particles/internal/utils"
)

// Factory turns despawn events into particles.
type Factory struct {
	scene  Scene
	assets *assets.Server
	store  *particle.Store
	queue  *particle.Queue
	rng    *rand.Rand
}

func NewFactory(sc Scene, as *assets.Server, store *particle.Store, queue *particle.Queue, rng *rand.Rand) *Factory {
	return &Factory{scene: sc, assets: as, store: store, queue: queue, rng: rng}
}

// Handle removes the event's target and spawns its fragments. The target
// is removed even when no fragments can be made. Entities marked
// NoDespawnAnimation are removed without fragments and no error.
func (f *Factory) Handle(ev Event) ([]particle.ID, error) {
	if !f.scene.Valid(ev.Entity) {
		return nil, &Error{Entity: ev.Entity, Err: ErrStaleEntity}
	}

	snap := takeSnapshot(f.scene, f.assets, &ev)
	if ev.Recurse {
		f.scene.DespawnRecursive(ev.Entity)
	} else {
		f.scene.Despawn(ev.Entity)
	}

	if snap.skip {
		return nil, nil
	}
	if snap.err != nil {
		return nil, &Error{Entity: ev.Entity, Err: snap.err}
	}
	if err := ev.Validate(); err != nil {
		return nil, &Error{Entity: ev.Entity, Err: err}
	}

	frags, err := mesh.Split(snap.visual.shape, ev.TargetFragments)
	if err != nil {
		return nil, &Error{Entity: ev.Entity, Err: err}
	}

	ids := make([]particle.ID, 0, len(frags))
	for _, frag := range frags {
		id := f.store.Spawn(f.build(&ev, &snap, frag))
		f.queue.Push(id)
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *Factory) build(ev *Event, snap *snapshot, frag mesh.Fragment) *particle.Particle {
	src := snap.transform
	ratio := snap.visual.image.ratio()
	scale := geom.MulElem3(src.Scale, ratio.Vec3(1))
	center := src.Translation

	translation := center.Add(src.Rotation.Normalize().Rotate(geom.MulElem3(frag.Offset, scale)))
	angle := geom.AngleBetween3(center, translation)

	velocity := geom.Polar(angle, ev.LinearVelocity.Sample(f.rng))
	if !ev.IgnoreParentSpeed {
		parent := snap.velocity
		radius := translation.Sub(center).Vec2().Len()
		tangential := geom.Polar(angle-math.Pi/2, radius*parent.Angular)
		velocity = velocity.Add(parent.Linear).Add(tangential)
	}
	velocity = velocity.Add(ev.AdditionalLinvel.Sample(f.rng))

	p := &particle.Particle{
		Timer: particle.NewTimer(ev.Lifetime.Sample(f.rng)),
		Body: phys.Body{
			Transform: geom.Transform{Translation: translation, Rotation: src.Rotation, Scale: scale},
			Velocity:  phys.Velocity{Linear: velocity, Angular: ev.AngularVelocity.Sample(f.rng)},
			Damping: phys.Damping{
				Linear:  ev.LinearDamping.Sample(f.rng),
				Angular: ev.AngularDamping.Sample(f.rng),
			},
			Mass: ev.Mass.Sample(f.rng),
		},
		Visual:    particle.Visual{Mesh: frag.Mesh},
		BaseScale: scale,
	}

	if img := snap.visual.image; img != nil {
		p.Visual.Textured = material.NewDespawn(img.image, img.offset, img.inputSize, img.textureSize, ev.Gray)
	} else {
		c := *snap.visual.color
		p.Visual.Color = &c
		p.Visual.OriginalAlpha = c.A
	}

	if ev.Shrink {
		p.Effects |= particle.Shrinking
	}
	if ev.Fade {
		p.Effects |= particle.Fading
	}
	return p
}

// Process handles events in order. Failures are logged and skipped.
func (f *Factory) Process(events []Event) (spawned, failed int) {
	for _, ev := range events {
		ids, err := f.Handle(ev)
		if err != nil {
			failed++
			kind := "unknown"
			if de, ok := err.(*Error); ok {
				kind = de.Kind()
			}
			utils.Errorw("despawn particles failed", "entity", ev.Entity, "kind", kind, "error", err)
			continue
		}
		spawned += len(ids)
	}
	return spawned, failed
}
