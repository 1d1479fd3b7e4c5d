package despawn

import (
	"errors"
	"fmt"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/config"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/scene"
)

const (
	DefaultLifetime        = 1.0
	DefaultTargetFragments = 64
)

// Event asks for Entity to be removed and replaced by fragments. Every
// Scalar is sampled once per fragment.
type Event struct {
	Entity scene.Entity

	AngularVelocity  Scalar
	LinearVelocity   Scalar
	AdditionalLinvel Vector
	LinearDamping    Scalar
	AngularDamping   Scalar
	Lifetime         Scalar
	Mass             Scalar
	TargetFragments  int

	IgnoreParentSpeed bool
	Shrink            bool
	Fade              bool
	Gray              bool
	Recurse           bool
	// MeshOverride replaces the shape being split when valid.
	MeshOverride assets.Handle[*mesh.Mesh]
}

var (
	ErrInvalidLifetime        = errors.New("lifetime must be positive")
	ErrInvalidTargetFragments = errors.New("target fragment count must be at least 1")
)

// Validate checks the request invariants that sampling cannot repair.
func (e *Event) Validate() error {
	if lo, _ := e.Lifetime.Bounds(); lo <= 0 {
		return fmt.Errorf("%w: min %v", ErrInvalidLifetime, lo)
	}
	if e.TargetFragments < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTargetFragments, e.TargetFragments)
	}
	return nil
}

// Builder accumulates event parameters. A Builder kept around and reused
// is a preset.
type Builder struct {
	ev Event
}

func NewBuilder() *Builder {
	return &Builder{ev: Event{
		Lifetime:        Fixed(DefaultLifetime),
		TargetFragments: DefaultTargetFragments,
	}}
}

func (b *Builder) WithAngularVelocity(s Scalar) *Builder { b.ev.AngularVelocity = s; return b }
func (b *Builder) WithLinearVelocity(s Scalar) *Builder { b.ev.LinearVelocity = s; return b }
func (b *Builder) WithAdditionalLinvel(v Vector) *Builder { b.ev.AdditionalLinvel = v; return b }
func (b *Builder) WithLinearDamping(s Scalar) *Builder { b.ev.LinearDamping = s; return b }
func (b *Builder) WithAngularDamping(s Scalar) *Builder { b.ev.AngularDamping = s; return b }
func (b *Builder) WithLifetime(s Scalar) *Builder { b.ev.Lifetime = s; return b }
func (b *Builder) WithMass(s Scalar) *Builder { b.ev.Mass = s; return b }
func (b *Builder) WithTargetFragments(n int) *Builder { b.ev.TargetFragments = n; return b }
func (b *Builder) WithIgnoreParentSpeed(v bool) *Builder { b.ev.IgnoreParentSpeed = v; return b }
func (b *Builder) WithShrink(v bool) *Builder { b.ev.Shrink = v; return b }
func (b *Builder) WithFade(v bool) *Builder { b.ev.Fade = v; return b }
func (b *Builder) WithGray(v bool) *Builder { b.ev.Gray = v; return b }
func (b *Builder) WithRecurse(v bool) *Builder { b.ev.Recurse = v; return b }

func (b *Builder) WithMeshOverride(h assets.Handle[*mesh.Mesh]) *Builder {
	b.ev.MeshOverride = h
	return b
}

// Build returns an event targeting entity. The builder can be reused.
func (b *Builder) Build(entity scene.Entity) Event {
	ev := b.ev
	ev.Entity = entity
	return ev
}

// Preset is a stored parameter template.
type Preset struct {
	b Builder
}

func NewPreset(b *Builder) *Preset {
	return &Preset{b: *b}
}

func (p *Preset) CreateEvent(entity scene.Entity) Event {
	return p.b.Build(entity)
}

func scalarFromRange(r config.Range, fallback Scalar) Scalar {
	switch len(r) {
	case 1:
		return Fixed(r[0])
	case 2:
		return Range(r[0], r[1])
	}
	return fallback
}

// PresetFromConfig converts the file form of a preset. Angular velocity is
// a choice list; the other properties are a value or a [min, max] range.
func PresetFromConfig(c config.Preset) *Preset {
	b := NewBuilder().
		WithLifetime(scalarFromRange(c.Lifetime, Fixed(DefaultLifetime))).
		WithLinearVelocity(scalarFromRange(c.LinearVelocity, Scalar{})).
		WithAngularVelocity(Choice(c.AngularVelocity...)).
		WithMass(scalarFromRange(c.Mass, Scalar{})).
		WithLinearDamping(scalarFromRange(c.LinearDamping, Scalar{})).
		WithAngularDamping(scalarFromRange(c.AngularDamping, Scalar{})).
		WithAdditionalLinvel(Vector{
			X: scalarFromRange(c.AdditionalLinvel[0], Scalar{}),
			Y: scalarFromRange(c.AdditionalLinvel[1], Scalar{}),
		}).
		WithIgnoreParentSpeed(c.IgnoreParentSpeed).
		WithFade(c.Fade).
		WithShrink(c.Shrink).
		WithGray(c.Gray).
		WithRecurse(c.Recurse)
	if c.TargetFragments > 0 {
		b.WithTargetFragments(c.TargetFragments)
	}
	return NewPreset(b)
}

// PresetsFromConfig converts every configured preset.
func PresetsFromConfig(cfg *config.Config) map[string]*Preset {
	out := make(map[string]*Preset, len(cfg.Presets))
	for name, p := range cfg.Presets {
		out[name] = PresetFromConfig(p)
	}
	return out
}
