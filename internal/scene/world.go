// Package scene is the host scene the despawn plugin reads from: entities
// with transforms, a parent/child hierarchy and something to draw.
package scene

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"despawn-particles/internal/geom"
	"despawn-particles/internal/phys"
)

type World struct {
	w donburi.World
}

func NewWorld() *World {
	return &World{w: donburi.NewWorld()}
}

// Option adds one component to a spawned entity.
type Option struct {
	component donburi.IComponentType
	set       func(*donburi.Entry)
}

func WithTransform(t geom.Transform) Option {
	return Option{Transform, func(e *donburi.Entry) { Transform.SetValue(e, t) }}
}

func WithSprite(s SpriteData) Option {
	return Option{Sprite, func(e *donburi.Entry) { Sprite.SetValue(e, s) }}
}

func WithAtlasSprite(s AtlasSpriteData) Option {
	return Option{AtlasSprite, func(e *donburi.Entry) { AtlasSprite.SetValue(e, s) }}
}

func WithMesh2D(m Mesh2DData) Option {
	return Option{Mesh2D, func(e *donburi.Entry) { Mesh2D.SetValue(e, m) }}
}

func WithVelocity(v phys.Velocity) Option {
	return Option{Velocity, func(e *donburi.Entry) { Velocity.SetValue(e, v) }}
}

func WithMeshOverride(o DespawnMeshOverrideData) Option {
	return Option{DespawnMeshOverride, func(e *donburi.Entry) { DespawnMeshOverride.SetValue(e, o) }}
}

func WithoutDespawnAnimation() Option {
	return Option{NoDespawnAnimation, func(*donburi.Entry) {}}
}

// Spawn creates an entity. Every entity has a Transform and a Hierarchy;
// the transform defaults to identity.
func (w *World) Spawn(opts ...Option) Entity {
	components := []donburi.IComponentType{Transform, Hierarchy}
	seen := map[donburi.IComponentType]bool{Transform: true, Hierarchy: true}
	for _, o := range opts {
		if !seen[o.component] {
			seen[o.component] = true
			components = append(components, o.component)
		}
	}

	e := w.w.Create(components...)
	entry := w.w.Entry(e)
	Transform.SetValue(entry, geom.Identity())
	Hierarchy.SetValue(entry, HierarchyData{Parent: donburi.Null})
	for _, o := range opts {
		o.set(entry)
	}
	return e
}

// AddChild parents child under parent. The child's transform becomes
// relative to the parent.
func (w *World) AddChild(parent, child Entity) {
	if !w.Valid(parent) || !w.Valid(child) {
		return
	}
	w.detach(child)

	pe := w.w.Entry(parent)
	ph := Hierarchy.Get(pe)
	ph.Children = append(ph.Children, child)

	Hierarchy.Get(w.w.Entry(child)).Parent = parent
}

func (w *World) Valid(e Entity) bool {
	return e != donburi.Null && w.w.Valid(e)
}

func (w *World) Len() int {
	return w.w.Len()
}

// Despawn removes e only. Its children are orphaned in place.
func (w *World) Despawn(e Entity) {
	if !w.Valid(e) {
		return
	}
	w.detach(e)
	for _, c := range w.Children(e) {
		if w.Valid(c) {
			Hierarchy.Get(w.w.Entry(c)).Parent = donburi.Null
		}
	}
	w.w.Remove(e)
}

// DespawnRecursive removes e and all of its descendants.
func (w *World) DespawnRecursive(e Entity) {
	if !w.Valid(e) {
		return
	}
	for _, c := range w.Children(e) {
		w.DespawnRecursive(c)
	}
	w.detach(e)
	w.w.Remove(e)
}

func (w *World) detach(e Entity) {
	h := Hierarchy.Get(w.w.Entry(e))
	parent := h.Parent
	h.Parent = donburi.Null
	if !w.Valid(parent) {
		return
	}
	ph := Hierarchy.Get(w.w.Entry(parent))
	for i, c := range ph.Children {
		if c == e {
			ph.Children = append(ph.Children[:i], ph.Children[i+1:]...)
			break
		}
	}
}

func (w *World) Parent(e Entity) (Entity, bool) {
	if !w.Valid(e) {
		return donburi.Null, false
	}
	p := Hierarchy.Get(w.w.Entry(e)).Parent
	return p, w.Valid(p)
}

// Children returns a copy of e's child list.
func (w *World) Children(e Entity) []Entity {
	if !w.Valid(e) {
		return nil
	}
	return append([]Entity(nil), Hierarchy.Get(w.w.Entry(e)).Children...)
}

func (w *World) LocalTransform(e Entity) (geom.Transform, bool) {
	if !w.Valid(e) {
		return geom.Transform{}, false
	}
	return Transform.GetValue(w.w.Entry(e)), true
}

func (w *World) SetTransform(e Entity, t geom.Transform) {
	if w.Valid(e) {
		Transform.SetValue(w.w.Entry(e), t)
	}
}

// GlobalTransform composes e's transform with every ancestor's.
func (w *World) GlobalTransform(e Entity) (geom.Transform, bool) {
	t, ok := w.LocalTransform(e)
	if !ok {
		return t, false
	}
	for p, ok := w.Parent(e); ok; p, ok = w.Parent(p) {
		pt, _ := w.LocalTransform(p)
		t = pt.Mul(t)
	}
	return t, true
}

func get[T any](w *World, e Entity, c *donburi.ComponentType[T]) (T, bool) {
	var zero T
	if !w.Valid(e) {
		return zero, false
	}
	entry := w.w.Entry(e)
	if !entry.HasComponent(c) {
		return zero, false
	}
	return c.GetValue(entry), true
}

func (w *World) Sprite(e Entity) (SpriteData, bool) { return get(w, e, Sprite) }

func (w *World) AtlasSprite(e Entity) (AtlasSpriteData, bool) { return get(w, e, AtlasSprite) }

func (w *World) Mesh2D(e Entity) (Mesh2DData, bool) { return get(w, e, Mesh2D) }

func (w *World) Velocity(e Entity) (phys.Velocity, bool) { return get(w, e, Velocity) }

func (w *World) MeshOverride(e Entity) (DespawnMeshOverrideData, bool) {
	return get(w, e, DespawnMeshOverride)
}

func (w *World) NoDespawnAnimation(e Entity) bool {
	if !w.Valid(e) {
		return false
	}
	return w.w.Entry(e).HasComponent(NoDespawnAnimation)
}

func (w *World) SetVelocity(e Entity, v phys.Velocity) {
	if !w.Valid(e) {
		return
	}
	entry := w.w.Entry(e)
	if !entry.HasComponent(Velocity) {
		entry.AddComponent(Velocity)
	}
	Velocity.SetValue(entry, v)
}

// Drawable is an entity the renderer draws: a sprite, atlas sprite or mesh.
type Drawable struct {
	Entity    Entity
	Transform geom.Transform
}

// Drawables lists every entity with something to draw, with its global
// transform.
func (w *World) Drawables() []Drawable {
	var out []Drawable
	q := donburi.NewQuery(filter.Or(
		filter.Contains(Sprite),
		filter.Contains(AtlasSprite),
		filter.Contains(Mesh2D),
	))
	q.Each(w.w, func(entry *donburi.Entry) {
		e := entry.Entity()
		t, _ := w.GlobalTransform(e)
		out = append(out, Drawable{Entity: e, Transform: t})
	})
	return out
}
