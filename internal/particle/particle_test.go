package particle

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"despawn-particles/internal/geom"
	"despawn-particles/internal/material"
	"despawn-particles/internal/phys"
)

func newStore() (*Store, phys.Provider) {
	p := phys.NewBuiltin(phys.DefaultOptions())
	return NewStore(p), p
}

func spawn(s *Store, lifetime float32, effects Effects, visual Visual) *Particle {
	p := &Particle{
		Timer:   NewTimer(lifetime),
		Body:    phys.Body{Transform: geom.Identity()},
		Visual:  visual,
		Effects: effects,
	}
	s.Spawn(p)
	return p
}

func TestTimer(t *testing.T) {
	tm := NewTimer(2)
	assert.Equal(t, float32(1), tm.PercentLeft())
	tm.Tick(1)
	assert.InDelta(t, 0.5, tm.PercentLeft(), 1e-6)
	assert.False(t, tm.Finished())
	tm.Tick(5)
	assert.True(t, tm.Finished())
	assert.Equal(t, float32(0), tm.PercentLeft())
}

func TestStoreAttachesBodies(t *testing.T) {
	s, provider := newStore()
	a := spawn(s, 1, 0, Visual{})
	b := spawn(s, 1, 0, Visual{})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, provider.Len())
	assert.Equal(t, geom.One3, a.BaseScale)

	require.True(t, s.Despawn(a.ID))
	assert.False(t, s.Despawn(a.ID))
	assert.False(t, s.Alive(a.ID))
	assert.True(t, s.Alive(b.ID))
	assert.Equal(t, 1, provider.Len())

	got, ok := s.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestAgeLifetime(t *testing.T) {
	s, _ := newStore()
	p := spawn(s, 2, 0, Visual{})

	assert.Equal(t, 0, Age(s, 1))
	assert.InDelta(t, 0.5, p.Timer.PercentLeft(), 1e-6)
	assert.True(t, s.Alive(p.ID))

	assert.Equal(t, 1, Age(s, 1))
	assert.False(t, s.Alive(p.ID))
	assert.Equal(t, 0, s.Len())
}

func TestAgeFadeTextured(t *testing.T) {
	s, _ := newStore()
	tex := material.NewDespawn(1, mgl32.Vec2{}, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 1}, false)
	fading := spawn(s, 4, Fading, Visual{Textured: tex})
	plainTex := material.NewDespawn(1, mgl32.Vec2{}, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 1}, false)
	spawn(s, 4, 0, Visual{Textured: plainTex})

	Age(s, 1)
	assert.InDelta(t, 0.75, fading.Visual.Textured.Alpha, 1e-6)
	assert.Equal(t, float32(1), plainTex.Alpha)
}

func TestAgeFadeColorKeepsRelativeAlpha(t *testing.T) {
	s, _ := newStore()
	c := material.Color{R: 1, A: 0.5}
	p := spawn(s, 2, Fading, Visual{Color: &c, OriginalAlpha: 0.5})

	Age(s, 1)
	assert.InDelta(t, 0.25, p.Visual.Color.A, 1e-6)
}

func TestAgeShrink(t *testing.T) {
	s, _ := newStore()
	p := &Particle{
		Timer:   NewTimer(4),
		Body:    phys.Body{Transform: geom.Identity().WithScale(mgl32.Vec3{2, 2, 1})},
		Effects: Shrinking | Fading,
	}
	s.Spawn(p)

	Age(s, 1)
	assert.InDelta(t, 1.5, p.Body.Transform.Scale.X(), 1e-6)
	assert.InDelta(t, 0.75, p.Body.Transform.Scale.Z(), 1e-6)
}

func TestAgeShrinkUnitScaleIsPercentLeft(t *testing.T) {
	s, _ := newStore()
	p := &Particle{Timer: NewTimer(4), Body: phys.Body{Transform: geom.Identity()}, Effects: Shrinking}
	s.Spawn(p)

	Age(s, 1)
	assert.Equal(t, mgl32.Vec3{0.75, 0.75, 0.75}, p.Body.Transform.Scale)
}

func TestCapacityEvictsOldest(t *testing.T) {
	s, _ := newStore()
	var q Queue
	var ids []ID
	for i := 0; i < 8; i++ {
		id := spawn(s, 10, 0, Visual{}).ID
		ids = append(ids, id)
		q.Push(id)
	}

	assert.Equal(t, 3, q.Enforce(s, 5))
	for i, id := range ids {
		assert.Equal(t, i >= 3, s.Alive(id), "particle %d", i+1)
	}
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, 0, q.Enforce(s, 5))
}

func TestCapacitySkipsStaleIDs(t *testing.T) {
	s, _ := newStore()
	var q Queue
	var ids []ID
	for i := 0; i < 4; i++ {
		id := spawn(s, 10, 0, Visual{}).ID
		ids = append(ids, id)
		q.Push(id)
	}
	s.Despawn(ids[0])

	assert.Equal(t, 1, q.Enforce(s, 2))
	assert.False(t, s.Alive(ids[1]))
	assert.True(t, s.Alive(ids[2]))
	assert.True(t, s.Alive(ids[3]))
}

func TestQueueCompacts(t *testing.T) {
	s, _ := newStore()
	var q Queue
	for i := 0; i < 500; i++ {
		q.Push(spawn(s, 10, 0, Visual{}).ID)
	}
	assert.Equal(t, 490, q.Enforce(s, 10))
	assert.Equal(t, 10, q.Len())
	assert.Equal(t, 10, s.Len())
	assert.Less(t, len(q.ids), 500)
}
