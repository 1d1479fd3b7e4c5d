package despawn

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"despawn-particles/internal/config"
	"despawn-particles/internal/scene"
)

func TestScalarSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, float32(0), Scalar{}.Sample(rng))
	assert.Equal(t, float32(3), Fixed(3).Sample(rng))

	r := Range(10, 5)
	for i := 0; i < 100; i++ {
		v := r.Sample(rng)
		assert.GreaterOrEqual(t, v, float32(5))
		assert.Less(t, v, float32(10))
	}

	choices := []float32{-5, -2.5, 2.5, 5}
	c := Choice(choices...)
	seen := map[float32]bool{}
	for i := 0; i < 200; i++ {
		v := c.Sample(rng)
		assert.Contains(t, choices, v)
		seen[v] = true
	}
	assert.Len(t, seen, 4)

	lo, hi := c.Bounds()
	assert.Equal(t, float32(-5), lo)
	assert.Equal(t, float32(5), hi)
	assert.Equal(t, Scalar{}, Choice())
}

func TestVectorSample(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	v := Vector{X: Fixed(1), Y: Range(2, 3)}.Sample(rng)
	assert.Equal(t, float32(1), v.X())
	assert.GreaterOrEqual(t, v.Y(), float32(2))
	assert.Equal(t, mgl32.Vec2{4, 5}, FixedVec(mgl32.Vec2{4, 5}).Sample(rng))
}

func TestBuilderDefaults(t *testing.T) {
	w := scene.NewWorld()
	e := w.Spawn()

	ev := NewBuilder().Build(e)
	assert.Equal(t, e, ev.Entity)
	assert.Equal(t, Fixed(1), ev.Lifetime)
	assert.Equal(t, 64, ev.TargetFragments)
	assert.False(t, ev.Fade)
	assert.False(t, ev.Shrink)
	assert.False(t, ev.Gray)
	assert.False(t, ev.Recurse)
	assert.False(t, ev.IgnoreParentSpeed)
	assert.False(t, ev.MeshOverride.Valid())
	require.NoError(t, ev.Validate())
}

func TestPresetCreatesIndependentEvents(t *testing.T) {
	w := scene.NewWorld()
	a, b := w.Spawn(), w.Spawn()

	b1 := NewBuilder().WithFade(true).WithLinearVelocity(Range(50, 100)).WithTargetFragments(8)
	preset := NewPreset(b1)
	b1.WithFade(false)

	ea := preset.CreateEvent(a)
	eb := preset.CreateEvent(b)
	assert.Equal(t, a, ea.Entity)
	assert.Equal(t, b, eb.Entity)
	assert.True(t, ea.Fade)
	assert.Equal(t, 8, eb.TargetFragments)
	assert.Equal(t, Range(50, 100), eb.LinearVelocity)
}

func TestEventValidate(t *testing.T) {
	ev := NewBuilder().WithLifetime(Range(-1, 2)).Build(scene.Null)
	assert.ErrorIs(t, ev.Validate(), ErrInvalidLifetime)

	ev = NewBuilder().WithTargetFragments(0).Build(scene.Null)
	assert.ErrorIs(t, ev.Validate(), ErrInvalidTargetFragments)
}

func TestPresetFromConfig(t *testing.T) {
	p := PresetFromConfig(config.Preset{
		Lifetime:         config.Range{2},
		LinearVelocity:   config.Range{50, 100},
		AngularVelocity:  []float32{-5, 5},
		AdditionalLinvel: [2]config.Range{{0}, {10, 20}},
		Fade:             true,
		Gray:             true,
	})
	ev := p.CreateEvent(scene.Null)
	assert.Equal(t, Fixed(2), ev.Lifetime)
	assert.Equal(t, Range(50, 100), ev.LinearVelocity)
	assert.Equal(t, Choice(-5, 5), ev.AngularVelocity)
	assert.Equal(t, Fixed(0), ev.AdditionalLinvel.X)
	assert.Equal(t, Range(10, 20), ev.AdditionalLinvel.Y)
	assert.Equal(t, DefaultTargetFragments, ev.TargetFragments)
	assert.True(t, ev.Fade)
	assert.True(t, ev.Gray)
	assert.Equal(t, Scalar{}, ev.Mass)
}

func TestEventQueue(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Consume())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push(NewBuilder().Build(scene.Null))
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, q.Len())
	assert.Len(t, q.Consume(), 20)
	assert.Equal(t, 0, q.Len())

	q.Push(NewBuilder().WithTargetFragments(1).Build(scene.Null))
	q.Push(NewBuilder().WithTargetFragments(2).Build(scene.Null))
	evs := q.Consume()
	require.Len(t, evs, 2)
	assert.Equal(t, 1, evs[0].TargetFragments)
	assert.Equal(t, 2, evs[1].TargetFragments)
}
