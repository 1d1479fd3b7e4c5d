package assets

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry[string]()
	var zero Handle[string]
	assert.False(t, zero.Valid())

	a := r.Add("a")
	b := r.Add("b")
	assert.True(t, a.Valid())
	assert.NotEqual(t, a.ID(), b.ID())

	v, ok := r.Get(a)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	assert.True(t, r.Set(b, "bb"))
	v, _ = r.Get(b)
	assert.Equal(t, "bb", v)

	r.Remove(a)
	_, ok = r.Get(a)
	assert.False(t, ok)
	assert.False(t, r.Set(a, "x"))
	assert.Equal(t, 1, r.Len())

	same := HandleFromID[string](b.ID())
	v, ok = r.Get(same)
	require.True(t, ok)
	assert.Equal(t, "bb", v)
}

func TestRegistryConcurrentAdd(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Add(i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, r.Len())
}

func TestNewImageRebasesBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	src.Set(10, 10, color.NRGBA{R: 255, A: 255})

	img := NewImage(src)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, mgl32.Vec2{4, 2}, img.Size())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.Pixels.RGBAAt(0, 0))
}

func TestGridAtlas(t *testing.T) {
	a := NewGridAtlas(Handle[*Image]{id: 1}, mgl32.Vec2{64, 32}, 4, 2)
	require.Len(t, a.Rects, 8)
	assert.Equal(t, mgl32.Vec2{16, 16}, a.Rects[0].Size())
	assert.Equal(t, mgl32.Vec2{16, 16}, a.Rects[5].Min)
}
