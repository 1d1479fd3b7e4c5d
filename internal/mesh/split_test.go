package mesh

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"despawn-particles/internal/geom"
)

const eps = 1e-4

func area(ps []mgl32.Vec3) float32 {
	ab := ps[1].Sub(ps[0])
	ac := ps[2].Sub(ps[0])
	return ab.Cross(ac).Len() / 2
}

func totalArea(t *testing.T, frags []Fragment) float32 {
	var sum float32
	for _, f := range frags {
		ps, ok := f.Mesh.Positions()
		require.True(t, ok)
		sum += area(ps)
	}
	return sum
}

func TestSplitQuadCounts(t *testing.T) {
	quad := NewQuad(mgl32.Vec2{100, 50})

	cases := []struct {
		target int
		want   int
	}{
		{1, 2},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{64, 64},
		{65, 128},
	}
	for _, c := range cases {
		frags, err := Split(quad, c.target)
		require.NoError(t, err)
		assert.Len(t, frags, c.want, "target %d", c.target)
		assert.GreaterOrEqual(t, len(frags), c.target)
		assert.InDelta(t, 5000, totalArea(t, frags), 0.05, "target %d", c.target)
	}
}

func TestSplitSingleTriangleDepthOne(t *testing.T) {
	tri := NewTriangle(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 0, 0}, mgl32.Vec3{0, 2, 0},
		[3]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
	)

	frags, err := Split(tri, 2)
	require.NoError(t, err)
	require.Len(t, frags, 2)
	assert.InDelta(t, 4, totalArea(t, frags), eps)

	// the hypotenuse (4,0)-(0,2) is bisected, its midpoint is (2,1)
	for _, f := range frags {
		ps, _ := f.Mesh.Positions()
		uvs, _ := f.Mesh.UVs()
		apex := ps[0].Add(f.Offset)
		mid := ps[1].Add(f.Offset)
		assert.InDelta(t, 0, apex.Len(), eps)
		assert.InDelta(t, 2, mid.X(), eps)
		assert.InDelta(t, 1, mid.Y(), eps)
		assert.InDelta(t, 0.5, uvs[1].X(), eps)
		assert.InDelta(t, 0.5, uvs[1].Y(), eps)
	}
}

func TestSplitFragmentsAreRecentered(t *testing.T) {
	poly := NewRegularPolygon(30, 6)
	frags, err := Split(poly, 40)
	require.NoError(t, err)
	require.Len(t, frags, 48)

	for _, f := range frags {
		ps, ok := f.Mesh.Positions()
		require.True(t, ok)
		require.Len(t, ps, 3)
		assert.Equal(t, []uint32{0, 1, 2}, f.Mesh.Indices)
		assert.Equal(t, TriangleList, f.Mesh.Topology)

		c := geom.TriangleCentroid([3]mgl32.Vec3{ps[0], ps[1], ps[2]})
		assert.InDelta(t, 0, c.Len(), eps)

		normals, ok := f.Mesh.Normals()
		require.True(t, ok)
		for _, n := range normals {
			assert.InDelta(t, 1, n.Z(), eps)
		}
	}
}

func TestSplitPreservesUVMapping(t *testing.T) {
	// uv = position / size + 0.5 with Y flipped, for every vertex of the quad
	quad := NewQuad(mgl32.Vec2{10, 10})
	frags, err := Split(quad, 32)
	require.NoError(t, err)

	for _, f := range frags {
		ps, _ := f.Mesh.Positions()
		uvs, _ := f.Mesh.UVs()
		for i := range ps {
			p := ps[i].Add(f.Offset)
			assert.InDelta(t, p.X()/10+0.5, uvs[i].X(), eps)
			assert.InDelta(t, 0.5-p.Y()/10, uvs[i].Y(), eps)
		}
	}
}

func TestSplitIdempotent(t *testing.T) {
	quad := NewQuad(mgl32.Vec2{20, 12})
	a, err := Split(quad, 20)
	require.NoError(t, err)
	b, err := Split(quad, 20)
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Offset, b[i].Offset)
	}
}

func TestSplitEnoughTrianglesOnlyPartitions(t *testing.T) {
	poly := NewRegularPolygon(10, 12)
	frags, err := Split(poly, 5)
	require.NoError(t, err)
	assert.Len(t, frags, 12)
}

func TestSplitSynthesizesIndices(t *testing.T) {
	m := New(TriangleList)
	m.SetPositions([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {2, 1, 0}, {1, 2, 0}})
	m.SetUVs([]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {0, 0}, {1, 0}, {0, 1}})

	frags, err := Split(m, 1)
	require.NoError(t, err)
	require.Len(t, frags, 2)
	assert.InDelta(t, 1.0/3, frags[0].Offset.X(), eps)
	assert.InDelta(t, 4.0/3, frags[1].Offset.X(), eps)

	// no normals on the input: +Z
	normals, ok := frags[0].Mesh.Normals()
	require.True(t, ok)
	assert.Equal(t, geom.UnitZ, normals[0])
}

func TestSplitErrors(t *testing.T) {
	valid := func() *Mesh { return NewQuad(mgl32.Vec2{1, 1}) }

	strip := valid()
	strip.Topology = TriangleStrip
	_, err := Split(strip, 4)
	assert.ErrorIs(t, err, ErrUnexpectedTopology)

	noPos := valid()
	delete(noPos.Attributes, AttributePosition)
	_, err = Split(noPos, 4)
	assert.ErrorIs(t, err, ErrMissingPositionAttribute)

	badPos := valid()
	badPos.Attributes[AttributePosition] = Attribute{Format: Float32x2, Data: make([]float32, 8)}
	_, err = Split(badPos, 4)
	assert.ErrorIs(t, err, ErrUnexpectedPositionFormat)

	badIdx := valid()
	badIdx.Indices = []uint32{0, 1, 2, 3}
	_, err = Split(badIdx, 4)
	require.ErrorIs(t, err, ErrInvalidIndexCount)
	var meshErr *Error
	require.True(t, errors.As(err, &meshErr))
	assert.Equal(t, 4, meshErr.Count)
	assert.False(t, meshErr.OutOfRange)
	assert.Contains(t, err.Error(), "not a multiple of 3")

	farIdx := valid()
	farIdx.Indices = []uint32{0, 1, 9}
	_, err = Split(farIdx, 4)
	require.ErrorIs(t, err, ErrInvalidIndexCount)
	require.True(t, errors.As(err, &meshErr))
	assert.True(t, meshErr.OutOfRange)
	assert.Equal(t, 9, meshErr.Count)
	assert.NotContains(t, err.Error(), "multiple of 3")
	assert.Contains(t, err.Error(), "index 9 out of range")
	assert.Equal(t, "InvalidIndexCount", meshErr.Kind.Name())

	noUV := valid()
	delete(noUV.Attributes, AttributeUV)
	_, err = Split(noUV, 4)
	assert.ErrorIs(t, err, ErrMissingUvAttribute)

	badUV := valid()
	badUV.Attributes[AttributeUV] = Attribute{Format: Float32x3, Data: make([]float32, 12)}
	_, err = Split(badUV, 4)
	assert.ErrorIs(t, err, ErrUnexpectedUvFormat)

	unindexed := New(TriangleList)
	unindexed.SetPositions(make([]mgl32.Vec3, 4))
	unindexed.SetUVs(make([]mgl32.Vec2, 4))
	_, err = Split(unindexed, 1)
	assert.ErrorIs(t, err, ErrInvalidIndexCount)
}
