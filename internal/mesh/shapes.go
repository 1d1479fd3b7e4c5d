package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewQuad builds a size.X by size.Y rectangle centered on the origin. UV
// (0,0) is the top-left corner of the image.
func NewQuad(size mgl32.Vec2) *Mesh {
	hw, hh := size.X()/2, size.Y()/2
	m := New(TriangleList)
	m.SetPositions([]mgl32.Vec3{
		{-hw, -hh, 0},
		{-hw, hh, 0},
		{hw, hh, 0},
		{hw, -hh, 0},
	})
	m.SetNormals([]mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	m.SetUVs([]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}})
	m.Indices = []uint32{0, 2, 1, 0, 3, 2}
	return m
}

// NewRegularPolygon builds a triangle fan around the origin. UVs map the
// circumscribed square onto the unit square.
func NewRegularPolygon(radius float32, sides int) *Mesh {
	if sides < 3 {
		sides = 3
	}
	positions := make([]mgl32.Vec3, 0, sides+1)
	uvs := make([]mgl32.Vec2, 0, sides+1)
	normals := make([]mgl32.Vec3, 0, sides+1)

	positions = append(positions, mgl32.Vec3{})
	uvs = append(uvs, mgl32.Vec2{0.5, 0.5})
	normals = append(normals, mgl32.Vec3{0, 0, 1})

	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		s, c := math.Sincos(step * float64(i))
		x, y := float32(s), float32(c)
		positions = append(positions, mgl32.Vec3{x * radius, y * radius, 0})
		uvs = append(uvs, mgl32.Vec2{0.5 + x/2, 0.5 - y/2})
		normals = append(normals, mgl32.Vec3{0, 0, 1})
	}

	indices := make([]uint32, 0, sides*3)
	for i := 1; i <= sides; i++ {
		next := i%sides + 1
		indices = append(indices, 0, uint32(next), uint32(i))
	}

	m := New(TriangleList)
	m.SetPositions(positions)
	m.SetNormals(normals)
	m.SetUVs(uvs)
	m.Indices = indices
	return m
}

// NewTriangle builds a single non-indexed triangle.
func NewTriangle(a, b, c mgl32.Vec3, uvs [3]mgl32.Vec2) *Mesh {
	m := New(TriangleList)
	m.SetPositions([]mgl32.Vec3{a, b, c})
	m.SetUVs(uvs[:])
	return m
}
