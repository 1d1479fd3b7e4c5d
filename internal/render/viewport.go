package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/geom"
	"despawn-particles/internal/mesh"
)

// Viewport maps y-up world units, origin at the window center, to screen
// pixels.
type Viewport struct {
	Width, Height int
	Scale         float32
}

func (v Viewport) ToScreen(p mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(v.Width)/2 + p.X()*v.Scale,
		float32(v.Height)/2 - p.Y()*v.Scale,
	}
}

func (v Viewport) ToWorld(x, y float32) mgl32.Vec2 {
	scale := v.Scale
	if scale == 0 {
		scale = 1
	}
	return mgl32.Vec2{
		(x - float32(v.Width)/2) / scale,
		(float32(v.Height)/2 - y) / scale,
	}
}

// Visible reports whether a circle around p overlaps the screen.
func (v Viewport) Visible(p mgl32.Vec3, radius float32) bool {
	s := v.ToScreen(p)
	r := radius * v.Scale
	return s.X()+r >= 0 && s.X()-r <= float32(v.Width) &&
		s.Y()+r >= 0 && s.Y()-r <= float32(v.Height)
}

type vertex struct {
	Pos mgl32.Vec2
	UV  mgl32.Vec2
}

// meshVertices expands an indexed triangle list into screen space vertices.
func (v Viewport) meshVertices(m *mesh.Mesh, t geom.Transform) []vertex {
	positions, ok := m.Positions()
	if !ok {
		return nil
	}
	uvs, _ := m.UVs()
	out := make([]vertex, 0, len(m.Indices))
	for _, idx := range m.Indices {
		if int(idx) >= len(positions) {
			return nil
		}
		vx := vertex{Pos: v.ToScreen(t.TransformPoint(positions[idx]))}
		if int(idx) < len(uvs) {
			vx.UV = uvs[idx]
		}
		out = append(out, vx)
	}
	return out
}

// boundingRadius is the farthest a transformed vertex can be from the
// translation.
func boundingRadius(m *mesh.Mesh, t geom.Transform) float32 {
	lo, hi := m.Bounds()
	ext := mgl32.Vec2{
		float32(math.Max(math.Abs(float64(lo.X())), math.Abs(float64(hi.X())))),
		float32(math.Max(math.Abs(float64(lo.Y())), math.Abs(float64(hi.Y())))),
	}
	s := float32(math.Max(math.Abs(float64(t.Scale.X())), math.Abs(float64(t.Scale.Y()))))
	return ext.Len() * s
}
