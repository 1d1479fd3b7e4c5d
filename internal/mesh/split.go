package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/geom"
)

// Fragment is one triangle of a split mesh, re-centered on its centroid.
// Offset is the centroid in the source mesh's local space.
type Fragment struct {
	Mesh   *Mesh
	Offset mgl32.Vec3
}

type triangle struct {
	pos    [3]mgl32.Vec3
	uv     [3]mgl32.Vec2
	normal [3]mgl32.Vec3
}

// flatNormal is the normal every descendant of t carries.
func (t triangle) flatNormal() [3]mgl32.Vec3 {
	n := t.normal[0].Add(t.normal[1]).Add(t.normal[2])
	if n.Len() == 0 {
		n = geom.UnitZ
	}
	n = n.Normalize()
	return [3]mgl32.Vec3{n, n, n}
}

// Split breaks m into at least target single-triangle fragments. Meshes that
// already have target triangles or more are only partitioned. Otherwise
// every triangle is subdivided to depth ceil(log2(target/T)), giving
// T*2^depth fragments.
func Split(m *Mesh, target int) ([]Fragment, error) {
	tris, err := triangles(m)
	if err != nil {
		return nil, err
	}
	if target < 1 {
		target = 1
	}

	if len(tris) >= target || len(tris) == 0 {
		out := make([]Fragment, 0, len(tris))
		for _, t := range tris {
			out = append(out, recenter(t))
		}
		return out, nil
	}

	depth := int(math.Ceil(math.Log2(float64(target) / float64(len(tris)))))
	out := make([]Fragment, 0, len(tris)<<depth)
	for _, t := range tris {
		out = subdivide(t, depth, out)
	}
	return out, nil
}

// triangles validates m and expands its index list into standalone triangles.
func triangles(m *Mesh) ([]triangle, error) {
	if m.Topology != TriangleList {
		return nil, ErrUnexpectedTopology
	}

	posAttr, ok := m.Attributes[AttributePosition]
	if !ok {
		return nil, ErrMissingPositionAttribute
	}
	if posAttr.Format != Float32x3 {
		return nil, ErrUnexpectedPositionFormat
	}
	positions := vec3s(posAttr.Data)

	indices := m.Indices
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, &Error{Kind: InvalidIndexCount, Count: len(indices)}
	}

	uvAttr, ok := m.Attributes[AttributeUV]
	if !ok {
		return nil, ErrMissingUvAttribute
	}
	if uvAttr.Format != Float32x2 {
		return nil, ErrUnexpectedUvFormat
	}
	uvs, _ := m.UVs()

	normals, ok := m.Normals()
	if !ok {
		normals = make([]mgl32.Vec3, len(positions))
		for i := range normals {
			normals[i] = geom.UnitZ
		}
	}

	tris := make([]triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		var t triangle
		for j := 0; j < 3; j++ {
			idx := int(indices[i+j])
			if idx >= len(positions) || idx >= len(uvs) || idx >= len(normals) {
				return nil, &Error{Kind: InvalidIndexCount, Count: idx, OutOfRange: true, Vertices: len(positions)}
			}
			t.pos[j] = positions[idx]
			t.uv[j] = uvs[idx]
			t.normal[j] = normals[idx]
		}
		tris = append(tris, t)
	}
	return tris, nil
}

func subdivide(t triangle, depth int, out []Fragment) []Fragment {
	switch {
	case depth == 0:
		return append(out, recenter(t))
	case depth == 1:
		// bisect the longest side; apex is the vertex opposite it
		v := t.pos
		sides := [3]float32{v[1].Sub(v[2]).Len(), v[2].Sub(v[0]).Len(), v[0].Sub(v[1]).Len()}
		apex := 0
		for i, s := range sides {
			if s >= sides[apex] {
				apex = i
			}
		}
		var posMid mgl32.Vec3
		var uvMid mgl32.Vec2
		for i := 0; i < 3; i++ {
			if i != apex {
				posMid = posMid.Add(v[i])
				uvMid = uvMid.Add(t.uv[i])
			}
		}
		posMid, uvMid = posMid.Mul(0.5), uvMid.Mul(0.5)

		normal := t.flatNormal()
		for i := 0; i < 3; i++ {
			if i == apex {
				continue
			}
			out = subdivide(triangle{
				pos:    [3]mgl32.Vec3{v[apex], posMid, v[i]},
				uv:     [3]mgl32.Vec2{t.uv[apex], uvMid, t.uv[i]},
				normal: normal,
			}, depth-1, out)
		}
		return out
	default:
		// midpoint i sits on the side opposite vertex i
		v, uv := t.pos, t.uv
		mp := [3]mgl32.Vec3{geom.Midpoint3(v[1], v[2]), geom.Midpoint3(v[2], v[0]), geom.Midpoint3(v[0], v[1])}
		mu := [3]mgl32.Vec2{geom.Midpoint2(uv[1], uv[2]), geom.Midpoint2(uv[2], uv[0]), geom.Midpoint2(uv[0], uv[1])}

		normal := t.flatNormal()
		quads := [4]triangle{
			{pos: [3]mgl32.Vec3{v[0], mp[1], mp[2]}, uv: [3]mgl32.Vec2{uv[0], mu[1], mu[2]}},
			{pos: [3]mgl32.Vec3{v[1], mp[0], mp[2]}, uv: [3]mgl32.Vec2{uv[1], mu[0], mu[2]}},
			{pos: [3]mgl32.Vec3{v[2], mp[0], mp[1]}, uv: [3]mgl32.Vec2{uv[2], mu[0], mu[1]}},
			{pos: mp, uv: mu},
		}
		for _, q := range quads {
			q.normal = normal
			out = subdivide(q, depth-2, out)
		}
		return out
	}
}

func recenter(t triangle) Fragment {
	center := geom.TriangleCentroid(t.pos)
	m := New(TriangleList)
	m.SetPositions([]mgl32.Vec3{
		geom.Sub(t.pos[0], center),
		geom.Sub(t.pos[1], center),
		geom.Sub(t.pos[2], center),
	})
	m.SetNormals(t.normal[:])
	m.SetUVs(t.uv[:])
	m.Indices = []uint32{0, 1, 2}
	return Fragment{Mesh: m, Offset: center}
}
