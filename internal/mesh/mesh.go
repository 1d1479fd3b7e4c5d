// Package mesh models indexed triangle meshes and splits them into
// standalone single-triangle fragments.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Topology int

const (
	TriangleList Topology = iota
	TriangleStrip
	LineList
	LineStrip
	PointList
)

func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	case LineList:
		return "LineList"
	case LineStrip:
		return "LineStrip"
	case PointList:
		return "PointList"
	}
	return "Unknown"
}

type VertexFormat int

const (
	Float32x2 VertexFormat = iota + 2
	Float32x3
	Float32x4
)

// Components is the number of float32 values per vertex.
func (f VertexFormat) Components() int {
	return int(f)
}

func (f VertexFormat) String() string {
	switch f {
	case Float32x2:
		return "Float32x2"
	case Float32x3:
		return "Float32x3"
	case Float32x4:
		return "Float32x4"
	}
	return "Unknown"
}

const (
	AttributePosition = "Vertex_Position"
	AttributeNormal   = "Vertex_Normal"
	AttributeUV       = "Vertex_Uv"
)

// Attribute stores one vertex attribute as a flat float slice.
type Attribute struct {
	Format VertexFormat
	Data   []float32
}

func (a Attribute) Len() int {
	return len(a.Data) / a.Format.Components()
}

type Mesh struct {
	Topology   Topology
	Attributes map[string]Attribute
	// Indices is nil for non-indexed meshes.
	Indices []uint32
}

func New(topology Topology) *Mesh {
	return &Mesh{Topology: topology, Attributes: make(map[string]Attribute)}
}

func (m *Mesh) SetPositions(ps []mgl32.Vec3) {
	data := make([]float32, 0, len(ps)*3)
	for _, p := range ps {
		data = append(data, p[0], p[1], p[2])
	}
	m.Attributes[AttributePosition] = Attribute{Format: Float32x3, Data: data}
}

func (m *Mesh) SetNormals(ns []mgl32.Vec3) {
	data := make([]float32, 0, len(ns)*3)
	for _, n := range ns {
		data = append(data, n[0], n[1], n[2])
	}
	m.Attributes[AttributeNormal] = Attribute{Format: Float32x3, Data: data}
}

func (m *Mesh) SetUVs(uvs []mgl32.Vec2) {
	data := make([]float32, 0, len(uvs)*2)
	for _, uv := range uvs {
		data = append(data, uv[0], uv[1])
	}
	m.Attributes[AttributeUV] = Attribute{Format: Float32x2, Data: data}
}

// Positions returns the position attribute, if it is Float32x3.
func (m *Mesh) Positions() ([]mgl32.Vec3, bool) {
	a, ok := m.Attributes[AttributePosition]
	if !ok || a.Format != Float32x3 {
		return nil, false
	}
	return vec3s(a.Data), true
}

func (m *Mesh) Normals() ([]mgl32.Vec3, bool) {
	a, ok := m.Attributes[AttributeNormal]
	if !ok || a.Format != Float32x3 {
		return nil, false
	}
	return vec3s(a.Data), true
}

func (m *Mesh) UVs() ([]mgl32.Vec2, bool) {
	a, ok := m.Attributes[AttributeUV]
	if !ok || a.Format != Float32x2 {
		return nil, false
	}
	out := make([]mgl32.Vec2, len(a.Data)/2)
	for i := range out {
		out[i] = mgl32.Vec2{a.Data[i*2], a.Data[i*2+1]}
	}
	return out, true
}

func (m *Mesh) VertexCount() int {
	a, ok := m.Attributes[AttributePosition]
	if !ok {
		return 0
	}
	return a.Len()
}

// Triangles returns the number of triangles in a triangle list.
func (m *Mesh) Triangles() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return m.VertexCount() / 3
}

// Bounds returns the XY min and max corner of the positions.
func (m *Mesh) Bounds() (mgl32.Vec2, mgl32.Vec2) {
	ps, ok := m.Positions()
	if !ok || len(ps) == 0 {
		return mgl32.Vec2{}, mgl32.Vec2{}
	}
	lo, hi := ps[0].Vec2(), ps[0].Vec2()
	for _, p := range ps[1:] {
		lo = mgl32.Vec2{min(lo[0], p[0]), min(lo[1], p[1])}
		hi = mgl32.Vec2{max(hi[0], p[0]), max(hi[1], p[1])}
	}
	return lo, hi
}

func (m *Mesh) Clone() *Mesh {
	out := New(m.Topology)
	for name, a := range m.Attributes {
		out.Attributes[name] = Attribute{Format: a.Format, Data: append([]float32(nil), a.Data...)}
	}
	if m.Indices != nil {
		out.Indices = append([]uint32(nil), m.Indices...)
	}
	return out
}

func vec3s(data []float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(data)/3)
	for i := range out {
		out[i] = mgl32.Vec3{data[i*3], data[i*3+1], data[i*3+2]}
	}
	return out
}
