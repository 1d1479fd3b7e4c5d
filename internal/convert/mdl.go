package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/mesh"
	"despawn-particles/internal/utils"
)

// MDLLayout describes where vertex and index data sit in an MDLV0013
// puppet file. Vertex fields are half floats.
type MDLLayout struct {
	HeaderSize   int
	VertexCount  int
	VertexStride int
	UVOffset     int
	PosOffset    int
	// IndexPadding separates the vertex block from the index block.
	IndexPadding int
	IndexCount   int
}

// DefaultMDLLayout matches the stock puppet mesh.
var DefaultMDLLayout = MDLLayout{
	HeaderSize:   256,
	VertexCount:  2809,
	VertexStride: 52,
	UVOffset:     0,
	PosOffset:    16,
	IndexPadding: 16,
	IndexCount:   17384,
}

const mdlMagic = "MDLV0013"

// DecodeMDL reads an MDL mesh as a triangle list usable as a despawn
// mesh override.
func DecodeMDL(r io.ReadSeeker, layout MDLLayout) (*mesh.Mesh, error) {
	header := make([]byte, layout.HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if layout.HeaderSize < len(mdlMagic) || string(header[:len(mdlMagic)]) != mdlMagic {
		return nil, fmt.Errorf("mdl: invalid magic")
	}
	if layout.IndexCount%3 != 0 {
		return nil, fmt.Errorf("mdl: index count %d is not a multiple of 3", layout.IndexCount)
	}

	positions := make([]mgl32.Vec3, layout.VertexCount)
	uvs := make([]mgl32.Vec2, layout.VertexCount)
	buf := make([]byte, layout.VertexStride)
	for i := range positions {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("mdl: vertex %d: %w", i, err)
		}
		uvs[i] = mgl32.Vec2{
			Float16(binary.LittleEndian.Uint16(buf[layout.UVOffset:])),
			Float16(binary.LittleEndian.Uint16(buf[layout.UVOffset+4:])),
		}
		positions[i] = mgl32.Vec3{
			Float16(binary.LittleEndian.Uint16(buf[layout.PosOffset:])),
			Float16(binary.LittleEndian.Uint16(buf[layout.PosOffset+4:])),
			0,
		}
	}

	if _, err := r.Seek(int64(layout.IndexPadding), io.SeekCurrent); err != nil {
		return nil, err
	}
	raw := make([]uint16, layout.IndexCount)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("mdl: indices: %w", err)
	}
	indices := make([]uint32, len(raw))
	for i, idx := range raw {
		if int(idx) >= layout.VertexCount {
			return nil, fmt.Errorf("mdl: index %d out of range", idx)
		}
		indices[i] = uint32(idx)
	}

	m := mesh.New(mesh.TriangleList)
	m.SetPositions(positions)
	m.SetUVs(uvs)
	m.Indices = indices
	utils.Debug("mdl: %d vertices, %d indices", len(positions), len(indices))
	return m, nil
}

// Float16 converts an IEEE 754 half float. Subnormals, infinities and NaN
// decode as 0.
func Float16(h uint16) float32 {
	sign := float32(1)
	if h&0x8000 != 0 {
		sign = -1
	}
	exp := (h & 0x7C00) >> 10
	mant := h & 0x03FF
	if exp == 0 || exp == 31 {
		return 0
	}
	return sign * float32(math.Ldexp(1+float64(mant)/1024, int(exp)-15))
}

// LoadMDL decodes an MDL file with the default layout.
func LoadMDL(path string) (*mesh.Mesh, error) {
	utils.Debug("MDL Loader: Opening %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeMDL(f, DefaultMDLLayout)
}
