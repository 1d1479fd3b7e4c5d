// Package material describes how fragments are shaded. Despawn is the
// uniform contract with the fragment shader; Color is a flat tint.
package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/geom"
)

// Despawn samples a sub-rectangle of a texture. Offset and Size are
// fractions of the texture, not pixels.
type Despawn struct {
	// Image is the asset id of the source texture.
	Image  uint64
	Offset mgl32.Vec2
	Size   mgl32.Vec2
	Alpha  float32
	Gray   uint32
}

// NewDespawn converts a pixel rectangle of a texture into shader space.
func NewDespawn(image uint64, offsetPx, sizePx, texturePx mgl32.Vec2, gray bool) *Despawn {
	m := &Despawn{
		Image: image,
		Size:  mgl32.Vec2{1, 1},
		Alpha: 1,
	}
	if texturePx.X() > 0 && texturePx.Y() > 0 {
		m.Offset = mgl32.Vec2{offsetPx.X() / texturePx.X(), offsetPx.Y() / texturePx.Y()}
		m.Size = mgl32.Vec2{sizePx.X() / texturePx.X(), sizePx.Y() / texturePx.Y()}
	}
	if gray {
		m.Gray = 1
	}
	return m
}

// Uniforms packs {offset.xy, size.xy, alpha, gray} in shader order.
func (m *Despawn) Uniforms() [6]float32 {
	return [6]float32{m.Offset.X(), m.Offset.Y(), m.Size.X(), m.Size.Y(), m.Alpha, float32(m.Gray)}
}

// TexCoord maps a fragment UV into the full texture.
func (m *Despawn) TexCoord(uv mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{m.Offset.X() + uv.X()*m.Size.X(), m.Offset.Y() + uv.Y()*m.Size.Y()}
}

type Color struct {
	R, G, B, A float32
}

var (
	White = Color{1, 1, 1, 1}
	Gray  = Color{0.5, 0.5, 0.5, 1}
)

// Grayscale replaces RGB with the luma, keeping alpha.
func (c Color) Grayscale() Color {
	l := geom.Luminance(c.R, c.G, c.B)
	return Color{l, l, l, c.A}
}

func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// RGBA8 converts to 8-bit channels, clamping out of range values.
func (c Color) RGBA8() (uint8, uint8, uint8, uint8) {
	to8 := func(v float32) uint8 { return uint8(geom.Clamp(v, 0, 1)*255 + 0.5) }
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}
