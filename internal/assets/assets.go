package assets

import (
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/material"
	"despawn-particles/internal/mesh"
)

type Image struct {
	Width, Height int
	Pixels        *image.RGBA
}

// NewImage copies any decoded image into RGBA storage.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}
	return &Image{Width: b.Dx(), Height: b.Dy(), Pixels: rgba}
}

func (i *Image) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(i.Width), float32(i.Height)}
}

// Rect is a pixel rectangle inside an atlas texture.
type Rect struct {
	Min, Max mgl32.Vec2
}

func (r Rect) Size() mgl32.Vec2 {
	return r.Max.Sub(r.Min)
}

// Atlas cuts one shared texture into indexed sub-rectangles.
type Atlas struct {
	Texture Handle[*Image]
	Size    mgl32.Vec2
	Rects   []Rect
}

// NewGridAtlas cuts a texture of the given size into columns x rows equal
// cells, row-major from the top-left.
func NewGridAtlas(texture Handle[*Image], size mgl32.Vec2, columns, rows int) *Atlas {
	a := &Atlas{Texture: texture, Size: size}
	cell := mgl32.Vec2{size.X() / float32(columns), size.Y() / float32(rows)}
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			lo := mgl32.Vec2{float32(x) * cell.X(), float32(y) * cell.Y()}
			a.Rects = append(a.Rects, Rect{Min: lo, Max: lo.Add(cell)})
		}
	}
	return a
}

// Server bundles the registries the fragment factory reads from.
type Server struct {
	Images    *Registry[*Image]
	Atlases   *Registry[*Atlas]
	Meshes    *Registry[*mesh.Mesh]
	Materials *Registry[material.Color]
}

func NewServer() *Server {
	return &Server{
		Images:    NewRegistry[*Image](),
		Atlases:   NewRegistry[*Atlas](),
		Meshes:    NewRegistry[*mesh.Mesh](),
		Materials: NewRegistry[material.Color](),
	}
}
