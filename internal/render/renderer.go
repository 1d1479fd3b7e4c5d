// Package render draws scene entities and despawn particles with raylib.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/geom"
	"despawn-particles/internal/material"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/particle"
	"despawn-particles/internal/scene"
	"despawn-particles/internal/utils"
)

// Renderer must be created and used on the thread that owns the GL context.
type Renderer struct {
	Viewport   Viewport
	Background rl.Color

	assets   *assets.Server
	shader   *despawnShader
	textures map[uint64]rl.Texture2D
	white    rl.Texture2D
	quads    map[mgl32.Vec2]*mesh.Mesh
}

func NewRenderer(as *assets.Server, width, height int) *Renderer {
	img := rl.GenImageColor(2, 2, rl.White)
	white := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &Renderer{
		Viewport:   Viewport{Width: width, Height: height, Scale: 1},
		Background: rl.NewColor(24, 24, 32, 255),
		assets:     as,
		shader:     loadDespawnShader(),
		textures:   make(map[uint64]rl.Texture2D),
		white:      white,
		quads:      make(map[mgl32.Vec2]*mesh.Mesh),
	}
}

// UpdateViewport follows window resizes.
func (r *Renderer) UpdateViewport(width, height int) {
	r.Viewport.Width = width
	r.Viewport.Height = height
}

func (r *Renderer) texture(id uint64) (rl.Texture2D, bool) {
	if tex, ok := r.textures[id]; ok {
		return tex, true
	}
	img, ok := r.assets.Images.Get(assets.HandleFromID[*assets.Image](id))
	if !ok {
		return rl.Texture2D{}, false
	}
	rlImg := rl.NewImageFromImage(img.Pixels)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	r.textures[id] = tex
	utils.Debug("Uploaded texture %d (%dx%d)", id, img.Width, img.Height)
	return tex, true
}

func (r *Renderer) quad(size mgl32.Vec2) *mesh.Mesh {
	q, ok := r.quads[size]
	if !ok {
		q = mesh.NewQuad(size)
		r.quads[size] = q
	}
	return q
}

func (r *Renderer) Begin() {
	rl.ClearBackground(r.Background)
	rl.DisableBackfaceCulling()
}

// DrawScene draws every sprite, atlas sprite and mesh in the world.
func (r *Renderer) DrawScene(w *scene.World) {
	for _, d := range w.Drawables() {
		if sprite, ok := w.Sprite(d.Entity); ok {
			img, ok := r.assets.Images.Get(sprite.Image)
			if !ok {
				continue
			}
			size := img.Size()
			if sprite.CustomSize != nil {
				size = *sprite.CustomSize
			}
			r.drawTextured(r.quad(size), d.Transform, material.NewDespawn(sprite.Image.ID(), mgl32.Vec2{}, img.Size(), img.Size(), false))
			continue
		}
		if as, ok := w.AtlasSprite(d.Entity); ok {
			atlas, ok := r.assets.Atlases.Get(as.Atlas)
			if !ok || as.Index < 0 || as.Index >= len(atlas.Rects) {
				continue
			}
			rect := atlas.Rects[as.Index]
			size := rect.Size()
			if as.CustomSize != nil {
				size = *as.CustomSize
			}
			r.drawTextured(r.quad(size), d.Transform, material.NewDespawn(atlas.Texture.ID(), rect.Min, rect.Size(), atlas.Size, false))
			continue
		}
		if md, ok := w.Mesh2D(d.Entity); ok {
			m, ok := r.assets.Meshes.Get(md.Mesh)
			if !ok {
				continue
			}
			c, ok := r.assets.Materials.Get(md.Material)
			if !ok {
				c = material.Gray
			}
			r.drawColored(m, d.Transform, c)
		}
	}
}

// DrawParticles draws every live particle.
func (r *Renderer) DrawParticles(store *particle.Store) {
	store.Each(func(p *particle.Particle) {
		switch {
		case p.Visual.Textured != nil:
			r.drawTextured(p.Visual.Mesh, p.Body.Transform, p.Visual.Textured)
		case p.Visual.Color != nil:
			r.drawColored(p.Visual.Mesh, p.Body.Transform, *p.Visual.Color)
		}
	})
}

func (r *Renderer) drawTextured(m *mesh.Mesh, t geom.Transform, mat *material.Despawn) {
	if m == nil || !r.Viewport.Visible(t.Translation, boundingRadius(m, t)) {
		return
	}
	tex, ok := r.texture(mat.Image)
	if !ok {
		return
	}
	verts := r.Viewport.meshVertices(m, t)
	if len(verts) == 0 {
		return
	}

	rl.BeginShaderMode(r.shader.shader)
	r.shader.apply(mat)
	rl.SetTexture(tex.ID)
	rl.Begin(rl.Triangles)
	rl.Color4ub(255, 255, 255, 255)
	for _, v := range verts {
		rl.TexCoord2f(v.UV.X(), v.UV.Y())
		rl.Vertex2f(v.Pos.X(), v.Pos.Y())
	}
	rl.End()
	rl.SetTexture(0)
	rl.EndShaderMode()
}

func (r *Renderer) drawColored(m *mesh.Mesh, t geom.Transform, c material.Color) {
	if m == nil || !r.Viewport.Visible(t.Translation, boundingRadius(m, t)) {
		return
	}
	verts := r.Viewport.meshVertices(m, t)
	if len(verts) == 0 {
		return
	}
	cr, cg, cb, ca := c.RGBA8()

	rl.SetTexture(r.white.ID)
	rl.Begin(rl.Triangles)
	rl.Color4ub(cr, cg, cb, ca)
	for _, v := range verts {
		rl.TexCoord2f(v.UV.X(), v.UV.Y())
		rl.Vertex2f(v.Pos.X(), v.Pos.Y())
	}
	rl.End()
	rl.SetTexture(0)
}

// Unload frees GPU resources.
func (r *Renderer) Unload() {
	for id, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, id)
	}
	rl.UnloadTexture(r.white)
	r.shader.unload()
}
