package despawn

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/geom"
	"despawn-particles/internal/material"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/phys"
	"despawn-particles/internal/scene"
)

// Scene is what the factory needs from the host. *scene.World satisfies it.
type Scene interface {
	Valid(e scene.Entity) bool
	Despawn(e scene.Entity)
	DespawnRecursive(e scene.Entity)
	GlobalTransform(e scene.Entity) (geom.Transform, bool)
	Velocity(e scene.Entity) (phys.Velocity, bool)
	Sprite(e scene.Entity) (scene.SpriteData, bool)
	AtlasSprite(e scene.Entity) (scene.AtlasSpriteData, bool)
	Mesh2D(e scene.Entity) (scene.Mesh2DData, bool)
	MeshOverride(e scene.Entity) (scene.DespawnMeshOverrideData, bool)
	NoDespawnAnimation(e scene.Entity) bool
}

// imageRegion is the part of a texture an image-backed entity shows.
type imageRegion struct {
	image       uint64
	offset      mgl32.Vec2
	inputSize   mgl32.Vec2
	textureSize mgl32.Vec2
	customSize  *mgl32.Vec2
}

// ratio maps the region's pixel size onto its displayed size.
func (r *imageRegion) ratio() mgl32.Vec2 {
	if r == nil || r.customSize == nil || r.inputSize.X() == 0 || r.inputSize.Y() == 0 {
		return mgl32.Vec2{1, 1}
	}
	return mgl32.Vec2{r.customSize.X() / r.inputSize.X(), r.customSize.Y() / r.inputSize.Y()}
}

// sourceVisual is what the target looked like. Exactly one of image and
// color is set.
type sourceVisual struct {
	shape *mesh.Mesh
	image *imageRegion
	color *material.Color
}

// snapshot is everything read from the scene before the target is removed.
type snapshot struct {
	transform geom.Transform
	velocity  phys.Velocity
	skip      bool
	visual    sourceVisual
	err       error
}

func takeSnapshot(sc Scene, as *assets.Server, ev *Event) snapshot {
	var s snapshot
	s.skip = sc.NoDespawnAnimation(ev.Entity)
	if s.skip {
		return s
	}
	t, ok := sc.GlobalTransform(ev.Entity)
	if !ok {
		s.err = ErrNoTransform
		return s
	}
	s.transform = t
	s.velocity, _ = sc.Velocity(ev.Entity)

	visual, err := resolveVisual(sc, as, ev.Entity, ev.Gray)
	if err != nil {
		s.err = err
		return s
	}
	shape, err := chooseShape(sc, as, ev, visual)
	if err != nil {
		s.err = err
		return s
	}
	visual.shape = shape
	s.visual = visual
	return s
}

// resolveVisual tries a sprite, then an atlas sprite, then a mesh.
func resolveVisual(sc Scene, as *assets.Server, e scene.Entity, gray bool) (sourceVisual, error) {
	if sprite, ok := sc.Sprite(e); ok {
		img, ok := as.Images.Get(sprite.Image)
		if !ok {
			return sourceVisual{}, ErrStaleImage
		}
		size := img.Size()
		return sourceVisual{image: &imageRegion{
			image:       sprite.Image.ID(),
			inputSize:   size,
			textureSize: size,
			customSize:  sprite.CustomSize,
		}}, nil
	}

	if sprite, ok := sc.AtlasSprite(e); ok {
		atlas, ok := as.Atlases.Get(sprite.Atlas)
		if !ok {
			return sourceVisual{}, ErrStaleAtlas
		}
		if sprite.Index < 0 || sprite.Index >= len(atlas.Rects) {
			return sourceVisual{}, fmt.Errorf("%w: %d of %d", ErrInvalidAtlasIndex, sprite.Index, len(atlas.Rects))
		}
		img, ok := as.Images.Get(atlas.Texture)
		if !ok {
			return sourceVisual{}, ErrStaleImage
		}
		rect := atlas.Rects[sprite.Index]
		return sourceVisual{image: &imageRegion{
			image:       atlas.Texture.ID(),
			offset:      rect.Min,
			inputSize:   rect.Size(),
			textureSize: img.Size(),
			customSize:  sprite.CustomSize,
		}}, nil
	}

	if m, ok := sc.Mesh2D(e); ok {
		base := material.Gray
		if m.Material.Valid() {
			if c, ok := as.Materials.Get(m.Material); ok {
				base = c
			}
		}
		if gray {
			base = base.Grayscale()
		}
		shape, ok := as.Meshes.Get(m.Mesh)
		if !ok {
			return sourceVisual{}, ErrStaleMesh
		}
		return sourceVisual{shape: shape, color: &base}, nil
	}

	return sourceVisual{}, ErrEntityMissingComponents
}

// chooseShape picks the mesh to split: the event override, then the
// entity override, then the resolved visual.
func chooseShape(sc Scene, as *assets.Server, ev *Event, visual sourceVisual) (*mesh.Mesh, error) {
	override := ev.MeshOverride
	if !override.Valid() {
		if o, ok := sc.MeshOverride(ev.Entity); ok {
			override = o.Mesh
		}
	}
	if override.Valid() {
		m, ok := as.Meshes.Get(override)
		if !ok {
			return nil, ErrStaleMesh
		}
		return m, nil
	}
	if visual.image != nil {
		return mesh.NewQuad(visual.image.inputSize), nil
	}
	return visual.shape, nil
}
