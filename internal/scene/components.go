package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/geom"
	"despawn-particles/internal/material"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/phys"
)

type Entity = donburi.Entity

// Null never refers to a live entity.
var Null = donburi.Null

// SpriteData draws a whole image. A nil CustomSize draws it at its
// natural pixel size.
type SpriteData struct {
	Image      assets.Handle[*assets.Image]
	CustomSize *mgl32.Vec2
}

// AtlasSpriteData draws one indexed rectangle of an atlas.
type AtlasSpriteData struct {
	Atlas      assets.Handle[*assets.Atlas]
	Index      int
	CustomSize *mgl32.Vec2
}

// Mesh2DData is a mesh with an optional flat color material.
type Mesh2DData struct {
	Mesh     assets.Handle[*mesh.Mesh]
	Material assets.Handle[material.Color]
}

type DespawnMeshOverrideData struct {
	Mesh assets.Handle[*mesh.Mesh]
}

type HierarchyData struct {
	Parent   Entity
	Children []Entity
}

var (
	Transform           = donburi.NewComponentType[geom.Transform]()
	Hierarchy           = donburi.NewComponentType[HierarchyData]()
	Sprite              = donburi.NewComponentType[SpriteData]()
	AtlasSprite         = donburi.NewComponentType[AtlasSpriteData]()
	Mesh2D              = donburi.NewComponentType[Mesh2DData]()
	Velocity            = donburi.NewComponentType[phys.Velocity]()
	DespawnMeshOverride = donburi.NewComponentType[DespawnMeshOverrideData]()
	// NoDespawnAnimation opts an entity out of fragmenting; it is still removed.
	NoDespawnAnimation = donburi.NewTag()
)
