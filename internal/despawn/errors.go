package despawn

import (
	"errors"
	"fmt"

	"despawn-particles/internal/mesh"
	"despawn-particles/internal/scene"
)

var (
	ErrStaleEntity             = errors.New("entity no longer exists")
	ErrNoTransform             = errors.New("entity has no global transform")
	ErrEntityMissingComponents = errors.New("entity has no sprite, atlas sprite or mesh")
	ErrStaleImage              = errors.New("image handle is no longer valid")
	ErrStaleAtlas              = errors.New("atlas handle is no longer valid")
	ErrInvalidAtlasIndex       = errors.New("atlas index out of range")
	ErrStaleMesh               = errors.New("mesh handle is no longer valid")
)

// Error reports why one despawn request produced no fragments.
type Error struct {
	Entity scene.Entity
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("despawn particles for entity %v: %v", e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Kind is the stable identifier logged under the "kind" field.
func (e *Error) Kind() string {
	var meshErr *mesh.Error
	if errors.As(e.Err, &meshErr) {
		return meshErr.Kind.Name()
	}
	for _, k := range errorKinds {
		if errors.Is(e.Err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}

var errorKinds = []struct {
	err  error
	name string
}{
	{ErrStaleEntity, "StaleEntity"},
	{ErrNoTransform, "MissingTransform"},
	{ErrEntityMissingComponents, "EntityMissingComponents"},
	{ErrStaleImage, "StaleImage"},
	{ErrStaleAtlas, "StaleAtlas"},
	{ErrInvalidAtlasIndex, "InvalidAtlasIndex"},
	{ErrStaleMesh, "StaleMesh"},
	{ErrInvalidLifetime, "InvalidLifetime"},
	{ErrInvalidTargetFragments, "InvalidTargetFragments"},
}
