package geom

import "github.com/go-gl/mathgl/mgl32"

type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: One3}
}

func FromTranslation(t mgl32.Vec3) Transform {
	tr := Identity()
	tr.Translation = t
	return tr
}

func FromXY(x, y float32) Transform {
	return FromTranslation(mgl32.Vec3{x, y, 0})
}

// Mul composes t with a child transform expressed in t's local space.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Translation: t.Translation.Add(t.Rotation.Rotate(MulElem3(t.Scale, child.Translation))),
		Rotation:    t.Rotation.Mul(child.Rotation).Normalize(),
		Scale:       MulElem3(t.Scale, child.Scale),
	}
}

// TransformPoint maps a local point into the space t is expressed in.
func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return t.Translation.Add(t.Rotation.Rotate(MulElem3(t.Scale, p)))
}

// RotateZ rotates t about +Z in place, post-multiplying the rotation.
func (t *Transform) RotateZ(angle float32) {
	t.Rotation = t.Rotation.Mul(mgl32.QuatRotate(angle, UnitZ)).Normalize()
}

func (t Transform) WithScale(s mgl32.Vec3) Transform {
	t.Scale = s
	return t
}
