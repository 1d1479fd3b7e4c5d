// Package geom holds the small amount of vector math shared by the mesh
// splitter, the kinematics engine and the fragment factory.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	UnitZ = mgl32.Vec3{0, 0, 1}
	One3  = mgl32.Vec3{1, 1, 1}
)

// AngleBetween returns the firing angle from source to target. 0 points
// straight up (+Y) and pi/2 points to +X.
func AngleBetween(source, target mgl32.Vec2) float32 {
	return float32(math.Atan2(float64(target.X()-source.X()), float64(target.Y()-source.Y())))
}

// AngleBetween3 is AngleBetween on the XY plane.
func AngleBetween3(source, target mgl32.Vec3) float32 {
	return AngleBetween(source.Vec2(), target.Vec2())
}

func TriangleCentroid(tri [3]mgl32.Vec3) mgl32.Vec3 {
	return tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3.0)
}

func Sub(a, b mgl32.Vec3) mgl32.Vec3 {
	return a.Sub(b)
}

func Midpoint3(a, b mgl32.Vec3) mgl32.Vec3 {
	return a.Add(b).Mul(0.5)
}

func Midpoint2(a, b mgl32.Vec2) mgl32.Vec2 {
	return a.Add(b).Mul(0.5)
}

// MulElem3 multiplies component-wise.
func MulElem3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Polar builds (length*sin(angle), length*cos(angle)), the vector pointing
// along a firing angle.
func Polar(angle, length float32) mgl32.Vec2 {
	s, c := math.Sincos(float64(angle))
	return mgl32.Vec2{length * float32(s), length * float32(c)}
}

// Luminance is the Rec. 601 luma of an RGB triple.
func Luminance(r, g, b float32) float32 {
	return 0.299*r + 0.587*g + 0.114*b
}

// AngleZ extracts the rotation about +Z from a quaternion that only rotates
// about Z.
func AngleZ(q mgl32.Quat) float32 {
	return 2 * float32(math.Atan2(float64(q.V.Z()), float64(q.W)))
}

func Clamp(v, lo, hi float32) float32 {
	return float32(math.Min(math.Max(float64(v), float64(lo)), float64(hi)))
}
