package despawn

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

type propertyKind uint8

const (
	kindFixed propertyKind = iota
	kindRange
	kindChoice
)

// Scalar is a per-fragment value: fixed, uniform in [min, max), or one of
// a list. The zero Scalar is Fixed(0).
type Scalar struct {
	kind   propertyKind
	values []float32
}

func Fixed(v float32) Scalar {
	return Scalar{kind: kindFixed, values: []float32{v}}
}

// Range samples uniformly between a and b, in either order.
func Range(a, b float32) Scalar {
	if b < a {
		a, b = b, a
	}
	return Scalar{kind: kindRange, values: []float32{a, b}}
}

// Choice picks one of vs with equal probability. An empty list is Fixed(0).
func Choice(vs ...float32) Scalar {
	if len(vs) == 0 {
		return Scalar{}
	}
	return Scalar{kind: kindChoice, values: append([]float32(nil), vs...)}
}

func (s Scalar) Sample(rng *rand.Rand) float32 {
	switch s.kind {
	case kindRange:
		lo, hi := s.values[0], s.values[1]
		return lo + rng.Float32()*(hi-lo)
	case kindChoice:
		return s.values[rng.Intn(len(s.values))]
	}
	if len(s.values) == 0 {
		return 0
	}
	return s.values[0]
}

// Bounds returns the smallest and largest value Sample can produce.
func (s Scalar) Bounds() (float32, float32) {
	if len(s.values) == 0 {
		return 0, 0
	}
	lo, hi := s.values[0], s.values[0]
	for _, v := range s.values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

// Vector samples each axis independently.
type Vector struct {
	X, Y Scalar
}

func FixedVec(v mgl32.Vec2) Vector {
	return Vector{X: Fixed(v.X()), Y: Fixed(v.Y())}
}

func (v Vector) Sample(rng *rand.Rand) mgl32.Vec2 {
	return mgl32.Vec2{v.X.Sample(rng), v.Y.Sample(rng)}
}
