// Package math provides geometry helpers for triangle meshes.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Empty returns bounds that contain nothing; extending them with a point
// yields that point.
func Empty() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether b contains no point.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Size returns the extent along each axis, or zero when empty.
func (b Bounds) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint, or zero when empty.
func (b Bounds) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// BoundsOf returns the bounds of points.
func BoundsOf(points []mgl32.Vec3) Bounds {
	b := Empty()
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// TriangleArea returns the area of triangle abc.
func TriangleArea(a, b, c mgl32.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}
