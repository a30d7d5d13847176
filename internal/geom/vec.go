// Package geom provides the 2D parameterization-space and 3D object-space
// primitives used throughout the quad extractor: vectors, transition
// functions, and the exact-ish predicates the tracer depends on.
package geom

import "math"

// Vec2 is a point or vector in a triangle's UV chart.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a point or vector in object space. Grounded on the teacher's
// Voronoi/Vector.Vector, trimmed to the operations this package needs.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Equal compares two UV points with an absolute tolerance. The connector
// uses it to match traced landing points against grid vertex positions
// and LEI directions.
func (v Vec2) Equal(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// IsInteger reports whether both coordinates are exactly integral.
func (v Vec2) IsInteger() bool {
	return v.X == math.Trunc(v.X) && v.Y == math.Trunc(v.Y)
}

func Add3(a, b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func Sub3(a, b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func Scale3(v Vec3, s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Cross3 computes a x b.
func Cross3(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// RoundHalfAwayFromZero matches the original extractor's ROUND_QME macro:
// round-half-away-from-zero, not round-half-to-even.
func RoundHalfAwayFromZero(x float64) int {
	if x < 0 {
		return int(x - 0.5)
	}
	return int(x + 0.5)
}

// Vec2i is an integer point in a face's local UV chart — the per-halfedge
// annotation spec §6 names as part of the output contract.
type Vec2i struct {
	X, Y int
}

// RoundVec2 rounds both coordinates of v half-away-from-zero into a Vec2i.
func RoundVec2(v Vec2) Vec2i {
	return Vec2i{X: RoundHalfAwayFromZero(v.X), Y: RoundHalfAwayFromZero(v.Y)}
}
