package geom

import geo "github.com/paulmach/go.geo"

// SegmentsIntersectGeo is the secondary witness the connector's
// edge-picking tiebreaker (spec §4.5) consults when two candidate exit
// edges solve to intersection parameters within tieEps of each other, as
// happens for a path that grazes a shared vertex. Grounded on the teacher's LineIntersection3, which cross-checks
// its hand-rolled intersection math against github.com/paulmach/go.geo's
// Path/Line Intersects+Intersection before trusting a result.
func SegmentsIntersectGeo(s1, s2 Segment) (bool, Vec2) {
	path := geo.NewPath()
	path.Push(geo.NewPoint(s1.A.X, s1.A.Y))
	path.Push(geo.NewPoint(s1.B.X, s1.B.Y))

	line := geo.NewLine(geo.NewPoint(s2.A.X, s2.A.Y), geo.NewPoint(s2.B.X, s2.B.Y))

	if !path.Intersects(line) {
		return false, Vec2{}
	}

	points, _ := path.Intersection(line)
	if len(points) == 0 {
		return true, s1.A
	}
	p := points[0]
	return true, Vec2{X: p[0], Y: p[1]}
}
