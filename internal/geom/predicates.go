package geom

// Orientation is the sign of the 2D cross product (b-a) x (c-a): positive
// for CCW, negative for CW, zero for collinear.
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

// orientEpsilon bounds the magnitude below which the float64 cross product
// is considered unreliable and the exact big.Rat kernel is consulted
// instead (see exactkernel.Orientation). Gvertex/LEI coordinates are
// bounded integers, but intermediate UVs during tracing are not, so this
// matters near-degenerate triangles as spec §9 warns.
const orientEpsilon = 1e-9

func cross2(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// OrientationOf classifies the turn a->b->c.
func OrientationOf(a, b, c Vec2) Orientation {
	det := cross2(b.Sub(a), c.Sub(a))
	switch {
	case det > orientEpsilon:
		return CounterClockwise
	case det < -orientEpsilon:
		return Clockwise
	default:
		return classifyExact(a, b, c)
	}
}

// Triangle is a UV triangle used for bbox scanning and containment tests.
type Triangle struct {
	A, B, C Vec2
}

// SignedOrientation returns the orientation of the triangle itself
// (A,B,C), matching CGAL's Triangle_2::orientation used by the original
// extractor.
func (t Triangle) SignedOrientation() Orientation {
	return OrientationOf(t.A, t.B, t.C)
}

// BBox returns the axis-aligned bounding box of the triangle.
func (t Triangle) BBox() (minX, minY, maxX, maxY float64) {
	minX = min3(t.A.X, t.B.X, t.C.X)
	maxX = max3(t.A.X, t.B.X, t.C.X)
	minY = min3(t.A.Y, t.B.Y, t.C.Y)
	maxY = max3(t.A.Y, t.B.Y, t.C.Y)
	return
}

// HasOnBoundedSide reports whether p lies strictly inside the triangle
// (not on an edge or vertex), independent of the triangle's orientation.
func (t Triangle) HasOnBoundedSide(p Vec2) bool {
	o1 := OrientationOf(t.A, t.B, p)
	o2 := OrientationOf(t.B, t.C, p)
	o3 := OrientationOf(t.C, t.A, p)
	if o1 == Collinear || o2 == Collinear || o3 == Collinear {
		return false
	}
	return (o1 == CounterClockwise && o2 == CounterClockwise && o3 == CounterClockwise) ||
		(o1 == Clockwise && o2 == Clockwise && o3 == Clockwise)
}

// HasOnClosedSide reports whether p lies inside or on the boundary of the
// triangle, independent of orientation.
func (t Triangle) HasOnClosedSide(p Vec2) bool {
	o1 := OrientationOf(t.A, t.B, p)
	o2 := OrientationOf(t.B, t.C, p)
	o3 := OrientationOf(t.C, t.A, p)
	hasCCW := o1 == CounterClockwise || o2 == CounterClockwise || o3 == CounterClockwise
	hasCW := o1 == Clockwise || o2 == Clockwise || o3 == Clockwise
	return !(hasCCW && hasCW)
}

// Segment is a UV line segment between two points.
type Segment struct {
	A, B Vec2
}

func (s Segment) IsDegenerate() bool { return s.A == s.B }

// BBox returns the axis-aligned bounding box of the segment.
func (s Segment) BBox() (minX, minY, maxX, maxY float64) {
	minX, maxX = minMax(s.A.X, s.B.X)
	minY, maxY = minMax(s.A.Y, s.B.Y)
	return
}

// HasOn reports whether p lies on the closed segment.
func (s Segment) HasOn(p Vec2) bool {
	if OrientationOf(s.A, s.B, p) != Collinear {
		return false
	}
	minX, maxX := minMax(s.A.X, s.B.X)
	minY, maxY := minMax(s.A.Y, s.B.Y)
	return p.X >= minX-orientEpsilon && p.X <= maxX+orientEpsilon &&
		p.Y >= minY-orientEpsilon && p.Y <= maxY+orientEpsilon
}

// SegmentsIntersect reports whether two open/closed segments intersect
// and, if so, an intersection point. It uses the exact orientation
// predicate as the primary test; see SegmentsIntersectGeo in geo_cross_check.go
// for the go.geo-backed secondary witness the connector consults when two
// candidate exit edges of a trace tie.
func SegmentsIntersect(s1, s2 Segment) (bool, Vec2) {
	o1 := OrientationOf(s1.A, s1.B, s2.A)
	o2 := OrientationOf(s1.A, s1.B, s2.B)
	o3 := OrientationOf(s2.A, s2.B, s1.A)
	o4 := OrientationOf(s2.A, s2.B, s1.B)

	if o1 != o2 && o3 != o4 {
		return true, lineIntersection(s1, s2)
	}

	// Collinear overlap cases.
	if o1 == Collinear && s1.hasOnSegment(s2.A) {
		return true, s2.A
	}
	if o2 == Collinear && s1.hasOnSegment(s2.B) {
		return true, s2.B
	}
	if o3 == Collinear && s2.hasOnSegment(s1.A) {
		return true, s1.A
	}
	if o4 == Collinear && s2.hasOnSegment(s1.B) {
		return true, s1.B
	}
	return false, Vec2{}
}

func (s Segment) hasOnSegment(p Vec2) bool {
	minX, maxX := minMax(s.A.X, s.B.X)
	minY, maxY := minMax(s.A.Y, s.B.Y)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

func lineIntersection(s1, s2 Segment) Vec2 {
	d1 := s1.B.Sub(s1.A)
	d2 := s2.B.Sub(s2.A)
	denom := cross2(d1, d2)
	if denom == 0 {
		return s1.A
	}
	diff := s2.A.Sub(s1.A)
	t := cross2(diff, d2) / denom
	return s1.A.Add(d1.Scale(t))
}

func min3(a, b, c float64) float64 { return minF(a, minF(b, c)) }
func max3(a, b, c float64) float64 { return maxF(a, maxF(b, c)) }
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
