package geom

import "github.com/XhnPLayer/autoremesher/internal/exactkernel"

// classifyExact is consulted by OrientationOf whenever the float64 cross
// product falls within orientEpsilon of zero: triangles at that scale are
// exactly the near-degenerate cases spec §9 warns the float path
// misclassifies.
func classifyExact(a, b, c Vec2) Orientation {
	switch exactkernel.Orientation(a.X, a.Y, b.X, b.Y, c.X, c.Y) {
	case 1:
		return CounterClockwise
	case -1:
		return Clockwise
	default:
		return Collinear
	}
}
