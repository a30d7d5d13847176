package geom

// Matrix3 is the 2D->3D affine map solved per primitive (spec §4.3, §6
// "3x3 matrix solve for 2D->3D mapping"): columns map (u, v, 1) to a 3D
// point, one row per output coordinate.
type Matrix3 [3][3]float64

// Apply evaluates M * (u, v, 1).
func (m Matrix3) Apply(u, v float64) Vec3 {
	return Vec3{
		X: m[0][0]*u + m[0][1]*v + m[0][2],
		Y: m[1][0]*u + m[1][1]*v + m[1][2],
		Z: m[2][0]*u + m[2][1]*v + m[2][2],
	}
}

// TriangleMapping solves the exact affine map taking the triangle's three
// UV corners to their embedded 3D positions. Three correspondences fully
// determine the three affine unknowns per output coordinate, so this is a
// direct (not least-squares) solve via barycentric coordinates; the
// least-squares framing in spec §4.3 degenerates to the exact case here
// and is only genuinely approximate for SegmentMapping below.
func TriangleMapping(tri Triangle, p0, p1, p2 Vec3) Matrix3 {
	// Barycentric weight functions are linear in (u,v), so each row of M
	// is the linear combination of p0,p1,p2's coordinate weighted by the
	// barycentric basis functions' own (a,b,c) linear coefficients.
	area := cross2(tri.B.Sub(tri.A), tri.C.Sub(tri.A))
	if area == 0 {
		return Matrix3{}
	}
	inv := 1.0 / area

	// Barycentric coordinate for corner i as a function of (u,v):
	// w_i(u,v) = (alpha_i*u + beta_i*v + gamma_i) * inv
	coeffs := func(p, q, r Vec2) (alpha, beta, gamma float64) {
		// weight of the corner opposite edge (q,r), evaluated at p
		alpha = q.Y - r.Y
		beta = r.X - q.X
		gamma = q.X*r.Y - r.X*q.Y
		_ = p
		return
	}

	a0, b0, g0 := coeffs(tri.A, tri.B, tri.C)
	a1, b1, g1 := coeffs(tri.B, tri.C, tri.A)
	a2, b2, g2 := coeffs(tri.C, tri.A, tri.B)

	var m Matrix3
	for row, comp := range [3]func(Vec3) float64{
		func(v Vec3) float64 { return v.X },
		func(v Vec3) float64 { return v.Y },
		func(v Vec3) float64 { return v.Z },
	} {
		c0, c1, c2 := comp(p0), comp(p1), comp(p2)
		m[row][0] = (c0*a0 + c1*a1 + c2*a2) * inv
		m[row][1] = (c0*b0 + c1*b1 + c2*b2) * inv
		m[row][2] = (c0*g0 + c1*g1 + c2*g2) * inv
	}
	return m
}

// SegmentMapping solves the least-squares affine map for an OnEdge
// gvertex: a 1-parameter family of lattice points along a segment, mapped
// to the 3D segment between its two endpoints by linear interpolation
// along the UV parameter. Two correspondences underdetermine the full
// affine map, so this is a genuine (if trivial, since the segment is
// 1-dimensional) least-squares fit: the projection of any query point
// onto the line minimizes UV-space residual.
func SegmentMapping(seg Segment, p0, p1 Vec3) Matrix3 {
	d := seg.B.Sub(seg.A)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq == 0 {
		return Matrix3{}
	}
	// t(u,v) = ((u,v)-A) . d / |d|^2
	inv := 1.0 / lenSq
	alpha := d.X * inv
	beta := d.Y * inv
	gamma := -(seg.A.X*d.X + seg.A.Y*d.Y) * inv

	delta := Sub3(p1, p0)
	var m Matrix3
	for row, comp := range [3]float64{delta.X, delta.Y, delta.Z} {
		m[row][0] = comp * alpha
		m[row][1] = comp * beta
		m[row][2] = comp*gamma + componentAt(p0, row)
	}
	return m
}

func componentAt(v Vec3, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
