package geom

// TF is a transition function: the symmetry element (rotation by r*90deg
// followed by an integer translation) that maps one triangle's UV chart
// into a neighbor's. See spec §3 "TransitionFunction (TF)".
type TF struct {
	R      int // in {0,1,2,3}
	Tu, Tv int
}

// Identity is the (0,0,0) transition function.
var Identity = TF{}

func (t TF) IsIdentity() bool { return t.R == 0 && t.Tu == 0 && t.Tv == 0 }

// rotate90 rotates p by r quarter turns about the origin, i.e. multiplies
// the complex number (p.X + i*p.Y) by i^r.
func rotate90(p Vec2, r int) Vec2 {
	switch ((r % 4) + 4) % 4 {
	case 0:
		return p
	case 1:
		return Vec2{-p.Y, p.X}
	case 2:
		return Vec2{-p.X, -p.Y}
	default: // 3
		return Vec2{p.Y, -p.X}
	}
}

// TransformPoint applies the transition function to a UV point: rotate
// then translate.
func (t TF) TransformPoint(p Vec2) Vec2 {
	r := rotate90(p, t.R)
	return Vec2{r.X + float64(t.Tu), r.Y + float64(t.Tv)}
}

// TransformVector applies only the rotational part (directions have no
// translation).
func (t TF) TransformVector(d Vec2) Vec2 {
	return rotate90(d, t.R)
}

// Compose returns the transition function equivalent to applying t first,
// then u: u.Compose(t) in the sense of function composition u(t(p)).
// Composition is not commutative.
func (u TF) Compose(t TF) TF {
	r := ((u.R + t.R) % 4 + 4) % 4
	// u(t(p)) = rot(u.R, rot(t.R, p) + t.trans) + u.trans
	//         = rot(u.R+t.R, p) + rot(u.R, t.trans) + u.trans
	rotatedTrans := rotate90(Vec2{float64(t.Tu), float64(t.Tv)}, u.R)
	tu := int(rotatedTrans.X) + u.Tu
	tv := int(rotatedTrans.Y) + u.Tv
	return TF{R: r, Tu: tu, Tv: tv}
}

// Inverse returns the exact inverse transition function.
func (t TF) Inverse() TF {
	invR := ((4 - t.R) % 4 + 4) % 4
	// t(p) = rot(R,p)+T ; t^-1(q) = rot(-R, q-T)
	negT := rotate90(Vec2{float64(-t.Tu), float64(-t.Tv)}, invR)
	return TF{R: invR, Tu: int(negT.X), Tv: int(negT.Y)}
}

// VertexTransition composes a chain of edge transition functions walked
// around an interior vertex in one consistent rotational direction,
// innermost (first edge crossed) applied first.
func VertexTransition(chain []TF) TF {
	acc := Identity
	for _, t := range chain {
		acc = t.Compose(acc)
	}
	return acc
}

// FixedPointHalfInteger returns the canonical UV of the fixed point of a
// non-identity, non-regular vertex transition, per spec §4.2 step 3. Only
// valid for r in {1,2,3}; the caller is responsible for checking r==0
// separately (a nonzero translation there signals an inconsistent
// parameterization, not a fixed point to solve for).
func FixedPointHalfInteger(t TF) (Vec2, bool) {
	switch t.R {
	case 1:
		return Vec2{float64(t.Tu-t.Tv) / 2.0, float64(t.Tu+t.Tv) / 2.0}, true
	case 2:
		return Vec2{float64(t.Tu) / 2.0, float64(t.Tv) / 2.0}, true
	case 3:
		return Vec2{float64(t.Tu+t.Tv) / 2.0, float64(t.Tv-t.Tu) / 2.0}, true
	default:
		return Vec2{}, false
	}
}
