// Package exactkernel is the fallback geometry kernel spec §9 calls for:
// "a shims-over-an-exact-kernel design (e.g., double+filtering with
// rational fallback)". No example repo in the retrieval pack exports an
// importable exact-predicate / rational-arithmetic library (CGAL has no
// Go binding here, and mxplusb-epsilon's int128/rational types are
// unexported example code living in a non-published module path, not a
// fetchable dependency) so this package is deliberately built on the
// standard library's math/big rather than a third-party one — see
// DESIGN.md for the per-dependency justification this convention
// requires.
package exactkernel

import "math/big"

// Orientation computes the exact sign of the 2D cross product
// (bx-ax, by-ay) x (cx-ax, cy-ay) using arbitrary-precision rationals,
// for use when the float64 cross product is too close to zero to trust.
// Returns -1, 0, or 1.
func Orientation(ax, ay, bx, by, cx, cy float64) int {
	abx := sub(bx, ax)
	aby := sub(by, ay)
	acx := sub(cx, ax)
	acy := sub(cy, ay)

	det := new(big.Rat).Sub(
		new(big.Rat).Mul(abx, acy),
		new(big.Rat).Mul(aby, acx),
	)
	return det.Sign()
}

func sub(a, b float64) *big.Rat {
	ra := new(big.Rat).SetFloat64(a)
	rb := new(big.Rat).SetFloat64(b)
	if ra == nil || rb == nil {
		// NaN/Inf can't occur on finite UV coordinates; degrade to zero
		// rather than panic, matching spec §7's "no hard aborts" stance.
		return new(big.Rat)
	}
	return ra.Sub(ra, rb)
}
