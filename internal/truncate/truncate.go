// Package truncate implements spec §4.2 consistent truncation: it makes
// integer comparisons on UV coordinates meaningful despite floating-point
// noise, without breaking cross-chart consistency.
package truncate

import (
	"math"

	"github.com/XhnPLayer/autoremesher/internal/diagnostics"
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/transition"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

// boundarySnapEps is the 1e-4 tolerance spec §4.2/§8 names for snapping
// near-integer UVs on selected/feature boundary edges.
const boundarySnapEps = 1e-4

// Run performs consistent truncation on m in place, reading tf without
// modifying it (an inconsistent r=0-with-translation vertex is only
// reported). props is optional (may be nil):
// when supplied, every vertex resolved to a singular fixed point or found
// adjacent to more than one boundary loop is tagged on it (spec §5's
// scoped face-color/vertex-status properties), for internal/viz and
// internal/diagnostics to read back without recomputing the same walk.
func Run(m *trimesh.Mesh, tf *transition.Table, diag *diagnostics.Log, props *trimesh.Properties) {
	snapBoundaries(m)
	canonicalizeVertices(m, tf, diag, props)
}

// snapBoundaries implements spec §4.2's "Per-edge boundary snap": for
// every selected/feature boundary edge whose two end-UVs on one axis are
// both within boundarySnapEps of the same integer, replace both with that
// integer.
func snapBoundaries(m *trimesh.Mesh) {
	for e := 0; e < m.NumEdges(); e++ {
		edge := &m.Edges[e]
		if !edge.Boundary || !(edge.Selected || edge.Feature) {
			continue
		}
		h := interiorHalfedgeOf(m, trimesh.EdgeID(e))
		if h == trimesh.InvalidID {
			continue
		}
		hTo := m.Halfedges[h].Next

		from := m.UV(h)
		to := m.UV(hTo)

		snappedFrom, snappedTo := from, to
		if snapAxis(from.X, to.X) {
			r := float64(geom.RoundHalfAwayFromZero(from.X))
			snappedFrom.X, snappedTo.X = r, r
		}
		if snapAxis(from.Y, to.Y) {
			r := float64(geom.RoundHalfAwayFromZero(from.Y))
			snappedFrom.Y, snappedTo.Y = r, r
		}
		m.SetUV(h, snappedFrom)
		m.SetUV(hTo, snappedTo)
	}
}

func snapAxis(a, b float64) bool {
	ra := float64(geom.RoundHalfAwayFromZero(a))
	rb := float64(geom.RoundHalfAwayFromZero(b))
	return ra == rb && math.Abs(a-ra) < boundarySnapEps && math.Abs(b-rb) < boundarySnapEps
}

// interiorHalfedgeOf returns the non-boundary halfedge of a boundary edge
// (the one whose Face is a real triangle), matching edge_to_halfedge_'s
// preference for the non-boundary side.
func interiorHalfedgeOf(m *trimesh.Mesh, e trimesh.EdgeID) trimesh.HalfedgeID {
	for _, h := range m.Edges[e].Halfedges {
		if h != trimesh.InvalidID && !m.IsBoundaryHalfedge(h) {
			return h
		}
	}
	return trimesh.InvalidID
}

// canonicalizeVertices implements spec §4.2's per-vertex canonicalization:
// clears low-order noise bits on the anchor corner, resolves singular
// vertices to their transition's fixed point, and propagates the
// canonical value around the one-ring via edge transition functions.
func canonicalizeVertices(m *trimesh.Mesh, tf *transition.Table, diag *diagnostics.Log, props *trimesh.Properties) {
	for v := 0; v < m.NumVertices(); v++ {
		vid := trimesh.VertexID(v)
		outgoing := m.VertexOutgoingHalfedges(vid)
		if len(outgoing) == 0 {
			continue
		}

		maxUV, maxTrans := 0.0, 0.0
		nBoundary := 0
		for _, h := range outgoing {
			if m.IsBoundaryHalfedge(h) {
				nBoundary++
				continue
			}
			uv := m.UV(h)
			maxUV = math.Max(maxUV, math.Max(math.Abs(uv.X), math.Abs(uv.Y)))
			prevEdge := m.Halfedges[h].Prev
			e := m.Halfedges[prevEdge].Edge
			if !m.IsBoundaryEdge(e) {
				t := tf.Of(e)
				maxTrans = math.Max(maxTrans, math.Max(math.Abs(float64(t.Tu)), math.Abs(float64(t.Tv))))
			}
		}

		s := math.Pow(2.0, math.Ceil(math.Log2(maxUV+maxTrans+1))+1)

		anchor := outgoing[0]
		isAnchorBoundary := m.IsBoundaryHalfedge(anchor)
		if !isAnchorBoundary {
			uv := m.UV(anchor)
			uv.X = uv.X + s - s
			uv.Y = uv.Y + s - s
			m.SetUV(anchor, uv)
		}

		vtrans := transition.VertexTransition(m, tf, outgoing)
		isBoundaryVertex := nBoundary > 0

		singular := false
		if !isBoundaryVertex && !vtrans.IsIdentity() && !isAnchorBoundary {
			if fixed, ok := geom.FixedPointHalfInteger(vtrans); ok {
				m.SetUV(anchor, fixed)
				singular = true
			} else if abs(vtrans.Tu)+abs(vtrans.Tv) > 1 {
				diag.Report(diagnostics.ParameterizationInconsistency,
					"vertex %d: identity-rotation transition has nonzero translation (%d,%d); parameterization is inconsistent",
					v, vtrans.Tu, vtrans.Tv)
			}
		}

		if !isAnchorBoundary {
			propagate(m, tf, outgoing, anchor)
		}

		nonManifold := nBoundary > 1
		if nonManifold {
			diag.Report(diagnostics.ParameterizationInconsistency,
				"vertex %d: non-manifold, adjacent to %d boundary loops", v, nBoundary)
		}

		if props != nil && (singular || nonManifold) {
			props.SetVertexStatus(vid, trimesh.VertexStatus{Singular: singular, NonManifold: nonManifold})
		}
	}
}

// propagate walks the one-ring starting at anchor (spec §4.2 step 4),
// applying each crossed edge's TF to carry the canonical UV into every
// other incident face's chart.
func propagate(m *trimesh.Mesh, tf *transition.Table, outgoing []trimesh.HalfedgeID, anchor trimesh.HalfedgeID) {
	cur := m.UV(anchor)
	h := anchor
	for i := 1; i < len(outgoing)+1; i++ {
		next := rotateOutgoing(m, h)
		if next == trimesh.InvalidID || next == anchor {
			break
		}
		if m.IsBoundaryHalfedge(next) {
			h = next
			continue
		}
		crossing := m.Halfedges[h].Prev
		t := transition.CrossingTF(m, tf, crossing)
		cur = t.TransformPoint(cur)
		m.SetUV(next, cur)
		h = next
	}
}

// rotateOutgoing steps from one outgoing halfedge of a vertex to the next
// in the same rotational order as trimesh.Mesh.VertexOutgoingHalfedges.
func rotateOutgoing(m *trimesh.Mesh, h trimesh.HalfedgeID) trimesh.HalfedgeID {
	prev := m.Halfedges[h].Prev
	return m.Halfedges[prev].Opposite
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
