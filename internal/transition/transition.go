// Package transition extracts and stores the per-edge transition
// functions of spec §4.1: the integer rotation + translation mapping one
// incident triangle's UV chart onto the other's across a shared edge.
package transition

import (
	"math"
	"math/cmplx"

	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

// Table is indexed by input edge id (spec §3 "TransitionTable").
type Table struct {
	tf []geom.TF
}

// Extract builds the transition table for every edge of m. Boundary edges
// store the identity transition function.
func Extract(m *trimesh.Mesh) *Table {
	t := &Table{tf: make([]geom.TF, m.NumEdges())}
	for e := 0; e < m.NumEdges(); e++ {
		eid := trimesh.EdgeID(e)
		if m.IsBoundaryEdge(eid) {
			t.tf[e] = geom.Identity
			continue
		}
		t.tf[e] = extractOne(m, eid)
	}
	return t
}

// Of returns the transition function stored for edge e.
func (t *Table) Of(e trimesh.EdgeID) geom.TF { return t.tf[e] }

// Set overwrites the transition function stored for edge e. Exposed for
// tests; the extraction pipeline itself only reads the table.
func (t *Table) Set(e trimesh.EdgeID, tf geom.TF) { t.tf[e] = tf }

// extractOne derives the TF for one interior edge following spec §4.1:
// h0 is the edge's first halfedge (the "left" chart), h1 its opposite
// (the "right" chart). The shared edge has two endpoint vertices A, B;
// h0 runs A->B in its own face's chart and h1 runs B->A in its face's
// chart, so (l0,r0) and (l1,r1) are the two charts' values for A and B
// respectively (spec §8 invariant: TF(l0)=r0, TF(l1)=r1 exactly).
func extractOne(m *trimesh.Mesh, e trimesh.EdgeID) geom.TF {
	h0 := m.Edges[e].Halfedges[0]
	h1 := m.Edges[e].Halfedges[1]

	l0 := asComplex(m.UV(h0))                  // vertex A in h0's chart
	l1 := asComplex(m.UV(m.Halfedges[h0].Next)) // vertex B in h0's chart
	r0 := asComplex(m.UV(m.Halfedges[h1].Next)) // vertex A in h1's chart
	r1 := asComplex(m.UV(h1))                   // vertex B in h1's chart

	// rotational part recovered from the argument of the edge-vector ratio
	r := geom.RoundHalfAwayFromZero(2.0 * imag(cmplx.Log((r0-r1)/(l0-l1))) / math.Pi)
	r = ((r % 4) + 4) % 4

	// translational part closes the constraint once the rotation is known
	iPowR := cmplx.Pow(complex(0, 1), complex(float64(r), 0))
	t := r0 - iPowR*l0

	return geom.TF{
		R:  r,
		Tu: geom.RoundHalfAwayFromZero(real(t)),
		Tv: geom.RoundHalfAwayFromZero(imag(t)),
	}
}

func asComplex(v geom.Vec2) complex128 { return complex(v.X, v.Y) }

// CrossingTF returns the transition function that carries a UV point from
// the chart of halfedge `from`'s face into the chart of its opposite
// face, i.e. the TF to apply when a trace or a one-ring propagation steps
// across the edge owning `from`. The table stores each edge's TF in a
// fixed Halfedges[0]->Halfedges[1] direction; this resolves which way
// `from` sits relative to that and inverts when necessary.
func CrossingTF(m *trimesh.Mesh, t *Table, from trimesh.HalfedgeID) geom.TF {
	e := m.Halfedges[from].Edge
	tf := t.Of(e)
	if m.Edges[e].Halfedges[0] == from {
		return tf
	}
	return tf.Inverse()
}

// VertexTransition composes the edge TFs around an interior vertex in one
// consistent rotational direction (spec §3's "vertex transition").
// halfedges must be the outgoing half-edges around v in CCW order, as
// returned by trimesh.Mesh.VertexOutgoingHalfedges; boundary halfedges
// (no opposite edge) are skipped, matching consistent_truncation's own
// traversal in the original extractor.
func VertexTransition(m *trimesh.Mesh, t *Table, outgoing []trimesh.HalfedgeID) geom.TF {
	var chain []geom.TF
	for _, h := range outgoing {
		if m.IsBoundaryHalfedge(h) {
			continue
		}
		chain = append(chain, t.Of(m.Halfedges[h].Edge))
	}
	return geom.VertexTransition(chain)
}
