// Package decimate is the external collaborator of spec §6: "given (M,
// uv, external_valences), mutates uv and marks edges as degenerate;
// returns a flag 'decimation occurred'." The core extractor only depends
// on the Decimator interface (spec §1 lists the decimator as out of
// core scope, "we specify only its contract"); this package also ships a
// reference implementation, collapsing UV edges that have degenerated to
// zero length, since a complete repo needs at least one concrete
// collaborator to run end to end.
package decimate

import (
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

// Decimator collapses degenerate UV edges in place and reports whether
// anything changed. Called twice by the extractor: once before
// consistent truncation, once after (spec §6).
type Decimator interface {
	Decimate(m *trimesh.Mesh, externalValences []uint) (changed bool)
}

// degenerateEps is the UV-space length below which an edge is considered
// collapsed by numerical noise rather than by design.
const degenerateEps = 1e-9

// ShortEdgeCollapser is the reference Decimator: any non-boundary edge
// whose two endpoint UVs (read from either incident halfedge's own
// chart, since both charts agree on non-degenerate geometry) coincide to
// within degenerateEps is marked invalid, so gvertex generation skips it
// (spec §4.3 "skip if degenerate").
type ShortEdgeCollapser struct{}

// PointCache snapshots each halfedge's object-space endpoint before
// decimation runs a second time, so gvertex generation can still embed
// OnFace/OnEdge points using pre-decimation 3D positions when the second
// pass actually decimates something (spec §6, "if the second call
// reports decimation, gvertex 3D positions are taken from a
// pre-decimation halfedge->point cache").
type PointCache struct {
	points []geom.Vec3
}

// CachePoints snapshots the to-vertex 3D position of every halfedge.
func CachePoints(m *trimesh.Mesh) PointCache {
	pts := make([]geom.Vec3, m.NumHalfedges())
	for h := 0; h < m.NumHalfedges(); h++ {
		pts[h] = m.Vertices[m.Halfedges[h].ToVertex].Pos
	}
	return PointCache{points: pts}
}

// At returns the cached object-space point for halfedge h.
func (c PointCache) At(h trimesh.HalfedgeID) geom.Vec3 { return c.points[h] }

func (ShortEdgeCollapser) Decimate(m *trimesh.Mesh, _ []uint) bool {
	changed := false
	for e := 0; e < m.NumEdges(); e++ {
		edge := &m.Edges[e]
		if !edge.Valid || edge.Boundary {
			continue
		}
		h0 := edge.Halfedges[0]
		h1 := edge.Halfedges[1]
		a := m.UV(h0)
		b := m.UV(m.Halfedges[h0].Next)
		if aEqualsB(a, b) {
			edge.Valid = false
			changed = true
			continue
		}
		c := m.UV(h1)
		d := m.UV(m.Halfedges[h1].Next)
		if aEqualsB(c, d) {
			edge.Valid = false
			changed = true
		}
	}
	return changed
}

func aEqualsB(a, b geom.Vec2) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy < degenerateEps*degenerateEps
}
