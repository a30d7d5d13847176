package trimesh

import (
	"fmt"

	"github.com/XhnPLayer/autoremesher/internal/geom"
)

// Triangle is one input triangle: three vertex indices and the per-corner
// UV parameterization aligned with them, in order.
type Triangle struct {
	V  [3]int
	UV [3]geom.Vec2
}

// Build constructs a half-edge Mesh from vertex positions and a triangle
// soup with per-corner UVs (spec §6 input: "a UV vector of length
// 2*num_halfedges giving per-corner (u,v)", here passed inline per
// triangle for convenience rather than as a flat array indexed by
// halfedge id; each halfedge stores the UV of its own "from" corner).
//
// Opposite half-edges are found by hashing directed vertex pairs, the
// standard construction also used by the teacher's createEdge bookkeeping
// (each edge is only ever created once, found by its endpoints).
func Build(positions []geom.Vec3, triangles []Triangle) (*Mesh, error) {
	m := &Mesh{
		Vertices: make([]Vertex, len(positions)),
	}
	for i, p := range positions {
		m.Vertices[i] = Vertex{Pos: p, Halfedge: InvalidID}
	}

	type dirKey struct{ a, b int }
	halfedgeOf := make(map[dirKey]HalfedgeID, len(triangles)*3)

	for ti, tri := range triangles {
		if tri.V[0] == tri.V[1] || tri.V[1] == tri.V[2] || tri.V[2] == tri.V[0] {
			return nil, fmt.Errorf("trimesh: degenerate triangle %d has repeated vertex", ti)
		}
		faceID := FaceID(len(m.Faces))
		base := HalfedgeID(len(m.Halfedges))
		for c := 0; c < 3; c++ {
			from := tri.V[c]
			to := tri.V[(c+1)%3]
			key := dirKey{from, to}
			if _, dup := halfedgeOf[key]; dup {
				return nil, fmt.Errorf("trimesh: directed edge %d->%d used by more than one face (non-manifold input)", from, to)
			}
			h := base + HalfedgeID(c)
			halfedgeOf[key] = h
			m.Halfedges = append(m.Halfedges, Halfedge{
				ToVertex: VertexID(to),
				Face:     faceID,
				Opposite: InvalidID,
				Edge:     InvalidID,
				UV:       tri.UV[c],
			})
		}
		for c := 0; c < 3; c++ {
			h := base + HalfedgeID(c)
			m.Halfedges[h].Next = base + HalfedgeID((c+1)%3)
			m.Halfedges[h].Prev = base + HalfedgeID((c+2)%3)
		}
		m.Faces = append(m.Faces, Face{Halfedge: base})
		for c := 0; c < 3; c++ {
			from := tri.V[c]
			if m.Vertices[from].Halfedge == InvalidID {
				m.Vertices[from].Halfedge = base + HalfedgeID(c)
			}
		}
	}

	// Stitch opposites and synthesize boundary half-edges for directed
	// edges with no reverse partner.
	seenEdge := make(map[dirKey]bool, len(halfedgeOf))
	for key, h := range halfedgeOf {
		if seenEdge[key] {
			continue
		}
		rev := dirKey{key.b, key.a}
		if oh, ok := halfedgeOf[rev]; ok {
			m.Halfedges[h].Opposite = oh
			m.Halfedges[oh].Opposite = h
			e := EdgeID(len(m.Edges))
			m.Edges = append(m.Edges, Edge{Halfedges: [2]HalfedgeID{h, oh}, Valid: true})
			m.Halfedges[h].Edge = e
			m.Halfedges[oh].Edge = e
		} else {
			bh := HalfedgeID(len(m.Halfedges))
			m.Halfedges = append(m.Halfedges, Halfedge{
				ToVertex: VertexID(key.a),
				Face:     InvalidID,
				Opposite: h,
			})
			m.Halfedges[h].Opposite = bh
			e := EdgeID(len(m.Edges))
			m.Edges = append(m.Edges, Edge{Halfedges: [2]HalfedgeID{h, bh}, Boundary: true, Valid: true})
			m.Halfedges[h].Edge = e
			m.Halfedges[bh].Edge = e
		}
		seenEdge[key] = true
		seenEdge[rev] = true
	}

	if err := linkBoundaryLoops(m); err != nil {
		return nil, err
	}

	return m, nil
}

// linkBoundaryLoops gives every synthesized boundary half-edge a
// consistent Next/Prev around its hole, by walking the vertex fan.
func linkBoundaryLoops(m *Mesh) error {
	for h := range m.Halfedges {
		he := &m.Halfedges[h]
		if he.Face != InvalidID {
			continue
		}
		// he is a boundary halfedge created as the Opposite of some
		// interior halfedge `in`; he's ToVertex is in's tail. Find the
		// next boundary halfedge by walking around he's ToVertex.
		start := he.Opposite // the interior halfedge pointing the other way
		_ = start
		cur := HalfedgeID(h)
		v := m.Halfedges[cur].ToVertex
		next, err := nextBoundaryHalfedgeAt(m, v, cur)
		if err != nil {
			return err
		}
		m.Halfedges[cur].Next = next
		m.Halfedges[next].Prev = cur
	}
	return nil
}

// nextBoundaryHalfedgeAt finds the boundary half-edge leaving vertex v
// that continues the hole boundary after `incoming`, by rotating through
// the interior fan until a boundary opposite is found.
func nextBoundaryHalfedgeAt(m *Mesh, v VertexID, incoming HalfedgeID) (HalfedgeID, error) {
	// incoming's Opposite is the interior halfedge leaving v along the
	// hole edge we just traversed backwards; rotate around v via
	// Prev->Opposite until we hit another boundary halfedge.
	h := m.Halfedges[incoming].Opposite
	for i := 0; i < len(m.Halfedges)+1; i++ {
		if m.Halfedges[h].Face == InvalidID {
			return h, nil
		}
		h = m.Halfedges[m.Halfedges[h].Prev].Opposite
	}
	return InvalidID, fmt.Errorf("trimesh: could not close boundary loop at vertex %d", v)
}
