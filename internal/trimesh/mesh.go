// Package trimesh is the input half-edge triangle mesh the extractor
// borrows: vertices with 3D positions, triangles, half-edge connectivity,
// boundary flags, and the per-corner UV parameterization (spec §6).
//
// Grounded on the teacher's Voronoi/HalfEdge package: gvertices/LEIs
// downstream reference mesh entities by stable integer index rather than
// pointer (spec §9), exactly the pattern the teacher uses for its own
// HEVertex/HEEdge/HEFace (VertexIndex/EdgeIndex/FaceIndex into
// append-only slices).
package trimesh

import "github.com/XhnPLayer/autoremesher/internal/geom"

type VertexID int
type HalfedgeID int
type EdgeID int
type FaceID int

const InvalidID = -1

// Vertex is one input-mesh vertex.
type Vertex struct {
	Pos      geom.Vec3
	Halfedge HalfedgeID // one outgoing halfedge, arbitrary but stable
}

// Halfedge is one directed half of an edge, oriented so that consecutive
// Next halfedges trace the owning face counter-clockwise.
type Halfedge struct {
	ToVertex VertexID
	Next     HalfedgeID
	Prev     HalfedgeID
	Opposite HalfedgeID
	Face     FaceID // InvalidID if this halfedge bounds the outside
	Edge     EdgeID
	UV       geom.Vec2
}

// Edge is the undirected record backing edge_to_halfedge_, edge_valid_
// and the per-edge transition function/flags of spec §3.
type Edge struct {
	Halfedges   [2]HalfedgeID // [0] and [1]; on the mesh boundary [1] is the synthesized boundary halfedge (Face == InvalidID)
	Boundary    bool
	Selected    bool
	Feature     bool
	Valid       bool // false once the decimator marks it degenerate
}

// Face is one input triangle.
type Face struct {
	Halfedge HalfedgeID // representative halfedge
}

// Mesh is the complete borrowed input triangle mesh.
type Mesh struct {
	Vertices  []Vertex
	Halfedges []Halfedge
	Edges     []Edge
	Faces     []Face
}

func (m *Mesh) NumVertices() int  { return len(m.Vertices) }
func (m *Mesh) NumHalfedges() int { return len(m.Halfedges) }
func (m *Mesh) NumEdges() int     { return len(m.Edges) }
func (m *Mesh) NumFaces() int     { return len(m.Faces) }

func (m *Mesh) IsBoundaryHalfedge(h HalfedgeID) bool {
	return m.Halfedges[h].Face == InvalidID
}

func (m *Mesh) IsBoundaryEdge(e EdgeID) bool { return m.Edges[e].Boundary }

// FaceTriangle returns the three halfedges of a triangular face in CCW
// order starting from the face's representative halfedge.
func (m *Mesh) FaceTriangle(f FaceID) [3]HalfedgeID {
	h0 := m.Faces[f].Halfedge
	h1 := m.Halfedges[h0].Next
	h2 := m.Halfedges[h1].Next
	return [3]HalfedgeID{h0, h1, h2}
}

// UV returns the UV coordinate stored for a halfedge's corner.
func (m *Mesh) UV(h HalfedgeID) geom.Vec2 { return m.Halfedges[h].UV }

// SetUV overwrites the UV coordinate for a halfedge's corner; used by
// consistent truncation (internal/truncate) to write back corrected
// values.
func (m *Mesh) SetUV(h HalfedgeID, uv geom.Vec2) { m.Halfedges[h].UV = uv }

// VertexOutgoingHalfedges visits the halfedges leaving v in CCW order by
// repeatedly taking Prev then Opposite, matching the teacher's vih_iter
// traversal. Stops if it returns to the start or hits a boundary dead end
// (no Opposite on the incoming side).
func (m *Mesh) VertexOutgoingHalfedges(v VertexID) []HalfedgeID {
	start := m.Vertices[v].Halfedge
	if start == InvalidID {
		return nil
	}
	var out []HalfedgeID
	h := start
	for {
		out = append(out, h)
		prev := m.Halfedges[h].Prev
		opp := m.Halfedges[prev].Opposite
		if opp == InvalidID {
			break
		}
		h = opp
		if h == start {
			break
		}
	}
	return out
}
