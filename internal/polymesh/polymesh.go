// Package polymesh is the output manifold-aware half-edge polygon mesh
// container spec §9 calls for: "Operations required of the output
// container: new_face, new_edge, opposite_halfedge_handle,
// next_halfedge_handle, set_next_halfedge_handle, set_face_handle,
// set_halfedge_handle, adjust_outgoing_halfedge, garbage_collection. A
// fresh implementation should encode these as a small trait so the
// extractor does not depend on a particular mesh library."
//
// Grounded on the teacher's Voronoi/HalfEdge package (index-based
// HEVertex/HEEdge/HEFace into append-only slices, EmptyVertex/EmptyEdge/
// EmptyFace sentinels) generalized from a Voronoi diagram's bounded
// valence-3 faces to arbitrary-valence polygons, and on its
// createVertex/createEdge/createFace append-then-return-index pattern.
package polymesh

import "github.com/XhnPLayer/autoremesher/internal/geom"

type VertexHandle int
type HalfedgeHandle int
type FaceHandle int

const InvalidHandle = -1

type vertex struct {
	Pos      geom.Vec3
	Halfedge HalfedgeHandle
	Deleted  bool
}

type halfedge struct {
	ToVertex VertexHandle
	Opposite HalfedgeHandle
	Next     HalfedgeHandle
	Prev     HalfedgeHandle
	Face     FaceHandle // InvalidHandle if this halfedge is still on the mesh boundary
}

type face struct {
	Halfedge HalfedgeHandle
	Deleted  bool
}

// Mesh is the output polygon mesh being assembled by internal/assemble.
type Mesh struct {
	vertices  []vertex
	halfedges []halfedge
	faces     []face
}

func New() *Mesh { return &Mesh{} }

func (m *Mesh) NumVertices() int  { return len(m.vertices) }
func (m *Mesh) NumHalfedges() int { return len(m.halfedges) }
func (m *Mesh) NumFaces() int     { return len(m.faces) }

func (m *Mesh) VertexPos(v VertexHandle) geom.Vec3 { return m.vertices[v].Pos }

func (m *Mesh) HalfedgeHandleOf(v VertexHandle) HalfedgeHandle { return m.vertices[v].Halfedge }

func (m *Mesh) ToVertexHandle(h HalfedgeHandle) VertexHandle { return m.halfedges[h].ToVertex }

func (m *Mesh) OppositeHalfedgeHandle(h HalfedgeHandle) HalfedgeHandle {
	return m.halfedges[h].Opposite
}

func (m *Mesh) NextHalfedgeHandle(h HalfedgeHandle) HalfedgeHandle { return m.halfedges[h].Next }
func (m *Mesh) PrevHalfedgeHandle(h HalfedgeHandle) HalfedgeHandle { return m.halfedges[h].Prev }

func (m *Mesh) FaceHandle(h HalfedgeHandle) FaceHandle { return m.halfedges[h].Face }

func (m *Mesh) IsBoundary(h HalfedgeHandle) bool { return m.halfedges[h].Face == InvalidHandle }

func (m *Mesh) SetNextHalfedgeHandle(h, next HalfedgeHandle) {
	m.halfedges[h].Next = next
	m.halfedges[next].Prev = h
}

func (m *Mesh) SetFaceHandle(h HalfedgeHandle, f FaceHandle) { m.halfedges[h].Face = f }

func (m *Mesh) SetHalfedgeHandle(v VertexHandle, h HalfedgeHandle) { m.vertices[v].Halfedge = h }

func (m *Mesh) SetFaceHalfedgeHandle(f FaceHandle, h HalfedgeHandle) { m.faces[f].Halfedge = h }

func (m *Mesh) FaceHalfedgeHandle(f FaceHandle) HalfedgeHandle { return m.faces[f].Halfedge }

// NewVertex appends a new, disconnected vertex.
func (m *Mesh) NewVertex(pos geom.Vec3) VertexHandle {
	m.vertices = append(m.vertices, vertex{Pos: pos, Halfedge: InvalidHandle})
	return VertexHandle(len(m.vertices) - 1)
}

// NewEdge allocates a fresh half-edge pair between two vertices, both
// initially boundary (no face), linked to each other as opposites. This
// mirrors the teacher's createEdge, generalized from a single
// (vOrigin,eTwin,ePrev,eNext,fFace) record to two independent halfedge
// slots the caller links into loops afterward.
func (m *Mesh) NewEdge(from, to VertexHandle) (out, in HalfedgeHandle) {
	out = HalfedgeHandle(len(m.halfedges))
	in = out + 1
	m.halfedges = append(m.halfedges,
		halfedge{ToVertex: to, Opposite: in, Face: InvalidHandle},
		halfedge{ToVertex: from, Opposite: out, Face: InvalidHandle},
	)
	return out, in
}

// NewFace allocates a new, as-yet-unconnected face record.
func (m *Mesh) NewFace() FaceHandle {
	m.faces = append(m.faces, face{Halfedge: InvalidHandle})
	return FaceHandle(len(m.faces) - 1)
}

// AdjustOutgoingHalfedge ensures v's stored halfedge is a boundary one
// when v has any boundary halfedge, so downstream boundary walks starting
// from v never need to search: walks the vertex fan via Prev->Opposite.
func (m *Mesh) AdjustOutgoingHalfedge(v VertexHandle) {
	start := m.vertices[v].Halfedge
	if start == InvalidHandle {
		return
	}
	h := start
	for {
		if m.IsBoundary(h) {
			m.vertices[v].Halfedge = h
			return
		}
		h = m.halfedges[m.halfedges[h].Prev].Opposite
		if h == start || h == InvalidHandle {
			return
		}
	}
}

// DeleteVertex / DeleteFace mark entities for removal by GarbageCollection.
func (m *Mesh) DeleteVertex(v VertexHandle) { m.vertices[v].Deleted = true }
func (m *Mesh) DeleteFace(f FaceHandle)     { m.faces[f].Deleted = true }

// GarbageCollection compacts the mesh, dropping deleted vertices/faces and
// remapping every surviving handle. Returns the vertex and face handle
// remappings (old -> new, InvalidHandle if dropped) for callers that hold
// external references (e.g. per-halfedge UV annotations keyed by the
// pre-compaction halfedge index remain valid since halfedges are never
// deleted by this extractor, only vertices and faces are).
func (m *Mesh) GarbageCollection() (vertexMap []VertexHandle, faceMap []FaceHandle) {
	vertexMap = make([]VertexHandle, len(m.vertices))
	newVertices := m.vertices[:0]
	for i, v := range m.vertices {
		if v.Deleted {
			vertexMap[i] = InvalidHandle
			continue
		}
		vertexMap[i] = VertexHandle(len(newVertices))
		newVertices = append(newVertices, v)
	}
	m.vertices = newVertices

	faceMap = make([]FaceHandle, len(m.faces))
	newFaces := m.faces[:0]
	for i, f := range m.faces {
		if f.Deleted {
			faceMap[i] = InvalidHandle
			continue
		}
		faceMap[i] = FaceHandle(len(newFaces))
		newFaces = append(newFaces, f)
	}
	m.faces = newFaces

	for i := range m.halfedges {
		he := &m.halfedges[i]
		he.ToVertex = remapVertex(vertexMap, he.ToVertex)
		if he.Face != InvalidHandle {
			he.Face = remapFace(faceMap, he.Face)
		}
	}
	for i := range m.faces {
		// face.Halfedge indices are unaffected, halfedges are never
		// removed by this extractor.
		_ = i
	}
	return vertexMap, faceMap
}

func remapVertex(m []VertexHandle, v VertexHandle) VertexHandle {
	if v == InvalidHandle {
		return InvalidHandle
	}
	return m[v]
}

func remapFace(m []FaceHandle, f FaceHandle) FaceHandle {
	if f == InvalidHandle {
		return InvalidHandle
	}
	return m[f]
}

// FaceVertices walks a face's boundary loop and returns its vertex
// handles in order.
func (m *Mesh) FaceVertices(f FaceHandle) []VertexHandle {
	start := m.faces[f].Halfedge
	if start == InvalidHandle {
		return nil
	}
	var out []VertexHandle
	h := start
	for {
		out = append(out, m.halfedges[h].ToVertex)
		h = m.halfedges[h].Next
		if h == start {
			break
		}
	}
	return out
}

// BoundaryNext returns the boundary halfedge that continues the same hole
// loop as h (which must itself satisfy IsBoundary), by rotating around h's
// destination vertex — exactly the fan rotation AdjustOutgoingHalfedge
// uses, started from the opposite (necessarily interior) side of h —
// until another boundary halfedge turns up.
func (m *Mesh) BoundaryNext(h HalfedgeHandle) HalfedgeHandle {
	x := m.halfedges[h].Opposite
	for i := 0; i <= len(m.halfedges); i++ {
		if m.IsBoundary(x) {
			return x
		}
		x = m.halfedges[m.halfedges[x].Prev].Opposite
	}
	return h
}

// BoundaryLoopFrom walks an entire hole boundary starting at the boundary
// halfedge h and returns every boundary halfedge of that loop, in order.
func (m *Mesh) BoundaryLoopFrom(h HalfedgeHandle) []HalfedgeHandle {
	loop := []HalfedgeHandle{h}
	for cur := m.BoundaryNext(h); cur != h; cur = m.BoundaryNext(cur) {
		loop = append(loop, cur)
		if len(loop) > len(m.halfedges) {
			break
		}
	}
	return loop
}

// FaceHalfedges walks a face's boundary loop and returns its halfedge
// handles in order.
func (m *Mesh) FaceHalfedges(f FaceHandle) []HalfedgeHandle {
	start := m.faces[f].Halfedge
	if start == InvalidHandle {
		return nil
	}
	var out []HalfedgeHandle
	h := start
	for {
		out = append(out, h)
		h = m.halfedges[h].Next
		if h == start {
			break
		}
	}
	return out
}
