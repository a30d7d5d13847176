package polymesh

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/geom"
)

// buildQuad assembles a single closed quad face the same way
// internal/assemble.addFace does: allocate vertices, wire one directed
// halfedge per edge into the face loop, link the opposites as the
// implicit outer boundary, and adjust each vertex's stored halfedge so
// it points at the boundary side.
func buildQuad() (*Mesh, []HalfedgeHandle) {
	m := New()
	verts := make([]VertexHandle, 4)
	for i := range verts {
		verts[i] = m.NewVertex(geom.Vec3{X: float64(i)})
	}

	f := m.NewFace()
	halfedges := make([]HalfedgeHandle, 4)
	for i := range verts {
		from, to := verts[i], verts[(i+1)%4]
		h, _ := m.NewEdge(from, to)
		m.SetFaceHandle(h, f)
		halfedges[i] = h
	}
	for i := range halfedges {
		m.SetNextHalfedgeHandle(halfedges[i], halfedges[(i+1)%4])
	}
	m.SetFaceHalfedgeHandle(f, halfedges[0])
	for i, v := range verts {
		m.SetHalfedgeHandle(v, halfedges[i])
		m.AdjustOutgoingHalfedge(v)
	}
	return m, halfedges
}

func TestBoundaryLoopFromWalksWholeHole(t *testing.T) {
	m, halfedges := buildQuad()

	var boundaryStart HalfedgeHandle = InvalidHandle
	for _, h := range halfedges {
		if opp := m.OppositeHalfedgeHandle(h); m.IsBoundary(opp) {
			boundaryStart = opp
			break
		}
	}
	if boundaryStart == InvalidHandle {
		t.Fatalf("expected the quad's outer opposites to be boundary halfedges")
	}

	loop := m.BoundaryLoopFrom(boundaryStart)
	if len(loop) != 4 {
		t.Fatalf("expected a 4-halfedge hole around the single quad face, got %d", len(loop))
	}
	for _, h := range loop {
		if !m.IsBoundary(h) {
			t.Errorf("halfedge %d in the boundary loop is not actually a boundary halfedge", h)
		}
	}
	seen := make(map[HalfedgeHandle]bool, len(loop))
	for _, h := range loop {
		if seen[h] {
			t.Errorf("boundary loop repeats halfedge %d before closing", h)
		}
		seen[h] = true
	}
}

func TestBoundaryNextAdvancesAroundQuadHole(t *testing.T) {
	m, halfedges := buildQuad()
	var boundaryStart HalfedgeHandle = InvalidHandle
	for _, h := range halfedges {
		if opp := m.OppositeHalfedgeHandle(h); m.IsBoundary(opp) {
			boundaryStart = opp
			break
		}
	}
	if boundaryStart == InvalidHandle {
		t.Fatalf("expected a boundary halfedge")
	}
	next := m.BoundaryNext(boundaryStart)
	if next == boundaryStart {
		t.Errorf("expected BoundaryNext to advance to a different halfedge around a real quad hole")
	}
	if !m.IsBoundary(next) {
		t.Errorf("BoundaryNext must return a boundary halfedge")
	}
}
