package assemble

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/diagnostics"
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/gvertex"
	"github.com/XhnPLayer/autoremesher/internal/polymesh"
)

// fourGVertexRing builds a minimal store describing one closed quad: each
// grid vertex owns a single local edge pointing at the next vertex around
// the ring, already fully "connected" as internal/connector would leave
// it.
func fourGVertexRing() *gvertex.Store {
	pos := []geom.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	s := &gvertex.Store{}
	for i, p := range pos {
		next := (i + 1) % 4
		s.GVertices = append(s.GVertices, gvertex.GridVertex{
			Position3D: p,
			LocalEdges: []gvertex.LEI{
				{ConnectedTo: next, OrientationIdx: 0},
			},
		})
	}
	return s
}

func TestRunAssemblesOneQuadFace(t *testing.T) {
	s := fourGVertexRing()
	diag := diagnostics.New()

	a := Run(s, diag)
	mesh := a.Mesh()

	if mesh.NumFaces() != 1 {
		t.Fatalf("expected exactly 1 face, got %d", mesh.NumFaces())
	}
	if mesh.NumVertices() != 4 {
		t.Fatalf("expected 4 vertices, got %d", mesh.NumVertices())
	}
	verts := mesh.FaceVertices(0)
	if len(verts) != 4 {
		t.Errorf("expected a 4-cycle face, got %d vertices", len(verts))
	}
}

func TestRunRecordsUVAnnotationPerHalfedge(t *testing.T) {
	s := fourGVertexRing()
	// Give each LEI a distinct, non-origin intended UV so the stamped
	// annotation can only match if walkFaceCycle actually reads UvTo
	// rather than leaving the zero value in place.
	wantUV := []geom.Vec2{{X: 3, Y: 1}, {X: -2, Y: 4}, {X: 5, Y: -1}, {X: 0, Y: 7}}
	for i := range s.GVertices {
		s.GVertices[i].LocalEdges[0].UvTo = wantUV[i]
	}
	diag := diagnostics.New()

	a := Run(s, diag)
	mesh := a.Mesh()

	seen := 0
	for h := 0; h < mesh.NumHalfedges(); h++ {
		he := polymesh.HalfedgeHandle(h)
		uv, ok := a.UVAnnotation(he)
		if !ok {
			continue
		}
		seen++
		want := geom.RoundVec2(wantUV[0])
		matched := false
		for _, w := range wantUV {
			if uv == geom.RoundVec2(w) {
				matched = true
			}
		}
		if !matched {
			t.Errorf("halfedge %d: UV annotation %v did not match any intended UV (e.g. %v)", h, uv, want)
		}
	}
	if seen != 4 {
		t.Fatalf("expected all 4 face halfedges annotated, got %d", seen)
	}
}

func TestPostPassTagsHoleDesiredWhenBoundaryVertexPresent(t *testing.T) {
	s := fourGVertexRing()
	s.GVertices[0].IsBoundary = true
	diag := diagnostics.New()

	a := Run(s, diag)

	holes := a.Holes()
	if len(holes) != 1 {
		t.Fatalf("expected exactly one hole around the single assembled face, got %d", len(holes))
	}
	if !holes[0].Desired {
		t.Errorf("expected the hole to be tagged desired: one of its vertices is flagged boundary")
	}
}

func TestPostPassTagsHoleUndesiredWithoutBoundaryVertex(t *testing.T) {
	s := fourGVertexRing()
	diag := diagnostics.New()

	a := Run(s, diag)

	holes := a.Holes()
	if len(holes) != 1 {
		t.Fatalf("expected exactly one hole around the single assembled face, got %d", len(holes))
	}
	if holes[0].Desired {
		t.Errorf("expected the hole to be tagged undesired: no vertex of the ring is flagged boundary")
	}
}
