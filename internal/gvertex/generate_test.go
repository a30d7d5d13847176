package gvertex

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/transition"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

// unitSquare builds a single quad's worth of UV (two triangles spanning
// [0,2]x[0,2], already integer-truncated) so grid generation has no
// OnFace vertex, one OnEdge vertex at (1,1) on the shared diagonal, and
// predictable OnEdge/OnVertex counts.
func unitSquare() *trimesh.Mesh {
	positions := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}, {X: 2, Y: 2, Z: 0}}
	tris := []trimesh.Triangle{
		{V: [3]int{0, 1, 2}, UV: [3]geom.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}},
		{V: [3]int{1, 3, 2}, UV: [3]geom.Vec2{{X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}},
	}
	m, err := trimesh.Build(positions, tris)
	if err != nil {
		panic(err)
	}
	return m
}

func identityEmbedding() Embedding {
	return Embedding{
		TrianglePoint: func(f trimesh.FaceID, uv geom.Vec2) geom.Vec3 { return geom.Vec3{X: uv.X, Y: uv.Y} },
		EdgePoint:     func(e trimesh.EdgeID, uv geom.Vec2) geom.Vec3 { return geom.Vec3{X: uv.X, Y: uv.Y} },
		VertexPoint:   func(v trimesh.VertexID) geom.Vec3 { return geom.Vec3{} },
	}
}

func TestGenerateFindsInteriorDiagonalVertex(t *testing.T) {
	m := unitSquare()
	tf := transition.Extract(m)
	s := Generate(m, tf, identityEmbedding())

	found := false
	for _, gv := range s.GVertices {
		if gv.Kind == OnEdge && gv.PositionUV == (geom.Vec2{X: 1, Y: 1}) {
			found = true
			if len(gv.LocalEdges) != 4 {
				t.Errorf("expected 4 LEIs at the diagonal edge vertex, got %d", len(gv.LocalEdges))
			}
		}
	}
	if !found {
		t.Fatalf("expected an OnEdge grid vertex at (1,1)")
	}
}

func TestGenerateVertexGVerticesAtCorners(t *testing.T) {
	m := unitSquare()
	tf := transition.Extract(m)
	s := Generate(m, tf, identityEmbedding())

	for v := 0; v < m.NumVertices(); v++ {
		if len(s.VertexGVertices[v]) != 1 {
			t.Errorf("vertex %d: expected exactly one grid vertex, got %d", v, len(s.VertexGVertices[v]))
		}
	}
}
