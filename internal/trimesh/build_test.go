package trimesh

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/geom"
)

func twoTriangleSquare() []Triangle {
	// (0,0)-(2,0)-(0,2) and (2,0)-(2,2)-(0,2), sharing the diagonal.
	return []Triangle{
		{V: [3]int{0, 1, 2}, UV: [3]geom.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}},
		{V: [3]int{1, 3, 2}, UV: [3]geom.Vec2{{X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}},
	}
}

func TestBuildSharedEdgeHasOpposite(t *testing.T) {
	positions := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}, {X: 2, Y: 2, Z: 0}}
	m, err := Build(positions, twoTriangleSquare())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.NumFaces() != 2 {
		t.Fatalf("expected 2 faces, got %d", m.NumFaces())
	}

	interior := 0
	boundary := 0
	for _, e := range m.Edges {
		if e.Boundary {
			boundary++
		} else {
			interior++
		}
	}
	if interior != 1 {
		t.Errorf("expected exactly 1 interior edge, got %d", interior)
	}
	if boundary != 4 {
		t.Errorf("expected 4 boundary edges, got %d", boundary)
	}
}

func TestBuildRejectsNonManifoldDirectedEdge(t *testing.T) {
	positions := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}}
	tris := []Triangle{
		{V: [3]int{0, 1, 2}, UV: [3]geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}},
		{V: [3]int{0, 1, 3}, UV: [3]geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}},
	}
	if _, err := Build(positions, tris); err == nil {
		t.Fatal("expected error for duplicated directed edge")
	}
}
