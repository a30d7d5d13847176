package extract

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

func unitSquareMesh() *trimesh.Mesh {
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

func TestExtractRunsEndToEndWithoutPanicking(t *testing.T) {
	m := unitSquareMesh()
	e := New(ExtractOptions{})
	out := e.Extract(m)

	stats := e.Stats()
	if stats.InputVertices != 4 {
		t.Errorf("expected 4 input vertices, got %d", stats.InputVertices)
	}
	if stats.GridVertices == 0 {
		t.Errorf("expected at least one grid vertex to be generated")
	}
	if out.NumVertices() == 0 {
		t.Errorf("expected a non-empty output mesh")
	}
}
