package connector

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/transition"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

// grid builds a 2x2 unit square split into two triangles with an
// identity parameterization, so a trace from any integer corner in any
// cardinal direction should land exactly on the next integer point.
func grid() *trimesh.Mesh {
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

func TestTraceWithinSingleFaceReachesTarget(t *testing.T) {
	m := grid()
	tf := transition.Extract(m)

	res := Trace(m, tf, trimesh.FaceID(0), geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0})
	if res.Kind != Connected {
		t.Fatalf("expected Connected, got %v", res.Kind)
	}
	want := geom.Vec2{X: 1, Y: 0}
	if res.UV != want {
		t.Errorf("expected landing at %v, got %v", want, res.UV)
	}
}

// TestResolveEdgeTieUsesGeoCrossCheck exercises the go.geo tiebreaker
// directly (spec §4.5's edge-picking tiebreak): two candidate edges of a
// right triangle are handed to resolveEdgeTie, and the ray segment
// actually crosses only one of them, so that one must win regardless of
// which was passed as "a".
func TestResolveEdgeTieUsesGeoCrossCheck(t *testing.T) {
	corners := [3]geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	p := geom.Vec2{X: -1, Y: 1}
	d := geom.Vec2{X: 1, Y: 0}
	reach := 2.0

	// Edge 0 runs (0,0)->(1,0): the ray at y=1 never crosses it.
	// Edge 2 runs (0,1)->(0,0): the ray crosses it exactly at (0,1).
	got := resolveEdgeTie(p, d, reach, corners, 0, 2)
	if got != 2 {
		t.Errorf("expected go.geo cross-check to pick edge 2, got %d", got)
	}

	// Tiebreak is symmetric in which candidate is passed first.
	got = resolveEdgeTie(p, d, reach, corners, 2, 0)
	if got != 2 {
		t.Errorf("expected go.geo cross-check to pick edge 2 regardless of argument order, got %d", got)
	}
}

func TestTraceCrossesIntoNeighborFace(t *testing.T) {
	m := grid()
	tf := transition.Extract(m)

	// From a point near the shared diagonal, heading further into it,
	// crosses out of face 0's chart into face 1's.
	res := Trace(m, tf, trimesh.FaceID(0), geom.Vec2{X: 0.9, Y: 0.9}, geom.Vec2{X: 1, Y: 1})
	if res.Kind == Degenerate || res.Kind == Exhausted {
		t.Fatalf("expected a resolvable trace, got %v", res.Kind)
	}
}
