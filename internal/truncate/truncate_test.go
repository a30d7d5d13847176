package truncate

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/diagnostics"
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/transition"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

func buildSquare() *trimesh.Mesh {
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

func snapshotUVs(m *trimesh.Mesh) []geom.Vec2 {
	out := make([]geom.Vec2, m.NumHalfedges())
	for h := 0; h < m.NumHalfedges(); h++ {
		out[h] = m.UV(trimesh.HalfedgeID(h))
	}
	return out
}

func TestRunIsIdempotent(t *testing.T) {
	m := buildSquare()
	tf := transition.Extract(m)
	diag := diagnostics.New()

	Run(m, tf, diag, nil)
	first := snapshotUVs(m)

	tf2 := transition.Extract(m)
	Run(m, tf2, diag, nil)
	second := snapshotUVs(m)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("halfedge %d: truncation not idempotent: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestBoundarySnapWithinTolerance(t *testing.T) {
	m := buildSquare()
	// Perturb a boundary edge's endpoints by < 1e-4 and mark it selected.
	for e := 0; e < m.NumEdges(); e++ {
		if m.Edges[e].Boundary {
			m.Edges[e].Selected = true
		}
	}
	h := trimesh.HalfedgeID(0)
	uv := m.UV(h)
	uv.Y += 5e-5
	m.SetUV(h, uv)

	snapBoundaries(m)

	got := m.UV(h)
	if got.Y != 0 {
		t.Errorf("expected snap to integer 0, got %v", got.Y)
	}
}

// grid3x3 builds a 2x2-cell, 3x3-vertex grid with an identity UV chart
// (every triangle's UV equals its position), so vertex (1,1) at the
// center is the grid's one genuinely interior vertex: all eight of its
// incident triangles exist and none of its incident edges is a boundary
// edge. That is the shape spec §8 scenario 3 (a singular vertex) needs:
// a real interior vertex whose transition can be forced non-identity
// without also making it boundary-adjacent.
func grid3x3() (*trimesh.Mesh, trimesh.VertexID) {
	idx := func(ix, iy int) int { return iy*3 + ix }
	var positions []geom.Vec3
	for iy := 0; iy < 3; iy++ {
		for ix := 0; ix < 3; ix++ {
			positions = append(positions, geom.Vec3{X: float64(ix), Y: float64(iy)})
		}
	}
	uvAt := func(v int) geom.Vec2 { return geom.Vec2{X: positions[v].X, Y: positions[v].Y} }

	var tris []trimesh.Triangle
	for iy := 0; iy < 2; iy++ {
		for ix := 0; ix < 2; ix++ {
			a, b, c, d := idx(ix, iy), idx(ix+1, iy), idx(ix, iy+1), idx(ix+1, iy+1)
			tris = append(tris,
				trimesh.Triangle{V: [3]int{a, b, c}, UV: [3]geom.Vec2{uvAt(a), uvAt(b), uvAt(c)}},
				trimesh.Triangle{V: [3]int{b, d, c}, UV: [3]geom.Vec2{uvAt(b), uvAt(d), uvAt(c)}},
			)
		}
	}
	m, err := trimesh.Build(positions, tris)
	if err != nil {
		panic(err)
	}
	return m, trimesh.VertexID(idx(1, 1))
}

func TestCanonicalizeVerticesFlagsSingularVertex(t *testing.T) {
	m, center := grid3x3()
	tf := transition.Extract(m)

	outgoing := m.VertexOutgoingHalfedges(center)
	forced := false
	for _, h := range outgoing {
		if m.IsBoundaryHalfedge(h) {
			continue
		}
		tf.Set(m.Halfedges[h].Edge, geom.TF{R: 1})
		forced = true
		break
	}
	if !forced {
		t.Fatalf("expected at least one non-boundary outgoing halfedge at the center vertex")
	}

	diag := diagnostics.New()
	props, release := m.Borrow()
	defer release()

	Run(m, tf, diag, props)

	status := props.VertexStatus(center)
	if !status.Singular {
		t.Errorf("expected center vertex to be flagged singular after forcing a non-identity vertex transition")
	}
	if status.NonManifold {
		t.Errorf("center vertex is fully interior; it must not be flagged non-manifold")
	}
}

func TestBoundaryDoesNotSnapBeyondTolerance(t *testing.T) {
	m := buildSquare()
	for e := 0; e < m.NumEdges(); e++ {
		if m.Edges[e].Boundary {
			m.Edges[e].Selected = true
		}
	}
	h := trimesh.HalfedgeID(0)
	original := m.UV(h)
	uv := original
	uv.Y += 2e-4
	m.SetUV(h, uv)

	snapBoundaries(m)

	got := m.UV(h)
	if got.Y == 0 {
		t.Errorf("expected no snap at 2e-4 perturbation, got exact 0")
	}
}
