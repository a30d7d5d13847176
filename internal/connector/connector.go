// Package connector implements spec §4.5 (face tracing) and §4.6 (local
// connection): for every outgoing LEI slot still unconnected, it marches
// a straight UV line from the owning grid vertex, crossing triangle
// charts via their transition functions, until it lands on another grid
// vertex, the mesh boundary, or exhausts its iteration budget.
package connector

import (
	"math"

	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/gvertex"
	"github.com/XhnPLayer/autoremesher/internal/transition"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

// maxTraceIterations bounds how many triangles a single connector trace
// may cross before it is declared degenerate (spec §4.5's iteration
// cap, guarding against a cyclic or inconsistent transition table).
const maxTraceIterations = 100000

const traceEps = 1e-7

// tieEps bounds how close two candidate exit edges' intersection
// parameters must be before the go.geo cross-check tiebreaker is
// consulted at all (spec §4.5's edge-picking tiebreak): a ray that grazes
// a shared vertex can solve to two edges at an almost-identical t.
const tieEps = 1e-9

// Kind classifies how a trace ended.
type Kind int

const (
	Connected Kind = iota
	HitBoundary
	Degenerate
	Exhausted
)

// Result is the outcome of one trace.
type Result struct {
	Kind     Kind
	Face     trimesh.FaceID
	UV       geom.Vec2
	Accum    geom.TF // maps the starting chart's coordinates into Face's chart
	Inverted bool    // true if the trace crossed an odd number of charts with R in {1,3} (spec's Open Question: track fold parity explicitly)
}

func faceTriangle(m *trimesh.Mesh, f trimesh.FaceID) (geom.Triangle, [3]trimesh.HalfedgeID) {
	h := m.FaceTriangle(f)
	return geom.Triangle{A: m.UV(h[0]), B: m.UV(h[1]), C: m.UV(h[2])}, h
}

// Trace marches from (startFace, startUV) in direction dir (a unit
// cartesian vector in startFace's own chart) until it reaches another
// integer grid point.
func Trace(m *trimesh.Mesh, tf *transition.Table, startFace trimesh.FaceID, startUV, dir geom.Vec2) Result {
	face := startFace
	p := startUV
	d := dir
	remaining := 1.0
	acc := geom.Identity
	inverted := false

	for iter := 0; iter < maxTraceIterations; iter++ {
		tri, h := faceTriangle(m, face)
		target := p.Add(d.Scale(remaining))
		if tri.HasOnClosedSide(target) {
			return Result{Kind: Connected, Face: face, UV: target, Accum: acc, Inverted: inverted}
		}

		bestT := math.Inf(1)
		bestEdge := -1
		secondT := math.Inf(1)
		secondEdge := -1
		corners := [3]geom.Vec2{tri.A, tri.B, tri.C}
		for i := 0; i < 3; i++ {
			a := corners[i]
			b := corners[(i+1)%3]
			t, s, ok := rayIntersectSegment(p, d, a, b)
			if !ok || s < -traceEps || s > 1+traceEps || t <= traceEps || t > remaining+traceEps {
				continue
			}
			if t < bestT {
				secondT, secondEdge = bestT, bestEdge
				bestT, bestEdge = t, i
			} else if t < secondT {
				secondT, secondEdge = t, i
			}
		}
		if bestEdge < 0 {
			return Result{Kind: Degenerate, Face: face, UV: p, Accum: acc, Inverted: inverted}
		}
		if secondEdge >= 0 && math.Abs(bestT-secondT) < tieEps {
			bestEdge = resolveEdgeTie(p, d, math.Min(bestT, remaining), corners, bestEdge, secondEdge)
		}

		crossHE := h[bestEdge]
		opp := m.Halfedges[crossHE].Opposite
		if m.Halfedges[opp].Face == trimesh.InvalidID {
			return Result{Kind: HitBoundary, Face: face, UV: p.Add(d.Scale(bestT)), Accum: acc, Inverted: inverted}
		}

		ctf := transition.CrossingTF(m, tf, crossHE)
		if ctf.R == 1 || ctf.R == 3 {
			inverted = !inverted
		}
		crossPoint := p.Add(d.Scale(bestT))
		p = ctf.TransformPoint(crossPoint)
		d = ctf.TransformVector(d)
		remaining -= bestT
		face = m.Halfedges[opp].Face
		acc = ctf.Compose(acc)
	}
	return Result{Kind: Exhausted, Face: face, UV: p, Accum: acc, Inverted: inverted}
}

// resolveEdgeTie breaks a near-exact tie between two candidate exit
// edges using go.geo as an independent witness (spec §4.5's edge-picking
// tiebreak): whichever edge go.geo's own intersection routine confirms
// the ray segment actually crosses wins; if both or neither agree, the
// primary exact predicate's closer-t candidate (a) stands unchanged.
func resolveEdgeTie(p, d geom.Vec2, reach float64, corners [3]geom.Vec2, a, b int) int {
	ray := geom.Segment{A: p, B: p.Add(d.Scale(reach))}
	edge := func(i int) geom.Segment {
		return geom.Segment{A: corners[i], B: corners[(i+1)%3]}
	}
	aHit, _ := geom.SegmentsIntersectGeo(ray, edge(a))
	bHit, _ := geom.SegmentsIntersectGeo(ray, edge(b))
	if bHit && !aHit {
		return b
	}
	return a
}

// rayIntersectSegment solves O + t*d == a + s*(b-a) for (t, s).
func rayIntersectSegment(o, d, a, b geom.Vec2) (t, s float64, ok bool) {
	e := b.Sub(a)
	denom := d.X*e.Y - d.Y*e.X
	if denom == 0 {
		return 0, 0, false
	}
	diff := a.Sub(o)
	t = (diff.X*e.Y - diff.Y*e.X) / denom
	s = (diff.X*d.Y - diff.Y*d.X) / denom
	return t, s, true
}

// ResolveTarget identifies which grid vertex, if any, occupies (face, uv)
// after a trace lands exactly on an integer point (spec §4.6 "local
// connection": on-face, on-edge and on-vertex resolution). It checks the
// three primitive tables in order of specificity: vertex corners first,
// then the three edges, then the face interior.
func ResolveTarget(m *trimesh.Mesh, s *gvertex.Store, face trimesh.FaceID, uv geom.Vec2) (int, bool) {
	h := m.FaceTriangle(face)
	for i := 0; i < 3; i++ {
		corner := m.UV(h[i])
		if corner.Equal(uv, traceEps) {
			from := vertexOf(m, h[i])
			for _, gv := range s.VertexGVertices[from] {
				if s.GVertices[gv].PositionUV.Equal(uv, traceEps) {
					return gv, true
				}
			}
		}
	}
	for i := 0; i < 3; i++ {
		e := m.Halfedges[h[i]].Edge
		seg := geom.Segment{A: m.UV(h[i]), B: m.UV(m.Halfedges[h[i]].Next)}
		if !seg.HasOn(uv) {
			continue
		}
		for _, gv := range s.EdgeGVertices[e] {
			if s.GVertices[gv].PositionUV.Equal(uv, traceEps) {
				return gv, true
			}
		}
	}
	for _, gv := range s.FaceGVertices[face] {
		if s.GVertices[gv].PositionUV.Equal(uv, traceEps) {
			return gv, true
		}
	}
	return 0, false
}

// vertexOf returns the input-mesh vertex whose corner UV is stored on
// halfedge h (the "from" vertex, per the package-wide UV convention).
func vertexOf(m *trimesh.Mesh, h trimesh.HalfedgeID) trimesh.VertexID {
	return m.Halfedges[m.Halfedges[h].Prev].ToVertex
}
