// Package assemble implements spec §4.8: it walks the connected local
// edge fans left by internal/connector and internal/repair into closed
// face cycles and builds the output polygon mesh, stamping each output
// halfedge with the UV coordinate its originating LEI carried and tagging
// the boundary loops of the result as desired or undesired.
package assemble

import (
	"github.com/XhnPLayer/autoremesher/internal/diagnostics"
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/gvertex"
	"github.com/XhnPLayer/autoremesher/internal/polymesh"
)

// maxFaceLoop bounds a single face cycle walk; any longer is treated as a
// logic error rather than looping forever.
const maxFaceLoop = 4096

type dirKey struct{ a, b polymesh.VertexHandle }

// Hole is one boundary loop of the assembled mesh, tagged by
// postPassBoundaryLoops (spec §4.8's post-pass): Desired holes contain at
// least one vertex whose originating grid vertex was itself flagged
// boundary, meaning the parameterized surface genuinely has an opening
// there. Every other hole is the trace of a gap internal/repair could not
// close and is tagged Desired == false.
type Hole struct {
	Halfedges []polymesh.HalfedgeHandle
	Desired   bool
}

// Assembler owns the in-progress output mesh and the bookkeeping needed
// to avoid double-building a face or a directed edge (spec §9's
// manifold-safe add_face).
type Assembler struct {
	mesh       *polymesh.Mesh
	vertexOf   map[int]polymesh.VertexHandle         // gvertex index -> output vertex
	gvOf       map[polymesh.VertexHandle]int         // inverse of vertexOf
	halfedgeOf map[dirKey]polymesh.HalfedgeHandle
	uvOf       map[polymesh.HalfedgeHandle]geom.Vec2i // per-halfedge local UV annotation
	holes      []Hole
	diag       *diagnostics.Log
}

func New(diag *diagnostics.Log) *Assembler {
	return &Assembler{
		mesh:       polymesh.New(),
		vertexOf:   make(map[int]polymesh.VertexHandle),
		gvOf:       make(map[polymesh.VertexHandle]int),
		halfedgeOf: make(map[dirKey]polymesh.HalfedgeHandle),
		uvOf:       make(map[polymesh.HalfedgeHandle]geom.Vec2i),
		diag:       diag,
	}
}

// Mesh returns the polygon mesh built so far.
func (a *Assembler) Mesh() *polymesh.Mesh { return a.mesh }

// UVAnnotation returns the per-halfedge integer UV annotation spec §6
// requires as part of the output contract, and whether h has one (every
// halfedge addFace built carries one; nothing else does).
func (a *Assembler) UVAnnotation(h polymesh.HalfedgeHandle) (geom.Vec2i, bool) {
	uv, ok := a.uvOf[h]
	return uv, ok
}

// Holes returns every boundary loop tagged by the post-pass, desired and
// undesired alike.
func (a *Assembler) Holes() []Hole { return a.holes }

// Run walks every not-yet-constructed LEI in s into a face cycle and adds
// it to the output mesh. Returns the Assembler holding the built mesh.
func Run(s *gvertex.Store, diag *diagnostics.Log) *Assembler {
	a := New(diag)
	for gv := range s.GVertices {
		for li := range s.GVertices[gv].LocalEdges {
			lei := &s.GVertices[gv].LocalEdges[li]
			if lei.FaceConstructed || lei.ConnectedTo < 0 {
				continue
			}
			cycle, uvs, ok := a.walkFaceCycle(s, gv, li)
			if !ok {
				continue
			}
			a.addFace(s, cycle, uvs)
		}
	}
	a.postPassBoundaryLoops(s)
	return a
}

// walkFaceCycle turns right around successive grid vertices starting at
// (gv, li): each step crosses to the connected peer, then continues along
// the peer's own local edge immediately following the one it arrived on
// (cyclically), which is the discrete equivalent of "turn right" at every
// corner of a manifold polygon mesh built from a doubly-linked edge
// fan. Every visited (gv, li) pair is marked FaceConstructed so no slot
// is ever walked into two different faces.
//
// In the same pass it stamps each step's per-halfedge UV annotation (spec
// §4.8 step 3): heLocalUvProp[fhi] = round(uv_to . (accumulated_face_tf)^-1),
// where accumulated_face_tf is the composition of every LEI's
// AccumulatedTF seen since the face's first corner, carrying every
// annotation into that first corner's own chart.
func (a *Assembler) walkFaceCycle(s *gvertex.Store, startGV, startLEI int) ([]gvertex.Ref, []geom.Vec2i, bool) {
	cur := gvertex.Ref{GV: startGV, LEI: startLEI}
	var cycle []gvertex.Ref
	var uvs []geom.Vec2i
	faceTF := geom.Identity
	for i := 0; i < maxFaceLoop; i++ {
		lei := &s.GVertices[cur.GV].LocalEdges[cur.LEI]
		if lei.FaceConstructed && i > 0 {
			a.diag.Report(diagnostics.LogicError, "face walk revisited an already-built local edge at grid vertex %d", cur.GV)
			return nil, nil, false
		}
		if lei.ConnectedTo < 0 {
			a.diag.Report(diagnostics.LogicError, "face walk stepped into an unconnected local edge at grid vertex %d", cur.GV)
			return nil, nil, false
		}
		lei.FaceConstructed = true
		cycle = append(cycle, cur)
		uvs = append(uvs, geom.RoundVec2(faceTF.Inverse().TransformPoint(lei.UvTo)))
		faceTF = lei.AccumulatedTF.Compose(faceTF)

		nextGV := lei.ConnectedTo
		nextLEI := (lei.OrientationIdx + 1) % len(s.GVertices[nextGV].LocalEdges)
		next := gvertex.Ref{GV: nextGV, LEI: nextLEI}
		if next == cycle[0] {
			return cycle, uvs, true
		}
		cur = next
	}
	a.diag.Report(diagnostics.LogicError, "face walk exceeded %d steps starting at grid vertex %d", maxFaceLoop, startGV)
	return nil, nil, false
}

// addFace materializes one face cycle into the output mesh, reusing
// output vertices and, where a neighboring face already built its shared
// edge, the existing opposite halfedge.
func (a *Assembler) addFace(s *gvertex.Store, cycle []gvertex.Ref, uvs []geom.Vec2i) {
	if len(cycle) < 3 {
		return
	}
	verts := make([]polymesh.VertexHandle, len(cycle))
	for i, ref := range cycle {
		verts[i] = a.outputVertex(s, ref.GV)
	}

	for i := range verts {
		if verts[i] == verts[(i+1)%len(verts)] {
			return
		}
	}

	halfedges := make([]polymesh.HalfedgeHandle, len(verts))
	for i := range verts {
		from := verts[i]
		to := verts[(i+1)%len(verts)]
		if h, taken := a.halfedgeOf[dirKey{from, to}]; taken && !a.mesh.IsBoundary(h) {
			a.diag.Report(diagnostics.ManifoldViolation,
				"skipping face at grid vertex %d: directed edge already used by another face", cycle[0].GV)
			return
		}
	}

	f := a.mesh.NewFace()
	for i := range verts {
		from := verts[i]
		to := verts[(i+1)%len(verts)]
		key := dirKey{from, to}
		h, ok := a.halfedgeOf[key]
		if !ok {
			var in polymesh.HalfedgeHandle
			h, in = a.mesh.NewEdge(from, to)
			a.halfedgeOf[key] = h
			a.halfedgeOf[dirKey{to, from}] = in
		}
		a.mesh.SetFaceHandle(h, f)
		halfedges[i] = h
		a.uvOf[h] = uvs[i]
		s.GVertices[cycle[i].GV].LocalEdges[cycle[i].LEI].HalfedgeIndex = int(h)
	}
	for i := range halfedges {
		a.mesh.SetNextHalfedgeHandle(halfedges[i], halfedges[(i+1)%len(halfedges)])
	}
	a.mesh.SetFaceHalfedgeHandle(f, halfedges[0])

	for i := range cycle {
		a.mesh.SetHalfedgeHandle(verts[i], halfedges[i])
	}
	for _, v := range verts {
		a.mesh.AdjustOutgoingHalfedge(v)
	}
}

func (a *Assembler) outputVertex(s *gvertex.Store, gv int) polymesh.VertexHandle {
	if v, ok := a.vertexOf[gv]; ok {
		return v
	}
	v := a.mesh.NewVertex(s.GVertices[gv].Position3D)
	a.vertexOf[gv] = v
	a.gvOf[v] = gv
	return v
}

// postPassBoundaryLoops implements spec §4.8's closing pass in full: it
// walks and tags every boundary loop of the assembled mesh — desired
// (touches a grid vertex flagged boundary) versus undesired (a pure gap
// artifact) — before deleting the isolated output vertices a gap in the
// gvertex fan can leave behind, then runs the final garbage collection.
// Hole tagging must run first: it needs vertexOf/gvOf, which garbage
// collection's handle remapping would invalidate.
func (a *Assembler) postPassBoundaryLoops(s *gvertex.Store) {
	visited := make(map[polymesh.HalfedgeHandle]bool)
	for h := 0; h < a.mesh.NumHalfedges(); h++ {
		he := polymesh.HalfedgeHandle(h)
		if !a.mesh.IsBoundary(he) || visited[he] {
			continue
		}
		loop := a.mesh.BoundaryLoopFrom(he)
		desired := false
		for _, lh := range loop {
			visited[lh] = true
			if gv, ok := a.gvOf[a.mesh.ToVertexHandle(lh)]; ok && s.GVertices[gv].IsBoundary {
				desired = true
			}
		}
		a.holes = append(a.holes, Hole{Halfedges: loop, Desired: desired})
		if !desired {
			a.diag.Report(diagnostics.ManifoldViolation,
				"undesired hole of %d halfedge(s) found in the assembled mesh (no incident vertex was flagged boundary)",
				len(loop))
		}
	}

	for gv, v := range a.vertexOf {
		if a.mesh.HalfedgeHandleOf(v) == polymesh.InvalidHandle {
			a.diag.Report(diagnostics.LogicError, "grid vertex %d produced an isolated output vertex; deleting it", gv)
			a.mesh.DeleteVertex(v)
		}
	}
	a.mesh.GarbageCollection()
}
