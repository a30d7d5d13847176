// Package extract orchestrates the full pipeline spec §2 describes:
// decimate, extract transition functions, truncate consistently,
// decimate again, generate grid vertices, connect them, repair
// incomplete fans, and assemble the output quad mesh. This mirrors the
// exact step order of the original extractor's top-level entry point.
package extract

import (
	"github.com/XhnPLayer/autoremesher/internal/assemble"
	"github.com/XhnPLayer/autoremesher/internal/connector"
	"github.com/XhnPLayer/autoremesher/internal/decimate"
	"github.com/XhnPLayer/autoremesher/internal/diagnostics"
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/gvertex"
	"github.com/XhnPLayer/autoremesher/internal/polymesh"
	"github.com/XhnPLayer/autoremesher/internal/repair"
	"github.com/XhnPLayer/autoremesher/internal/transition"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
	"github.com/XhnPLayer/autoremesher/internal/truncate"
)

// ExtractOptions configures one Extract call (spec SPEC_FULL.md §1
// "ambient config": a plain struct rather than a file/env loader, since
// the core algorithm takes no deployment-time configuration).
type ExtractOptions struct {
	// ExternalValences overrides the decimator's external valence
	// hints per vertex; nil means "no constraint" (spec §6).
	ExternalValences []uint
	// Decimator is the collaborator run before and after truncation. If
	// nil, decimate.ShortEdgeCollapser{} is used.
	Decimator decimate.Decimator
}

// Stats summarizes one Extract call for logging/CLI reporting
// (SPEC_FULL.md §3's supplemented Extractor.Stats()).
type Stats struct {
	InputVertices    int
	InputFaces       int
	GridVertices     int
	ConnectionsMade  int
	RepairedGaps     int
	OutputVertices   int
	OutputFaces      int
	SingularVertices int
	Diagnostics      []diagnostics.Entry
}

// Extractor runs the pipeline over one input mesh.
type Extractor struct {
	opts ExtractOptions
	diag *diagnostics.Log
	last Stats
	asm  *assemble.Assembler
}

func New(opts ExtractOptions) *Extractor {
	if opts.Decimator == nil {
		opts.Decimator = decimate.ShortEdgeCollapser{}
	}
	return &Extractor{opts: opts, diag: diagnostics.New()}
}

// Stats reports statistics for the most recently completed Extract call.
func (e *Extractor) Stats() Stats { return e.last }

// UVAnnotation returns the per-halfedge integer UV coordinate spec §6
// requires as part of the output contract for a halfedge of the mesh
// returned by the most recently completed Extract call.
func (e *Extractor) UVAnnotation(h polymesh.HalfedgeHandle) (geom.Vec2i, bool) {
	if e.asm == nil {
		return geom.Vec2i{}, false
	}
	return e.asm.UVAnnotation(h)
}

// Holes returns the boundary loops spec §4.8's post-pass tagged on the
// most recently completed Extract call's output mesh, desired and
// undesired alike.
func (e *Extractor) Holes() []assemble.Hole {
	if e.asm == nil {
		return nil
	}
	return e.asm.Holes()
}

// Extract runs the full pipeline and returns the assembled output mesh.
func (e *Extractor) Extract(m *trimesh.Mesh) *polymesh.Mesh {
	e.opts.Decimator.Decimate(m, e.opts.ExternalValences)

	tf := transition.Extract(m)

	props, release := m.Borrow()
	defer release()
	truncate.Run(m, tf, e.diag, props)
	singular := 0
	for v := 0; v < m.NumVertices(); v++ {
		if props.VertexStatus(trimesh.VertexID(v)).Singular {
			singular++
		}
	}

	cache := decimate.CachePoints(m)
	changed := e.opts.Decimator.Decimate(m, e.opts.ExternalValences)

	emb := buildEmbedding(m, changed, cache)

	store := gvertex.Generate(m, tf, emb)
	made := connector.Link(m, tf, store)
	closed := repair.Run(store, e.diag)

	asm := assemble.Run(store, e.diag)
	e.asm = asm
	out := asm.Mesh()

	e.last = Stats{
		InputVertices:    m.NumVertices(),
		InputFaces:       m.NumFaces(),
		GridVertices:     len(store.GVertices),
		ConnectionsMade:  made,
		RepairedGaps:     closed,
		OutputVertices:   out.NumVertices(),
		OutputFaces:      out.NumFaces(),
		SingularVertices: singular,
		Diagnostics:      e.diag.Entries(),
	}
	return out
}

// buildEmbedding picks the 2D->3D mapping per spec §6: if the second
// decimation pass changed the mesh, grid vertices are embedded from the
// pre-decimation point cache rather than the (now stale relative to UV)
// live vertex positions.
func buildEmbedding(m *trimesh.Mesh, usedCache bool, cache decimate.PointCache) gvertex.Embedding {
	pointOf := func(h trimesh.HalfedgeID) geom.Vec3 {
		if usedCache {
			return cache.At(h)
		}
		return m.Vertices[m.Halfedges[h].ToVertex].Pos
	}

	return gvertex.Embedding{
		TrianglePoint: func(f trimesh.FaceID, uv geom.Vec2) geom.Vec3 {
			h := m.FaceTriangle(f)
			tri := geom.Triangle{A: m.UV(h[0]), B: m.UV(h[1]), C: m.UV(h[2])}
			mapping := geom.TriangleMapping(tri, pointOf(m.Halfedges[h[0]].Prev), pointOf(h[0]), pointOf(h[1]))
			return mapping.Apply(uv.X, uv.Y)
		},
		EdgePoint: func(e trimesh.EdgeID, uv geom.Vec2) geom.Vec3 {
			h0 := m.Edges[e].Halfedges[0]
			seg := geom.Segment{A: m.UV(h0), B: m.UV(m.Halfedges[h0].Next)}
			mapping := geom.SegmentMapping(seg, pointOf(m.Halfedges[h0].Prev), pointOf(h0))
			return mapping.Apply(uv.X, uv.Y)
		},
		VertexPoint: func(v trimesh.VertexID) geom.Vec3 {
			return m.Vertices[v].Pos
		},
	}
}
