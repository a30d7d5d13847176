// Package gvertex implements spec §4.3 (grid vertex generation) and §4.4
// (local edge construction): it enumerates integer lattice points of the
// parameterization as OnFace/OnEdge/OnVertex grid vertices and installs
// their outgoing local edge info (LEI) slots.
//
// Cross-references between gvertices and LEIs are logical (gvertex index,
// lei index) pairs, never pointers (spec §9): the Store's GVertices slice
// is append-only and stable, but a gvertex's own LocalEdges slice grows
// through Store.AppendLEI, and any append can reallocate it and invalidate
// a pointer or slice header cached before it.
package gvertex

import (
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

// Kind classifies where a grid vertex sits on the input mesh.
type Kind int

const (
	OnFace Kind = iota
	OnEdge
	OnVertex
)

// Connection sentinels for LEI.ConnectedTo. Any value >= 0 is a real
// gvertex index (spec §3: "a sentinel value >= 'connected threshold'
// means a real peer index").
const (
	Unconnected         = -1
	NoConnection        = -2
	TracedIntoBoundary  = -3
	TracedIntoDegeneracy = -4
)

// Direction indexes the four cartesian UV axes, CCW: +u, +v, -u, -v.
type Direction int

const (
	DirPlusU Direction = iota
	DirPlusV
	DirMinusU
	DirMinusV
)

var axisVectors = [4]geom.Vec2{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

// Vector returns the unit UV offset for a direction.
func (d Direction) Vector() geom.Vec2 { return axisVectors[d] }

// Opposite returns the direction pointing the opposite way.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// LEI is one outgoing edge slot at a grid vertex (spec §3
// "LocalEdgeInfo").
type LEI struct {
	FhFrom          trimesh.FaceID
	UvFrom          geom.Vec2
	UvIntendedTo    geom.Vec2
	UvTo            geom.Vec2
	ConnectedTo     int // gvertex index, or one of the sentinels above
	OrientationIdx  int // index within the peer's LocalEdges
	AccumulatedTF   geom.TF
	HalfedgeIndex   int // -1 until face assembly assigns an output halfedge
	FaceConstructed bool
}

func newLEI(fh trimesh.FaceID, from, intendedTo geom.Vec2) LEI {
	return LEI{
		FhFrom:        fh,
		UvFrom:        from,
		UvIntendedTo:  intendedTo,
		ConnectedTo:   Unconnected,
		HalfedgeIndex: -1,
	}
}

// GridVertex is one output-mesh vertex site (spec §3 "GridVertex").
type GridVertex struct {
	Kind        Kind
	AnchorHe    trimesh.HalfedgeID
	PositionUV  geom.Vec2
	Position3D  geom.Vec3
	IsBoundary  bool
	MissingLEIs int
	LocalEdges  []LEI
}

// Ref is a logical (gvertex, lei) index pair, per spec §9.
type Ref struct {
	GV  int
	LEI int
}

// Store owns the append-only gvertex vector and the per-primitive index
// tables used for fast local connection lookup (spec §3 "Primitive
// tables").
type Store struct {
	GVertices       []GridVertex
	FaceGVertices   [][]int // indexed by trimesh.FaceID
	EdgeGVertices   [][]int // indexed by trimesh.EdgeID
	VertexGVertices [][]int // indexed by trimesh.VertexID
}

func newStore(m *trimesh.Mesh) *Store {
	return &Store{
		FaceGVertices:   make([][]int, m.NumFaces()),
		EdgeGVertices:   make([][]int, m.NumEdges()),
		VertexGVertices: make([][]int, m.NumVertices()),
	}
}

func (s *Store) append(gv GridVertex) int {
	idx := len(s.GVertices)
	s.GVertices = append(s.GVertices, gv)
	return idx
}

// AppendLEI adds a new LEI to gvertex gv and returns its index within
// that gvertex's LocalEdges.
func (s *Store) AppendLEI(gv int, l LEI) int {
	s.GVertices[gv].LocalEdges = append(s.GVertices[gv].LocalEdges, l)
	return len(s.GVertices[gv].LocalEdges) - 1
}
