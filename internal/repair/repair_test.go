package repair

import (
	"testing"

	"github.com/XhnPLayer/autoremesher/internal/assemble"
	"github.com/XhnPLayer/autoremesher/internal/diagnostics"
	"github.com/XhnPLayer/autoremesher/internal/gvertex"
)

func TestRunClosesGenuinelyUnresolvableSlot(t *testing.T) {
	s := &gvertex.Store{
		GVertices: []gvertex.GridVertex{
			{LocalEdges: []gvertex.LEI{
				{ConnectedTo: 1},
				{ConnectedTo: gvertex.NoConnection},
			}},
			{LocalEdges: []gvertex.LEI{
				{ConnectedTo: 0},
			}},
		},
	}
	diag := diagnostics.New()

	repaired := Run(s, diag)
	if repaired != 0 {
		t.Fatalf("expected 0 genuine repairs, got %d", repaired)
	}
	if !s.GVertices[0].LocalEdges[1].FaceConstructed {
		t.Errorf("expected unresolved slot to be marked FaceConstructed")
	}
	if s.GVertices[0].LocalEdges[1].ConnectedTo >= 0 {
		t.Errorf("expected slot to remain unconnected, got ConnectedTo=%d", s.GVertices[0].LocalEdges[1].ConnectedTo)
	}
	if diag.Count(diagnostics.NumericalDegeneracy) != 1 {
		t.Errorf("expected one diagnostic entry, got %d", diag.Count(diagnostics.NumericalDegeneracy))
	}
}

// TestRunRepairsGapByInsertingMatchedLEIPair exercises the cycle-walk
// repair itself: grid vertex 0 has a dangling slot, and walking forward
// from its last good connection (through vertex 1, into vertex 2) finds
// vertex 2's own dangling slot as the other loose end of the same gap.
// Run should wire the two slots directly to each other, exactly as the
// original extractor would have inserted a fresh matched LEI pair there.
func TestRunRepairsGapByInsertingMatchedLEIPair(t *testing.T) {
	s := &gvertex.Store{
		GVertices: []gvertex.GridVertex{
			{LocalEdges: []gvertex.LEI{
				{ConnectedTo: 1, OrientationIdx: 0},
				{ConnectedTo: gvertex.NoConnection},
			}},
			{LocalEdges: []gvertex.LEI{
				{ConnectedTo: 2, OrientationIdx: 0},
			}},
			{LocalEdges: []gvertex.LEI{
				{ConnectedTo: 1, OrientationIdx: 0},
				{ConnectedTo: gvertex.NoConnection},
			}},
		},
	}
	diag := diagnostics.New()

	repaired := Run(s, diag)
	if repaired != 1 {
		t.Fatalf("expected 1 genuine repair, got %d", repaired)
	}

	a := s.GVertices[0].LocalEdges[1]
	b := s.GVertices[2].LocalEdges[1]
	if a.ConnectedTo != 2 || a.OrientationIdx != 1 {
		t.Errorf("grid vertex 0's dangling slot not wired to (2,1): got (%d,%d)", a.ConnectedTo, a.OrientationIdx)
	}
	if b.ConnectedTo != 0 || b.OrientationIdx != 1 {
		t.Errorf("grid vertex 2's dangling slot not wired back to (0,1): got (%d,%d)", b.ConnectedTo, b.OrientationIdx)
	}
	if diag.Count(diagnostics.NumericalDegeneracy) != 0 {
		t.Errorf("expected no leftover gaps reported, got %d", diag.Count(diagnostics.NumericalDegeneracy))
	}
}

// TestRunRepairedCycleAssemblesIntoPentagon follows the repaired gap all
// the way through internal/assemble, matching the external-valence-5
// scenario where the repair inserts one additional LEI pair closing the
// extra cycle into a pentagon face instead of leaving a gap.
func TestRunRepairedCycleAssemblesIntoPentagon(t *testing.T) {
	s := &gvertex.Store{
		GVertices: []gvertex.GridVertex{
			{LocalEdges: []gvertex.LEI{
				{ConnectedTo: 1, OrientationIdx: 0},
				{ConnectedTo: gvertex.NoConnection},
			}},
			{LocalEdges: []gvertex.LEI{{ConnectedTo: 2, OrientationIdx: 0}}},
			{LocalEdges: []gvertex.LEI{{ConnectedTo: 3, OrientationIdx: 0}}},
			{LocalEdges: []gvertex.LEI{{ConnectedTo: 4, OrientationIdx: 0}}},
			{LocalEdges: []gvertex.LEI{
				{ConnectedTo: 3, OrientationIdx: 0},
				{ConnectedTo: gvertex.NoConnection},
			}},
		},
	}
	diag := diagnostics.New()

	repaired := Run(s, diag)
	if repaired != 1 {
		t.Fatalf("expected 1 genuine repair, got %d", repaired)
	}
	if diag.Count(diagnostics.NumericalDegeneracy) != 0 {
		t.Errorf("expected no leftover gaps reported, got %d", diag.Count(diagnostics.NumericalDegeneracy))
	}

	for gv := range s.GVertices {
		for li := range s.GVertices[gv].LocalEdges {
			if s.GVertices[gv].LocalEdges[li].ConnectedTo < 0 {
				t.Fatalf("grid vertex %d local edge %d still unconnected after repair", gv, li)
			}
		}
	}

	asm := assemble.Run(s, diag)
	mesh := asm.Mesh()
	if mesh.NumFaces() != 1 {
		t.Fatalf("expected the repaired fan to assemble into exactly 1 face, got %d", mesh.NumFaces())
	}
	if got := len(mesh.FaceVertices(0)); got != 5 {
		t.Fatalf("expected a pentagon (5 vertices), got %d", got)
	}
}
