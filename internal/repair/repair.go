// Package repair implements spec §4.7: grid vertices whose local edge
// fan did not close completely during connection (internal/connector)
// get a second chance to close before the face assembler ever sees them.
//
// The repair walks the partial face cycle forward from the gap exactly
// the way internal/assemble will ultimately walk a real one (the same
// "step to the connected peer, then continue from the local edge
// immediately following the one arrived on" turn-right rule), looking
// for the other loose end of the same gap — another LEI slot that never
// got a connection either. When that search finds one, the two loose
// ends are wired directly to each other, closing the cycle exactly where
// the original extractor would have inserted a fresh matched LEI pair.
// When the forward walk exhausts its budget without finding a matching
// loose end (a genuinely unrepairable gap — e.g. a one-sided fan at the
// mesh boundary, or a walk that cycles back on itself), the slot is
// marked closed instead so the assembler steps over it rather than
// through it, and the gap is reported through diagnostics.
package repair

import (
	"github.com/XhnPLayer/autoremesher/internal/diagnostics"
	"github.com/XhnPLayer/autoremesher/internal/gvertex"
)

// maxRepairSteps bounds the forward walk used to find the other loose
// end of a gap, mirroring internal/assemble's own face-loop bound.
const maxRepairSteps = 4096

// Run attempts to repair every unresolved LEI in s and returns the
// number of gaps successfully closed by a genuine connection (as opposed
// to those left open and merely marked closed for the assembler).
func Run(s *gvertex.Store, diag *diagnostics.Log) int {
	repaired := 0
	for gv := range s.GVertices {
		for li := range s.GVertices[gv].LocalEdges {
			lei := &s.GVertices[gv].LocalEdges[li]
			if lei.ConnectedTo == gvertex.Unconnected {
				// Link never visited this slot; treat it the same as a
				// trace that found nothing.
				lei.ConnectedTo = gvertex.NoConnection
			}
			switch lei.ConnectedTo {
			case gvertex.NoConnection, gvertex.TracedIntoDegeneracy:
				if tgv, tli, ok := findLooseEnd(s, gv, li); ok {
					connect(s, gv, li, tgv, tli)
					repaired++
					continue
				}
				lei.FaceConstructed = true
			case gvertex.TracedIntoBoundary:
				lei.FaceConstructed = true
			}
		}
	}

	unresolved := 0
	for gv := range s.GVertices {
		missing := 0
		for li := range s.GVertices[gv].LocalEdges {
			lei := s.GVertices[gv].LocalEdges[li]
			if lei.FaceConstructed && lei.ConnectedTo < 0 {
				missing++
			}
		}
		s.GVertices[gv].MissingLEIs = missing
		unresolved += missing
		if missing > 0 {
			diag.Report(diagnostics.NumericalDegeneracy,
				"grid vertex %d: %d local edge(s) could not be connected or repaired; leaving a gap instead",
				gv, missing)
		}
	}
	_ = unresolved
	return repaired
}

// connect wires two loose ends to each other directly, the repair's
// equivalent of inserting one new matched LEI pair between them. Unlike a
// genuine trace, there is no crossed chart to report a UvTo/AccumulatedTF
// from, so each side's own intended UV is used as its resolution and the
// identity TF stands in for the (unknown, and for a single inserted edge
// immaterial) chart change.
func connect(s *gvertex.Store, gv, li, targetGV, targetLI int) {
	a := &s.GVertices[gv].LocalEdges[li]
	b := &s.GVertices[targetGV].LocalEdges[targetLI]
	a.ConnectedTo = targetGV
	a.OrientationIdx = targetLI
	a.UvTo = a.UvIntendedTo
	b.ConnectedTo = gv
	b.OrientationIdx = li
	b.UvTo = b.UvIntendedTo
}

// findLooseEnd walks the face cycle that already exists around the gap
// at (gv, li): it starts from the local edge immediately preceding li
// that IS connected, follows that connection to its peer, and then keeps
// turning right (peer's own OrientationIdx+1, exactly as
// internal/assemble.walkFaceCycle does) until it either returns to where
// it started (the fan is actually already closed; nothing to repair) or
// lands on another unresolved slot, which is the gap's other loose end.
func findLooseEnd(s *gvertex.Store, gv, li int) (targetGV, targetLI int, ok bool) {
	n := len(s.GVertices[gv].LocalEdges)
	if n == 0 {
		return 0, 0, false
	}

	pli := -1
	for i := 1; i <= n; i++ {
		cand := ((li-i)%n + n) % n
		if cand == li {
			break
		}
		if s.GVertices[gv].LocalEdges[cand].ConnectedTo >= 0 {
			pli = cand
			break
		}
	}
	if pli < 0 {
		return 0, 0, false
	}

	origin := gvertex.Ref{GV: gv, LEI: li}
	prev := s.GVertices[gv].LocalEdges[pli]
	start := gvertex.Ref{GV: prev.ConnectedTo, LEI: prev.OrientationIdx}
	cur := start
	for i := 0; i < maxRepairSteps; i++ {
		if cur == origin {
			// The walk looped back to the gap it started from without
			// passing through any other unresolved slot: there is no
			// second loose end to pair it with.
			return 0, 0, false
		}
		l := s.GVertices[cur.GV].LocalEdges[cur.LEI]
		if l.ConnectedTo < 0 {
			return cur.GV, cur.LEI, true
		}
		peerEdges := s.GVertices[l.ConnectedTo].LocalEdges
		if len(peerEdges) == 0 {
			return 0, 0, false
		}
		next := gvertex.Ref{GV: l.ConnectedTo, LEI: (l.OrientationIdx + 1) % len(peerEdges)}
		if next == start {
			return 0, 0, false
		}
		cur = next
	}
	return 0, 0, false
}
