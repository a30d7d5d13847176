package connector

import (
	"github.com/XhnPLayer/autoremesher/internal/geom"
	"github.com/XhnPLayer/autoremesher/internal/gvertex"
	"github.com/XhnPLayer/autoremesher/internal/transition"
	"github.com/XhnPLayer/autoremesher/internal/trimesh"
)

const dirEps = 1e-6

// Link runs Trace for every still-unconnected LEI in s and, on a
// successful connection, resolves the reverse LEI at the target grid
// vertex and wires both ends together (spec §4.6). It returns the number
// of new connections made.
func Link(m *trimesh.Mesh, tf *transition.Table, s *gvertex.Store) int {
	made := 0
	for gv := 0; gv < len(s.GVertices); gv++ {
		for li := range s.GVertices[gv].LocalEdges {
			lei := &s.GVertices[gv].LocalEdges[li]
			if lei.ConnectedTo != gvertex.Unconnected {
				continue
			}
			dir := lei.UvIntendedTo.Sub(lei.UvFrom)
			res := Trace(m, tf, lei.FhFrom, lei.UvFrom, dir)

			switch res.Kind {
			case HitBoundary:
				lei.ConnectedTo = gvertex.TracedIntoBoundary
				continue
			case Degenerate, Exhausted:
				lei.ConnectedTo = gvertex.TracedIntoDegeneracy
				continue
			}

			target, ok := ResolveTarget(m, s, res.Face, res.UV)
			if !ok {
				lei.ConnectedTo = gvertex.NoConnection
				continue
			}

			wantReverse := res.Accum.TransformVector(dir).Scale(-1)
			peerIdx, ok := findReverseLEI(s, target, wantReverse)
			if !ok {
				lei.ConnectedTo = gvertex.NoConnection
				continue
			}

			lei.ConnectedTo = target
			lei.OrientationIdx = peerIdx
			lei.AccumulatedTF = res.Accum
			lei.UvTo = res.UV

			peer := &s.GVertices[target].LocalEdges[peerIdx]
			peer.ConnectedTo = gv
			peer.OrientationIdx = li
			peer.AccumulatedTF = res.Accum.Inverse()
			peer.UvTo = lei.UvFrom

			made++
		}
	}
	return made
}

func findReverseLEI(s *gvertex.Store, gv int, want geom.Vec2) (int, bool) {
	for i, l := range s.GVertices[gv].LocalEdges {
		if l.ConnectedTo != gvertex.Unconnected {
			continue
		}
		got := l.UvIntendedTo.Sub(l.UvFrom)
		if got.Equal(want, dirEps) {
			return i, true
		}
	}
	return 0, false
}
