package trimesh

// FaceColor is the debug-visualization tag the teacher's createImage/
// drawFaces machinery stores per face (white = produced a gvertex,
// red = degenerate/zero-orientation, skipped).
type FaceColor int

const (
	ColorUnset FaceColor = iota
	ColorRegular
	ColorDegenerate
)

// VertexStatus flags a vertex as singular (non-identity transition) or
// non-manifold (adjacent to more than one boundary), set during
// consistent truncation and read back by diagnostics/viz.
type VertexStatus struct {
	Singular    bool
	NonManifold bool
}

// properties holds the scoped face-color/vertex-status attachments spec
// §5 calls out: "the extractor... temporarily attaches face-color and
// vertex-status properties; these must be released on all exit paths."
type properties struct {
	faceColors    []FaceColor
	vertexStatus  []VertexStatus
}

// Borrow attaches scratch per-face and per-vertex properties to the mesh
// for the duration of one Extract call and returns a release function.
// Callers must `defer release()` immediately, mirroring OpenMesh's
// request/release property pattern the original extractor relies on.
func (m *Mesh) Borrow() (*Properties, func()) {
	p := &properties{
		faceColors:   make([]FaceColor, len(m.Faces)),
		vertexStatus: make([]VertexStatus, len(m.Vertices)),
	}
	handle := &Properties{m: m, p: p}
	return handle, func() {
		handle.p = nil
	}
}

// Properties is the live handle returned by Borrow; using it after the
// release function has run panics, matching the spirit of a released
// OpenMesh property handle being invalid.
type Properties struct {
	m *Mesh
	p *properties
}

func (h *Properties) SetFaceColor(f FaceID, c FaceColor) {
	h.mustLive()
	h.p.faceColors[f] = c
}

func (h *Properties) FaceColor(f FaceID) FaceColor {
	h.mustLive()
	return h.p.faceColors[f]
}

func (h *Properties) SetVertexStatus(v VertexID, s VertexStatus) {
	h.mustLive()
	h.p.vertexStatus[v] = s
}

func (h *Properties) VertexStatus(v VertexID) VertexStatus {
	h.mustLive()
	return h.p.vertexStatus[v]
}

func (h *Properties) mustLive() {
	if h.p == nil {
		panic("trimesh: use of Properties after release")
	}
}
