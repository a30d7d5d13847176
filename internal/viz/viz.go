// Package viz dumps a debug PNG of the assembled quad mesh and the UV
// grid vertices it was built from, grounded on the teacher's
// createImage/drawFaces (Voronoi/voronoi.go): an image.RGBA canvas, a
// draw2dimg.GraphicContext for strokes, scaled and y-flipped the same
// way, written out with image/png.
package viz

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/llgcode/draw2d/draw2dimg"

	"github.com/XhnPLayer/autoremesher/internal/gvertex"
	"github.com/XhnPLayer/autoremesher/internal/polymesh"
)

const (
	canvasSize = 1000
	scale      = 20.0
)

var (
	edgeColor = color.RGBA{0, 0, 255, 255}
	gvColor   = color.RGBA{255, 0, 0, 255}
)

// DumpMesh writes the assembled output mesh's wireframe (projected onto
// its first two object-space axes) to filename.
func DumpMesh(m *polymesh.Mesh, filename string) error {
	img := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetLineWidth(2)
	gc.SetStrokeColor(edgeColor)

	for f := 0; f < m.NumFaces(); f++ {
		verts := m.FaceVertices(polymesh.FaceHandle(f))
		for i := range verts {
			a := m.VertexPos(verts[i])
			b := m.VertexPos(verts[(i+1)%len(verts)])
			gc.MoveTo(a.X*scale, canvasSize-a.Y*scale)
			gc.LineTo(b.X*scale, canvasSize-b.Y*scale)
		}
	}
	gc.FillStroke()
	gc.Close()

	return encode(img, filename)
}

// DumpGridVertices writes the UV positions of every grid vertex the
// generator produced (internal/gvertex), one small cross per vertex, all
// in the same color regardless of kind.
func DumpGridVertices(s *gvertex.Store, filename string) error {
	img := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillColor(gvColor)

	for _, gv := range s.GVertices {
		cx := gv.PositionUV.X*scale + canvasSize/2
		cy := canvasSize/2 - gv.PositionUV.Y*scale
		gc.MoveTo(cx-2, cy)
		gc.LineTo(cx+2, cy)
		gc.MoveTo(cx, cy-2)
		gc.LineTo(cx, cy+2)
	}
	gc.SetStrokeColor(gvColor)
	gc.SetLineWidth(1)
	gc.Stroke()
	gc.Close()

	return encode(img, filename)
}

func encode(img *image.RGBA, filename string) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
