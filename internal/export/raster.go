// Package export draws shapes onto raster and PDF surfaces.
package export

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"ShapeBoard/internal/shapes"
)

// Raster is a shapes.Canvas backed by a gg context.
type Raster struct {
	dc *gg.Context
}

// NewRaster returns a w x h raster cleared to white.
func NewRaster(w, h int) *Raster {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	return &Raster{dc: dc}
}

// Scale maps canvas units to pixels for everything drawn afterwards.
func (r *Raster) Scale(factor float64) { r.dc.Scale(factor, factor) }

func (r *Raster) Push() { r.dc.Push() }
func (r *Raster) Pop()  { r.dc.Pop() }

func (r *Raster) RotateAbout(degrees, x, y float64) {
	r.dc.RotateAbout(gg.Radians(degrees), x, y)
}

func (r *Raster) path(pts []shapes.Point) {
	r.dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			r.dc.MoveTo(p.X, p.Y)
			continue
		}
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
}

func (r *Raster) FillPolygon(pts []shapes.Point, c color.Color) {
	r.path(pts)
	r.dc.SetColor(c)
	r.dc.Fill()
}

func (r *Raster) StrokePolygon(pts []shapes.Point, c color.Color, width float64) {
	r.path(pts)
	r.stroke(c, width)
}

func (r *Raster) FillEllipse(cx, cy, rx, ry float64, c color.Color) {
	r.dc.DrawEllipse(cx, cy, rx, ry)
	r.dc.SetColor(c)
	r.dc.Fill()
}

func (r *Raster) StrokeEllipse(cx, cy, rx, ry float64, c color.Color, width float64) {
	r.dc.DrawEllipse(cx, cy, rx, ry)
	r.stroke(c, width)
}

func (r *Raster) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	r.dc.DrawLine(x1, y1, x2, y2)
	r.stroke(c, width)
}

func (r *Raster) stroke(c color.Color, width float64) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.Stroke()
}

// Outline draws a dashed box around b, used to mark the selection.
func (r *Raster) Outline(b shapes.Rect, c color.Color) {
	const pad = 3
	r.dc.Push()
	defer r.dc.Pop()
	r.dc.SetDash(4, 3)
	r.dc.DrawRectangle(b.MinX-pad, b.MinY-pad, b.Width()+2*pad, b.Height()+2*pad)
	r.stroke(c, 1)
}

// Draw paints each shape in order.
func (r *Raster) Draw(list []shapes.Shape) {
	for _, s := range list {
		shapes.Paint(r, s)
	}
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the raster as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// RenderImage paints list onto a fresh white w x h image.
func RenderImage(list []shapes.Shape, w, h int) image.Image {
	r := NewRaster(w, h)
	r.Draw(list)
	return r.Image()
}

// WritePNG renders list at w x h and encodes it to out.
func WritePNG(out io.Writer, list []shapes.Shape, w, h int) error {
	r := NewRaster(w, h)
	r.Draw(list)
	return r.EncodePNG(out)
}

// SavePNG renders list at w x h and writes it to path.
func SavePNG(path string, list []shapes.Shape, w, h int) error {
	r := NewRaster(w, h)
	r.Draw(list)
	return r.dc.SavePNG(path)
}
