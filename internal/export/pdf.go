package export

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"ShapeBoard/internal/shapes"
)

// PDF is a shapes.Canvas that writes a single page. One canvas unit is
// one point.
type PDF struct {
	p *gofpdf.Fpdf
}

// NewPDF starts a document with one w x h page.
func NewPDF(w, h float64) *PDF {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	return &PDF{p: p}
}

func (d *PDF) Push() { d.p.TransformBegin() }
func (d *PDF) Pop()  { d.p.TransformEnd() }

// RotateAbout rotates clockwise on the page; gofpdf angles run
// counter-clockwise.
func (d *PDF) RotateAbout(degrees, x, y float64) {
	d.p.TransformRotate(-degrees, x, y)
}

func toPoints(pts []shapes.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	return out
}

func rgb(c color.Color) (r, g, b int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}

func (d *PDF) setFill(c color.Color) { d.p.SetFillColor(rgb(c)) }

func (d *PDF) setStroke(c color.Color, width float64) {
	d.p.SetDrawColor(rgb(c))
	d.p.SetLineWidth(width)
}

func (d *PDF) FillPolygon(pts []shapes.Point, c color.Color) {
	d.setFill(c)
	d.p.Polygon(toPoints(pts), "F")
}

func (d *PDF) StrokePolygon(pts []shapes.Point, c color.Color, width float64) {
	d.setStroke(c, width)
	d.p.Polygon(toPoints(pts), "D")
}

func (d *PDF) FillEllipse(cx, cy, rx, ry float64, c color.Color) {
	d.setFill(c)
	d.p.Ellipse(cx, cy, rx, ry, 0, "F")
}

func (d *PDF) StrokeEllipse(cx, cy, rx, ry float64, c color.Color, width float64) {
	d.setStroke(c, width)
	d.p.Ellipse(cx, cy, rx, ry, 0, "D")
}

func (d *PDF) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	d.setStroke(c, width)
	d.p.Line(x1, y1, x2, y2)
}

// Draw paints each shape in order.
func (d *PDF) Draw(list []shapes.Shape) {
	for _, s := range list {
		shapes.Paint(d, s)
	}
}

// Output writes the finished document to w.
func (d *PDF) Output(w io.Writer) error {
	if err := d.p.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return d.p.Output(w)
}

// WritePDF renders list onto a w x h page and writes the document to out.
func WritePDF(out io.Writer, list []shapes.Shape, w, h int) error {
	d := NewPDF(float64(w), float64(h))
	d.Draw(list)
	return d.Output(out)
}

// ExportPDF is WritePDF to a file at path.
func ExportPDF(path string, list []shapes.Shape, w, h int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WritePDF(f, list, w, h)
}
