package shapes

import "image/color"

// Point is a vertex handed to a Canvas.
type Point struct{ X, Y float64 }

// Canvas is a drawing surface. Implementations live with the output format
// (raster, PDF); tests use a recorder.
type Canvas interface {
	Push()
	Pop()
	// RotateAbout rotates subsequent drawing clockwise by degrees around
	// (x, y) until the matching Pop.
	RotateAbout(degrees, x, y float64)
	FillPolygon(pts []Point, c color.Color)
	StrokePolygon(pts []Point, c color.Color, width float64)
	FillEllipse(cx, cy, rx, ry float64, c color.Color)
	StrokeEllipse(cx, cy, rx, ry float64, c color.Color, width float64)
	StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64)
}

// Paint draws s on c, rotated about its centre, filling before stroking.
func Paint(c Canvas, s Shape) {
	b := s.Common()
	c.Push()
	defer c.Pop()
	if b.Rotation%360 != 0 {
		cx, cy := s.Center()
		c.RotateAbout(float64(b.Rotation), cx, cy)
	}
	width := strokeWidth(b.BorderWidth)

	switch v := s.(type) {
	case *Line:
		if v.Color() != nil {
			c.StrokeLine(v.X, v.Y, v.X2, v.Y2, v.Color(), width)
		}
	case *Rectangle:
		paintPolygon(c, b, width, []Point{
			{v.X, v.Y}, {v.X + v.Width, v.Y}, {v.X + v.Width, v.Y + v.Height}, {v.X, v.Y + v.Height},
		})
	case *Diamond:
		vs := v.Vertices()
		pts := make([]Point, len(vs))
		for i, p := range vs {
			pts[i] = Point{p[0], p[1]}
		}
		paintPolygon(c, b, width, pts)
	case *Triangle:
		paintPolygon(c, b, width, []Point{{v.X, v.Y}, {v.X2, v.Y2}, {v.X3, v.Y3}})
	case *Ellipse:
		cx, cy := v.Center()
		rx, ry := v.Width/2, v.Height/2
		if b.FillColor != nil {
			c.FillEllipse(cx, cy, rx, ry, b.FillColor)
		}
		if b.BorderColor != nil {
			c.StrokeEllipse(cx, cy, rx, ry, b.BorderColor, width)
		}
	}
}

func paintPolygon(c Canvas, b *Base, width float64, pts []Point) {
	if b.FillColor != nil {
		c.FillPolygon(pts, b.FillColor)
	}
	if b.BorderColor != nil {
		c.StrokePolygon(pts, b.BorderColor, width)
	}
}

// strokeWidth paints a non-positive border width as a hairline.
func strokeWidth(w int) float64 {
	if w <= 0 {
		return 1
	}
	return float64(w)
}
