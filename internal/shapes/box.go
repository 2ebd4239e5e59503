package shapes

import "image/color"

// Rectangle, Ellipse and Diamond are all laid out in the box
// (X, Y, Width, Height). Width and Height may go negative through Resize.

type Rectangle struct {
	Base
	Width, Height float64
}

type Ellipse struct {
	Base
	Width, Height float64
}

// Diamond is the rhombus inscribed in its box. Hit testing uses the
// whole box.
type Diamond struct {
	Base
	Width, Height float64
}

func newBase(x, y float64, border color.Color, width int, fill color.Color) Base {
	return Base{X: x, Y: y, BorderColor: border, FillColor: fill, BorderWidth: width}
}

func NewRectangle(x, y, w, h float64, border color.Color, borderWidth int, fill color.Color) *Rectangle {
	return &Rectangle{Base: newBase(x, y, border, borderWidth, fill), Width: w, Height: h}
}

func NewEllipse(x, y, w, h float64, border color.Color, borderWidth int, fill color.Color) *Ellipse {
	return &Ellipse{Base: newBase(x, y, border, borderWidth, fill), Width: w, Height: h}
}

func NewDiamond(x, y, w, h float64, border color.Color, borderWidth int, fill color.Color) *Diamond {
	return &Diamond{Base: newBase(x, y, border, borderWidth, fill), Width: w, Height: h}
}

func boxContains(b *Base, w, h, px, py float64) bool {
	return px >= b.X && px <= b.X+w && py >= b.Y && py <= b.Y+h
}

func boxBounds(b *Base, w, h float64) Rect {
	return boundsOf([]float64{b.X, b.X + w}, []float64{b.Y, b.Y + h})
}

func (r *Rectangle) Kind() Kind { return KindRectangle }
func (r *Rectangle) sealed()    {}

func (r *Rectangle) Move(dx, dy float64) { r.X += dx; r.Y += dy }

// Resize multiplies both dimensions. Zero and negative factors are
// accepted as-is.
func (r *Rectangle) Resize(factor float64) {
	r.Width *= factor
	r.Height *= factor
}

func (r *Rectangle) Contains(px, py float64) bool {
	return boxContains(&r.Base, r.Width, r.Height, px, py)
}

func (r *Rectangle) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func (r *Rectangle) Bounds() Rect { return boxBounds(&r.Base, r.Width, r.Height) }

func (e *Ellipse) Kind() Kind { return KindEllipse }
func (e *Ellipse) sealed()    {}

func (e *Ellipse) Move(dx, dy float64) { e.X += dx; e.Y += dy }

func (e *Ellipse) Resize(factor float64) {
	e.Width *= factor
	e.Height *= factor
}

// Contains applies the normalised distance test against the inscribed
// ellipse. An ellipse with no width or no height contains no point.
func (e *Ellipse) Contains(px, py float64) bool {
	rx, ry := e.Width/2, e.Height/2
	if rx <= 0 || ry <= 0 {
		return false
	}
	cx, cy := e.X+rx, e.Y+ry
	dx := (px - cx) / rx
	dy := (py - cy) / ry
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) Center() (float64, float64) {
	return e.X + e.Width/2, e.Y + e.Height/2
}

func (e *Ellipse) Bounds() Rect { return boxBounds(&e.Base, e.Width, e.Height) }

func (d *Diamond) Kind() Kind { return KindDiamond }
func (d *Diamond) sealed()    {}

func (d *Diamond) Move(dx, dy float64) { d.X += dx; d.Y += dy }

func (d *Diamond) Resize(factor float64) {
	d.Width *= factor
	d.Height *= factor
}

func (d *Diamond) Contains(px, py float64) bool {
	return boxContains(&d.Base, d.Width, d.Height, px, py)
}

func (d *Diamond) Center() (float64, float64) {
	return d.X + d.Width/2, d.Y + d.Height/2
}

func (d *Diamond) Bounds() Rect { return boxBounds(&d.Base, d.Width, d.Height) }

// Vertices returns the four corners top, right, bottom, left.
func (d *Diamond) Vertices() [4][2]float64 {
	cx, cy := d.Center()
	return [4][2]float64{
		{cx, d.Y},
		{d.X + d.Width, cy},
		{cx, d.Y + d.Height},
		{d.X, cy},
	}
}
