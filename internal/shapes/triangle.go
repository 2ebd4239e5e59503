package shapes

import "image/color"

// Triangle has vertices (X, Y), (X2, Y2) and (X3, Y3).
type Triangle struct {
	Base
	X2, Y2 float64
	X3, Y3 float64
}

func NewTriangle(x1, y1, x2, y2, x3, y3 float64, border color.Color, borderWidth int, fill color.Color) *Triangle {
	return &Triangle{
		Base: newBase(x1, y1, border, borderWidth, fill),
		X2:   x2, Y2: y2,
		X3: x3, Y3: y3,
	}
}

func (t *Triangle) Kind() Kind { return KindTriangle }
func (t *Triangle) sealed()    {}

func (t *Triangle) Move(dx, dy float64) {
	t.X += dx
	t.Y += dy
	t.X2 += dx
	t.Y2 += dy
	t.X3 += dx
	t.Y3 += dy
}

// Center returns the centroid.
func (t *Triangle) Center() (float64, float64) {
	return (t.X + t.X2 + t.X3) / 3, (t.Y + t.Y2 + t.Y3) / 3
}

// Resize scales every vertex about the centroid, which stays put.
func (t *Triangle) Resize(factor float64) {
	cx, cy := t.Center()
	t.X = cx + (t.X-cx)*factor
	t.Y = cy + (t.Y-cy)*factor
	t.X2 = cx + (t.X2-cx)*factor
	t.Y2 = cy + (t.Y2-cy)*factor
	t.X3 = cx + (t.X3-cx)*factor
	t.Y3 = cy + (t.Y3-cy)*factor
}

// Contains reports whether all three barycentric weights of (px, py)
// lie in [0, 1].
func (t *Triangle) Contains(px, py float64) bool {
	den := (t.Y2-t.Y3)*(t.X-t.X3) + (t.X3-t.X2)*(t.Y-t.Y3)
	if den == 0 {
		return false
	}
	a := ((t.Y2-t.Y3)*(px-t.X3) + (t.X3-t.X2)*(py-t.Y3)) / den
	b := ((t.Y3-t.Y)*(px-t.X3) + (t.X-t.X3)*(py-t.Y3)) / den
	c := 1 - a - b
	return inUnit(a) && inUnit(b) && inUnit(c)
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

func (t *Triangle) Bounds() Rect {
	return boundsOf([]float64{t.X, t.X2, t.X3}, []float64{t.Y, t.Y2, t.Y3})
}
