package shapes

import (
	"image/color"
	"math"
)

// HitTolerance is how far a point may sit from a line and still hit it.
const HitTolerance = 5.0

// Line is a segment from (X, Y) to (X2, Y2). It has a single colour,
// stored in BorderColor and mirrored into FillColor.
type Line struct {
	Base
	X2, Y2 float64
}

// NewLine builds a line with the given colour and width.
func NewLine(x1, y1, x2, y2 float64, c color.Color, width int) *Line {
	return &Line{
		Base: Base{X: x1, Y: y1, BorderColor: c, FillColor: c, BorderWidth: width},
		X2:   x2,
		Y2:   y2,
	}
}

func (l *Line) Kind() Kind { return KindLine }
func (l *Line) sealed()    {}

// Color is the line's stroke colour.
func (l *Line) Color() color.Color { return l.BorderColor }

// SetColor sets both colour slots.
func (l *Line) SetColor(c color.Color) {
	l.BorderColor = c
	l.FillColor = c
}

func (l *Line) Move(dx, dy float64) {
	l.X += dx
	l.Y += dy
	l.X2 += dx
	l.Y2 += dy
}

// Resize scales the second endpoint relative to the first.
func (l *Line) Resize(factor float64) {
	l.X2 = l.X + (l.X2-l.X)*factor
	l.Y2 = l.Y + (l.Y2-l.Y)*factor
}

func (l *Line) Contains(px, py float64) bool {
	return segmentDistance(l.X, l.Y, l.X2, l.Y2, px, py) <= HitTolerance
}

func (l *Line) Center() (float64, float64) {
	return (l.X + l.X2) / 2, (l.Y + l.Y2) / 2
}

func (l *Line) Bounds() Rect {
	return boundsOf([]float64{l.X, l.X2}, []float64{l.Y, l.Y2})
}

// segmentDistance is the distance from (px, py) to the segment
// (x1, y1)-(x2, y2).
func segmentDistance(x1, y1, x2, y2, px, py float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = max(0, min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
