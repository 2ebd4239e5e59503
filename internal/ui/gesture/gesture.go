// Package gesture turns pointer drags into shapes. It has no UI toolkit
// dependency.
package gesture

import (
	"image/color"
	"math"

	"ShapeBoard/internal/shapes"
)

// Style is the pen a new shape is drawn with. A nil Fill draws an
// outline only.
type Style struct {
	Border      color.Color
	BorderWidth int
	Fill        color.Color
}

// minDrag is the distance below which a press and release count as a
// click rather than a drawing gesture.
const minDrag = 2

// IsClick reports whether a drag from (x0, y0) to (x1, y1) is too short to
// draw anything.
func IsClick(x0, y0, x1, y1 float64) bool {
	return math.Abs(x1-x0) < minDrag && math.Abs(y1-y0) < minDrag
}

// ShapeFromDrag builds a shape of kind k spanning a drag from (x0, y0) to
// (x1, y1). With square set, boxes use the smaller of the two spans for
// both sides. It returns nil for an unknown kind.
func ShapeFromDrag(k shapes.Kind, x0, y0, x1, y1 float64, square bool, st Style) shapes.Shape {
	w, h := math.Abs(x1-x0), math.Abs(y1-y0)
	// Apex mirrors the base across the start point.
	apexY := y0 - h
	if y0 >= y1 {
		apexY = y0 + h
	}
	if square {
		w = min(w, h)
		h = w
	}
	left, top := min(x0, x1), min(y0, y1)

	switch k {
	case shapes.KindLine:
		return shapes.NewLine(x0, y0, x1, y1, st.Border, st.BorderWidth)
	case shapes.KindRectangle:
		return shapes.NewRectangle(left, top, w, h, st.Border, st.BorderWidth, st.Fill)
	case shapes.KindEllipse:
		return shapes.NewEllipse(left, top, w, h, st.Border, st.BorderWidth, st.Fill)
	case shapes.KindDiamond:
		return shapes.NewDiamond(left, top, w, h, st.Border, st.BorderWidth, st.Fill)
	case shapes.KindTriangle:
		return shapes.NewTriangle((x0+x1)/2, apexY, x0, y1, x1, y1, st.Border, st.BorderWidth, st.Fill)
	}
	return nil
}
