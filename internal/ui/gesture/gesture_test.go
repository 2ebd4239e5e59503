package gesture

import (
	"testing"

	"ShapeBoard/internal/shapes"
)

var pen = Style{Border: shapes.Black, BorderWidth: 2, Fill: shapes.Red}

func TestShapeFromDragBoxes(t *testing.T) {
	tests := []struct {
		name   string
		kind   shapes.Kind
		square bool
	}{
		{"rectangle", shapes.KindRectangle, false},
		{"ellipse", shapes.KindEllipse, false},
		{"diamond", shapes.KindDiamond, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Dragging up and to the left still anchors at the top-left corner.
			s := ShapeFromDrag(tt.kind, 50, 40, 10, 10, tt.square, pen)
			if s == nil || s.Kind() != tt.kind {
				t.Fatalf("got %v", s)
			}
			b := s.Bounds()
			if b.MinX != 10 || b.MinY != 10 || b.Width() != 40 || b.Height() != 30 {
				t.Fatalf("bounds = %+v", b)
			}
			if !shapes.SameColor(s.Common().FillColor, shapes.Red) || s.Common().BorderWidth != 2 {
				t.Fatal("style not applied")
			}
		})
	}
}

func TestShapeFromDragSquare(t *testing.T) {
	s := ShapeFromDrag(shapes.KindRectangle, 0, 0, 80, 30, true, pen)
	r := s.(*shapes.Rectangle)
	if r.Width != 30 || r.Height != 30 {
		t.Fatalf("square = %vx%v", r.Width, r.Height)
	}
}

func TestShapeFromDragLine(t *testing.T) {
	l := ShapeFromDrag(shapes.KindLine, 5, 6, 70, 80, true, pen).(*shapes.Line)
	if l.X != 5 || l.Y != 6 || l.X2 != 70 || l.Y2 != 80 {
		t.Fatalf("line = %+v", l)
	}
	if !shapes.SameColor(l.Color(), shapes.Black) {
		t.Fatal("line takes the border color")
	}
}

func TestShapeFromDragTriangle(t *testing.T) {
	down := ShapeFromDrag(shapes.KindTriangle, 10, 100, 50, 120, false, pen).(*shapes.Triangle)
	if down.X != 30 || down.Y != 80 {
		t.Fatalf("apex = (%v, %v), want (30, 80)", down.X, down.Y)
	}
	if down.X2 != 10 || down.Y2 != 120 || down.X3 != 50 || down.Y3 != 120 {
		t.Fatalf("base = %+v", down)
	}

	up := ShapeFromDrag(shapes.KindTriangle, 10, 100, 50, 80, false, pen).(*shapes.Triangle)
	if up.Y != 120 {
		t.Fatalf("apex y = %v, want 120", up.Y)
	}
}

func TestShapeFromDragUnknown(t *testing.T) {
	if s := ShapeFromDrag("hexagon", 0, 0, 1, 1, false, pen); s != nil {
		t.Fatalf("got %v", s)
	}
}

func TestIsClick(t *testing.T) {
	if !IsClick(10, 10, 11, 11) {
		t.Error("one pixel is a click")
	}
	if IsClick(10, 10, 10, 20) {
		t.Error("ten pixels is a drag")
	}
}
