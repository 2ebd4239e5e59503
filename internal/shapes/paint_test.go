package shapes

import (
	"fmt"
	"image/color"
	"strings"
	"testing"
)

type recorder struct{ calls []string }

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Push() { r.add("push") }
func (r *recorder) Pop()  { r.add("pop") }
func (r *recorder) RotateAbout(deg, x, y float64) {
	r.add("rotate %g %g %g", deg, x, y)
}
func (r *recorder) FillPolygon(pts []Point, c color.Color) { r.add("fill-poly %d", len(pts)) }
func (r *recorder) StrokePolygon(pts []Point, c color.Color, w float64) {
	r.add("stroke-poly %d %g", len(pts), w)
}
func (r *recorder) FillEllipse(cx, cy, rx, ry float64, c color.Color) {
	r.add("fill-ellipse %g %g %g %g", cx, cy, rx, ry)
}
func (r *recorder) StrokeEllipse(cx, cy, rx, ry float64, c color.Color, w float64) {
	r.add("stroke-ellipse %g", w)
}
func (r *recorder) StrokeLine(x1, y1, x2, y2 float64, c color.Color, w float64) {
	r.add("line %g %g %g %g", x1, y1, x2, y2)
}

func TestPaint(t *testing.T) {
	rotated := NewTriangle(0, 0, 30, 0, 0, 30, Black, 2, Red)
	rotated.Rotate(90)

	tests := []struct {
		name  string
		shape Shape
		want  string
	}{
		{"rectangle fill then stroke", NewRectangle(0, 0, 10, 10, Black, 3, White),
			"push|fill-poly 4|stroke-poly 4 3|pop"},
		{"no fill", NewDiamond(0, 0, 10, 10, Black, 1, nil),
			"push|stroke-poly 4 1|pop"},
		{"ellipse", NewEllipse(0, 0, 20, 10, Black, 0, Blue),
			"push|fill-ellipse 10 5 10 5|stroke-ellipse 1|pop"},
		{"triangle rotates about centroid", rotated,
			"push|rotate 90 10 10|fill-poly 3|stroke-poly 3 2|pop"},
		{"line", NewLine(1, 2, 3, 4, Red, 1),
			"push|line 1 2 3 4|pop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			Paint(rec, tt.shape)
			if got := strings.Join(rec.calls, "|"); got != tt.want {
				t.Fatalf("calls = %q, want %q", got, tt.want)
			}
		})
	}
}
