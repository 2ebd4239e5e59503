package shapes

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRotateAccumulatesModulo(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10, Black, 1, nil)
	r.Rotate(450)
	if r.Rotation != 90 {
		t.Fatalf("rotation after 450 = %d, want 90", r.Rotation)
	}
	r.Rotate(300)
	r.Rotate(300)
	if r.Rotation != 690 {
		t.Fatalf("rotation is not normalised: got %d, want 690", r.Rotation)
	}
	r.Rotate(-30)
	if r.Rotation != 660 {
		t.Fatalf("negative increment: got %d, want 660", r.Rotation)
	}
}

func TestBoxResize(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		w, h   float64
	}{
		{"double", 2, 100, 60},
		{"half", 0.5, 25, 15},
		{"zero", 0, 0, 0},
		{"negative", -1, -50, -30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRectangle(0, 0, 50, 30, Black, 1, nil)
			r.Resize(tt.factor)
			if r.Width != tt.w || r.Height != tt.h {
				t.Fatalf("rectangle %v: got %vx%v, want %vx%v", tt.factor, r.Width, r.Height, tt.w, tt.h)
			}
			e := NewEllipse(0, 0, 50, 30, Black, 1, nil)
			e.Resize(tt.factor)
			if e.Width != tt.w || e.Height != tt.h {
				t.Fatalf("ellipse %v: got %vx%v", tt.factor, e.Width, e.Height)
			}
			d := NewDiamond(0, 0, 50, 30, Black, 1, nil)
			d.Resize(tt.factor)
			if d.Width != tt.w || d.Height != tt.h {
				t.Fatalf("diamond %v: got %vx%v", tt.factor, d.Width, d.Height)
			}
		})
	}
}

func TestTriangleResizeKeepsCentroid(t *testing.T) {
	tri := NewTriangle(0, 0, 30, 0, 0, 30, Black, 1, nil)
	cx, cy := tri.Center()
	tri.Resize(2)
	nx, ny := tri.Center()
	if !almostEqual(cx, nx) || !almostEqual(cy, ny) {
		t.Fatalf("centroid moved from (%v,%v) to (%v,%v)", cx, cy, nx, ny)
	}
	if !almostEqual(tri.X, -10) || !almostEqual(tri.Y, -10) || !almostEqual(tri.X2, 50) || !almostEqual(tri.Y3, 50) {
		t.Fatalf("unexpected vertices after resize: %+v", tri)
	}
}

func TestLineResizeScalesFromFirstEndpoint(t *testing.T) {
	l := NewLine(10, 10, 20, 30, Black, 1)
	l.Resize(2)
	if l.X != 10 || l.Y != 10 || l.X2 != 30 || l.Y2 != 50 {
		t.Fatalf("unexpected line after resize: %+v", l)
	}
}

func TestMoveTranslatesEveryPoint(t *testing.T) {
	tri := NewTriangle(0, 0, 10, 0, 0, 10, Black, 1, nil)
	tri.Move(5, -5)
	if tri.X != 5 || tri.Y != -5 || tri.X2 != 15 || tri.Y2 != -5 || tri.X3 != 5 || tri.Y3 != 5 {
		t.Fatalf("triangle not translated: %+v", tri)
	}
	l := NewLine(0, 0, 10, 10, Black, 1)
	l.Move(1, 2)
	if l.X != 1 || l.Y != 2 || l.X2 != 11 || l.Y2 != 12 {
		t.Fatalf("line not translated: %+v", l)
	}
	r := NewRectangle(1, 1, 5, 5, Black, 1, nil)
	r.Move(-1, -1)
	if r.X != 0 || r.Y != 0 || r.Width != 5 {
		t.Fatalf("rectangle not translated: %+v", r)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name   string
		shape  Shape
		px, py float64
		want   bool
	}{
		{"rectangle inside", NewRectangle(0, 0, 10, 10, Black, 1, nil), 5, 5, true},
		{"rectangle edge", NewRectangle(0, 0, 10, 10, Black, 1, nil), 10, 10, true},
		{"rectangle outside", NewRectangle(0, 0, 10, 10, Black, 1, nil), 11, 5, false},
		{"ellipse centre", NewEllipse(0, 0, 20, 10, Black, 1, nil), 10, 5, true},
		{"ellipse corner", NewEllipse(0, 0, 20, 10, Black, 1, nil), 1, 1, false},
		{"diamond corner uses box", NewDiamond(0, 0, 20, 20, Black, 1, nil), 1, 1, true},
		{"diamond outside box", NewDiamond(0, 0, 20, 20, Black, 1, nil), 21, 1, false},
		{"triangle inside", NewTriangle(10, 10, 20, 20, 15, 5, Black, 1, nil), 15, 15, true},
		{"triangle far", NewTriangle(10, 10, 20, 20, 15, 5, Black, 1, nil), 100, 100, false},
		{"degenerate triangle", NewTriangle(0, 0, 1, 1, 2, 2, Black, 1, nil), 1, 1, false},
		{"line on segment", NewLine(0, 0, 100, 0, Black, 1), 50, 4, true},
		{"line past end", NewLine(0, 0, 100, 0, Black, 1), 106, 0, false},
		{"line too far", NewLine(0, 0, 100, 0, Black, 1), 50, 6, false},
		{"zero length line", NewLine(5, 5, 5, 5, Black, 1), 8, 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Contains(tt.px, tt.py); got != tt.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestUnguardedSetters(t *testing.T) {
	e := NewEllipse(0, 0, 1, 1, Black, 1, nil)
	e.SetBorderWidth(-4)
	e.SetBorderColor(nil)
	if e.BorderWidth != -4 || e.BorderColor != nil {
		t.Fatalf("setters should store values as given: %+v", e.Base)
	}
}

func TestOwnerTriState(t *testing.T) {
	r := NewRectangle(0, 0, 1, 1, Black, 1, nil)
	if r.Owner != nil || r.IsOwner() {
		t.Fatal("owner should start unset")
	}
	r.SetOwner(false)
	if r.Owner == nil || r.IsOwner() {
		t.Fatal("owner should be set to false")
	}
	r.SetOwner(true)
	if !r.IsOwner() {
		t.Fatal("owner should be true")
	}
}

func TestBoundsAll(t *testing.T) {
	if _, ok := BoundsAll(nil); ok {
		t.Fatal("empty input should report false")
	}
	got, ok := BoundsAll([]Shape{
		NewRectangle(10, 10, -5, 5, Black, 1, nil),
		NewLine(0, 40, 30, 20, Black, 1),
	})
	want := Rect{MinX: 0, MinY: 10, MaxX: 30, MaxY: 40}
	if !ok || got != want {
		t.Fatalf("BoundsAll = %+v, want %+v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(" " + string(k) + " ")
		if !ok || got != k {
			t.Fatalf("ParseKind(%q) = %q, %v", k, got, ok)
		}
	}
	if got, ok := ParseKind("Ellipse"); !ok || got != KindEllipse {
		t.Fatal("kind names should be case-insensitive")
	}
	if _, ok := ParseKind("hexagon"); ok {
		t.Fatal("unknown kind accepted")
	}
}

func TestClone(t *testing.T) {
	orig := NewTriangle(0, 0, 10, 0, 5, 10, Black, 1, nil)
	orig.ID = "t1"
	c := Clone(orig).(*Triangle)
	if c == orig || c.ID != "t1" || c.X3 != 5 || c.FillColor != nil {
		t.Fatalf("clone = %+v", c)
	}
	orig.Move(3, 3)
	if c.X != 0 {
		t.Fatal("clone shares geometry with the original")
	}
}

func TestEllipseDegenerateContainsNothing(t *testing.T) {
	flat := NewEllipse(10, 10, 0, 20, Black, 1, nil)
	for _, p := range [][2]float64{{10, 20}, {10, 10}, {11, 20}} {
		if flat.Contains(p[0], p[1]) {
			t.Errorf("zero-width ellipse contains %v", p)
		}
	}
	if NewEllipse(10, 10, 20, 0, Black, 1, nil).Contains(20, 10) {
		t.Error("zero-height ellipse contains its centre")
	}
}
