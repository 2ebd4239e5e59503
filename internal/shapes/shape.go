package shapes

import (
	"image/color"
	"strings"
)

// Kind names a shape variant. It doubles as the "type" discriminator of a
// shape record and as the model's current drawing type.
type Kind string

const (
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindTriangle  Kind = "triangle"
	KindDiamond   Kind = "diamond"
)

// Kinds lists every variant in toolbar order.
var Kinds = []Kind{KindLine, KindRectangle, KindEllipse, KindTriangle, KindDiamond}

// ParseKind resolves a case-insensitive variant name.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

func (k Kind) String() string { return string(k) }

// Shape is implemented by *Line, *Rectangle, *Ellipse, *Triangle and
// *Diamond only. Code that needs per-variant behaviour switches on the
// concrete type; see Paint and ToRecord.
//
// Shapes are mutable and shared by reference. Whoever holds the pointer
// mutates the canonical value.
type Shape interface {
	Kind() Kind
	// Common returns the attributes every variant carries.
	Common() *Base
	Move(dx, dy float64)
	Resize(factor float64)
	Rotate(degrees int)
	Contains(px, py float64) bool
	// Center is the pivot used for rotation when painting.
	Center() (float64, float64)
	Bounds() Rect

	sealed()
}

// Base holds the attributes shared by all variants.
type Base struct {
	X, Y        float64
	BorderColor color.Color // nil means unset
	FillColor   color.Color // nil means no fill
	BorderWidth int
	// Rotation is in degrees. It only changes through Rotate and is
	// never normalised, so it can leave [0, 360).
	Rotation int
	// ID is assigned by the drawing server. Empty until uploaded.
	ID string
	// Owner is nil when the server did not say.
	Owner *bool
}

func (b *Base) Common() *Base { return b }

// Rotate adds degrees%360 to the stored rotation.
func (b *Base) Rotate(degrees int) {
	b.Rotation += degrees % 360
}

func (b *Base) SetBorderColor(c color.Color) { b.BorderColor = c }
func (b *Base) SetFillColor(c color.Color)   { b.FillColor = c }

// SetBorderWidth accepts any value, including negatives.
func (b *Base) SetBorderWidth(w int) { b.BorderWidth = w }

// SetOwner records the ownership flag.
func (b *Base) SetOwner(owner bool) { b.Owner = &owner }

// IsOwner reports the ownership flag, treating unset as false.
func (b *Base) IsOwner() bool { return b.Owner != nil && *b.Owner }

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest Rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

func boundsOf(xs, ys []float64) Rect {
	r := Rect{MinX: xs[0], MinY: ys[0], MaxX: xs[0], MaxY: ys[0]}
	for i := 1; i < len(xs); i++ {
		r.MinX = min(r.MinX, xs[i])
		r.MaxX = max(r.MaxX, xs[i])
		r.MinY = min(r.MinY, ys[i])
		r.MaxY = max(r.MaxY, ys[i])
	}
	return r
}

// BoundsAll returns the union of the bounds of every shape, and false if
// shapes is empty.
func BoundsAll(shapes []Shape) (Rect, bool) {
	if len(shapes) == 0 {
		return Rect{}, false
	}
	r := shapes[0].Bounds()
	for _, s := range shapes[1:] {
		r = r.Union(s.Bounds())
	}
	return r, true
}

// Clone returns an independent copy of s.
func Clone(s Shape) Shape {
	switch v := s.(type) {
	case *Line:
		c := *v
		return &c
	case *Rectangle:
		c := *v
		return &c
	case *Ellipse:
		c := *v
		return &c
	case *Triangle:
		c := *v
		return &c
	case *Diamond:
		c := *v
		return &c
	}
	return nil
}
