package shapes

import (
	"encoding/json"
	"image/color"
)

// Record is the untyped key-value form of a shape exchanged with the
// drawing server:
//
//	{"type": "rectangle", "x": 0, "y": 0, "id": "...", "isOwner": true,
//	 "properties": {"width": 10, "height": 20, "borderColor": "#ff0000", ...}}
type Record map[string]any

// Properties returns the nested "properties" record, or an empty one.
func (r Record) Properties() Record {
	switch p := r["properties"].(type) {
	case Record:
		return p
	case map[string]any:
		return Record(p)
	}
	return Record{}
}

// Number reads a numeric field. Missing or non-numeric values yield def.
func (r Record) Number(key string, def float64) float64 {
	if f, ok := toFloat(r[key]); ok {
		return f
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Int reads a numeric field truncated toward zero.
func (r Record) Int(key string, def int) int {
	if f, ok := toFloat(r[key]); ok {
		return int(f)
	}
	return def
}

// Text reads a string field.
func (r Record) Text(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// ToRecord converts s into its wire record. A nil border colour is written
// as "white"; a nil fill colour is left out.
func ToRecord(s Shape) Record {
	b := s.Common()
	props := Record{
		"rotation":    b.Rotation,
		"borderColor": borderString(b.BorderColor),
		"borderWidth": b.BorderWidth,
	}

	switch v := s.(type) {
	case *Line:
		props["x2"] = v.X2
		props["y2"] = v.Y2
	case *Rectangle:
		props["width"] = v.Width
		props["height"] = v.Height
	case *Ellipse:
		props["width"] = v.Width
		props["height"] = v.Height
	case *Diamond:
		props["width"] = v.Width
		props["height"] = v.Height
	case *Triangle:
		props["x2"] = v.X2
		props["y2"] = v.Y2
		props["x3"] = v.X3
		props["y3"] = v.Y3
	}
	if _, isLine := s.(*Line); !isLine && b.FillColor != nil {
		props["fillColor"] = HexString(b.FillColor)
	}

	rec := Record{
		"type":       s.Kind().String(),
		"x":          b.X,
		"y":          b.Y,
		"properties": props,
	}
	if b.ID != "" {
		rec["id"] = b.ID
	}
	if b.Owner != nil {
		rec["isOwner"] = *b.Owner
	}
	return rec
}

func borderString(c color.Color) string {
	if c == nil {
		return "white"
	}
	return HexString(c)
}
