package shapes

import (
	"image/color"
	"log/slog"
)

// FromRecord builds a shape from a server record. It never panics; a
// record it cannot use yields nil, and callers skip it.
//
// Missing numbers default to 0. A missing border colour defaults to black
// and a missing fill to white. Colours may be palette names, "#rrggbb"
// strings or packed RGB integers. A malformed hex string gives a nil
// colour.
func FromRecord(rec Record) (s Shape) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("shape record rejected", slog.Any("panic", r))
			s = nil
		}
	}()
	if rec == nil {
		return nil
	}

	typ, _ := rec.Text("type")
	kind, ok := ParseKind(typ)
	if !ok {
		Logger().Warn("unknown shape type", slog.String("type", typ))
		return nil
	}

	props := rec.Properties()
	x, y := rec.Number("x", 0), rec.Number("y", 0)

	switch kind {
	case KindLine:
		c := colorField(props, Black, "borderColor", "color", "lineColor")
		width := props.Int("borderWidth", props.Int("lineWidth", 0))
		s = NewLine(x, y, props.Number("x2", 0), props.Number("y2", 0), c, width)
	case KindRectangle:
		w, h, border, bw, fill := boxFields(props)
		s = NewRectangle(x, y, w, h, border, bw, fill)
	case KindEllipse:
		w, h, border, bw, fill := boxFields(props)
		s = NewEllipse(x, y, w, h, border, bw, fill)
	case KindDiamond:
		w, h, border, bw, fill := boxFields(props)
		s = NewDiamond(x, y, w, h, border, bw, fill)
	case KindTriangle:
		s = NewTriangle(x, y,
			props.Number("x2", 0), props.Number("y2", 0),
			props.Number("x3", 0), props.Number("y3", 0),
			colorField(props, Black, "borderColor"),
			props.Int("borderWidth", 0),
			colorField(props, White, "fillColor"))
	}

	b := s.Common()
	b.Rotation = props.Int("rotation", 0)
	if id, ok := rec.Text("id"); ok {
		b.ID = id
	}
	if owner, ok := rec["isOwner"].(bool); ok {
		b.SetOwner(owner)
	}
	return s
}

func boxFields(props Record) (w, h float64, border color.Color, borderWidth int, fill color.Color) {
	return props.Number("width", 0),
		props.Number("height", 0),
		colorField(props, Black, "borderColor"),
		props.Int("borderWidth", 0),
		colorField(props, White, "fillColor")
}

// colorField reads the first present key. Unknown palette names fall back
// to def.
func colorField(props Record, def color.Color, keys ...string) color.Color {
	for _, key := range keys {
		v, ok := props[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if len(val) > 0 && val[0] == '#' {
				c, err := ParseHex(val)
				if err != nil {
					Logger().Warn("invalid hex color", slog.String("key", key), slog.String("error", err.Error()))
					return nil
				}
				return c
			}
			if c, ok := NamedColor(val); ok {
				return c
			}
			return def
		default:
			if f, ok := toFloat(val); ok {
				return FromRGB(int64(f))
			}
		}
		return def
	}
	return def
}
