package shapes

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	Black     = color.NRGBA{0, 0, 0, 255}
	Blue      = color.NRGBA{0, 0, 255, 255}
	Red       = color.NRGBA{255, 0, 0, 255}
	Green     = color.NRGBA{0, 255, 0, 255}
	Yellow    = color.NRGBA{255, 255, 0, 255}
	White     = color.NRGBA{255, 255, 255, 255}
	Cyan      = color.NRGBA{0, 255, 255, 255}
	Magenta   = color.NRGBA{255, 0, 255, 255}
	Orange    = color.NRGBA{255, 200, 0, 255}
	Pink      = color.NRGBA{255, 175, 175, 255}
	Gray      = color.NRGBA{128, 128, 128, 255}
	DarkGrey  = color.NRGBA{64, 64, 64, 255}
	LightGrey = color.NRGBA{192, 192, 192, 255}
)

// palette is keyed by lower-cased name.
var palette = map[string]color.NRGBA{
	"black":     Black,
	"blue":      Blue,
	"red":       Red,
	"green":     Green,
	"yellow":    Yellow,
	"white":     White,
	"cyan":      Cyan,
	"magenta":   Magenta,
	"orange":    Orange,
	"pink":      Pink,
	"gray":      Gray,
	"darkgrey":  DarkGrey,
	"lightgrey": LightGrey,
}

// Swatches is the palette in display order.
var Swatches = []color.NRGBA{
	Black, Red, Green, Blue, Yellow, Orange, Pink, Cyan, Magenta, Gray, DarkGrey, LightGrey, White,
}

// NamedColor looks up a palette colour, ignoring case.
func NamedColor(name string) (color.NRGBA, bool) {
	c, ok := palette[strings.ToLower(name)]
	return c, ok
}

// ParseHex decodes "#rrggbb". Shorter inputs are zero-extended on the
// left; anything wider than 24 bits is rejected.
func ParseHex(s string) (color.NRGBA, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok || digits == "" || len(digits) > 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 24)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return FromRGB(int64(v)), nil
}

// FromRGB unpacks 0xRRGGBB into an opaque colour.
func FromRGB(v int64) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// HexString renders c as "#rrggbb", or "" for nil.
func HexString(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// SameColor compares two colours by their RGBA values. Two nils are equal.
func SameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
