// Package markup decorates log strings with the rich-text tags understood by
// the engine's UI text renderer.
package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with components in the 0..1 range
type Color struct {
	R, G, B, A float64
}

// Named colors as defined by the engine
var (
	Red     = Color{1, 0, 0, 1}
	Green   = Color{0, 1, 0, 1}
	Blue    = Color{0, 0, 1, 1}
	White   = Color{1, 1, 1, 1}
	Black   = Color{0, 0, 0, 1}
	Yellow  = Color{1, 235.0 / 255.0, 4.0 / 255.0, 1}
	Cyan    = Color{0, 1, 1, 1}
	Magenta = Color{1, 0, 1, 1}
	Gray    = Color{0.5, 0.5, 0.5, 1}
	Grey    = Gray
	Clear   = Color{0, 0, 0, 0}
)

type namedColor struct {
	name  string
	color Color
}

// palette is searched in order; the first exact match names the color
var palette = []namedColor{
	{"red", Red},
	{"green", Green},
	{"blue", Blue},
	{"white", White},
	{"black", Black},
	{"yellow", Yellow},
	{"cyan", Cyan},
	{"magenta", Magenta},
	{"gray", Gray},
	{"grey", Grey},
	{"clear", Clear},
}

// RGBA builds a Color from components
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex returns the color as #rrggbbaa
func (c Color) Hex() string {
	return c.rgbHex() + fmt.Sprintf("%02x", toByte(c.A))
}

// String returns the engine's numeric representation of the color
func (c Color) String() string {
	return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

func (c Color) rgbHex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255.0 + 0.5)
	}
}

// Name returns the palette name of c, or its hex form when c is not a
// named color.
func Name(c Color) string {
	for _, entry := range palette {
		if entry.color == c {
			return entry.name
		}
	}
	return c.Hex()
}

// ParseColor accepts a palette name or a #rrggbb / #rrggbbaa hex string
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	for _, entry := range palette {
		if strings.EqualFold(entry.name, s) {
			return entry.color, nil
		}
	}

	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color: %s", s)
	}

	alpha := 1.0
	hex := s
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %s: %w", s, err)
		}
		alpha = float64(a) / 255.0
		hex = s[:7]
	default:
		return Color{}, fmt.Errorf("invalid hex color: %s", s)
	}

	parsed, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %s: %w", s, err)
	}

	return Color{R: parsed.R, G: parsed.G, B: parsed.B, A: alpha}, nil
}
