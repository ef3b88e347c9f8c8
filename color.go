package gekko

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha sRGB colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// LinearRgba is a colour in linear space, the form shaders consume.
type LinearRgba struct {
	R, G, B, A float32
}

var (
	ColorWhite  = RGB(1, 1, 1)
	ColorBlack  = RGB(0, 0, 0)
	ColorSilver = RGB(0.75, 0.75, 0.75)
	ColorGray   = RGB(0.5, 0.5, 0.5)
	ColorRed    = RGB(1, 0, 0)
	ColorGreen  = RGB(0, 1, 0)
	ColorBlue   = RGB(0, 0, 1)
)

func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hsla builds a colour from hue in degrees, saturation and lightness in [0, 1].
func Hsla(hue, saturation, lightness, alpha float32) Color {
	return fromColorful(colorful.Hsl(float64(hue), float64(saturation), float64(lightness)), alpha)
}

// ColorHex parses "#rgb" or "#rrggbb", optionally followed by two alpha
// digits ("#rrggbbaa").
func ColorHex(s string) (Color, error) {
	alpha := float32(1)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("parsing alpha of %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing colour %q: %w", s, err)
	}
	return fromColorful(c, alpha), nil
}

func (c Color) WithAlpha(alpha float32) Color {
	c.A = alpha
	return c
}

// Hex formats the colour as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) Hex() string {
	hex := c.colorful().Clamped().Hex()
	if c.A >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(clamp01(c.A)*255+0.5))
}

// Linear converts to linear space. Alpha is not gamma encoded and passes
// through unchanged.
func (c Color) Linear() LinearRgba {
	r, g, b := c.colorful().LinearRgb()
	return LinearRgba{R: float32(r), G: float32(g), B: float32(b), A: c.A}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func fromColorful(c colorful.Color, alpha float32) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
