package vector

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is a linear-RGB color. Components are not clamped until converted
// back with [Color.Colorful].
type Color struct {
	R, G, B float32
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B}
}

func (c Color) Mul(k float32) Color {
	return Color{c.R * k, c.G * k, c.B * k}
}

// FromColorful converts an sRGB colorful.Color to linear RGB.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.LinearRgb()
	return Color{float32(r), float32(g), float32(b)}
}

// ParseHex parses a "#rrggbb" string.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return FromColorful(c), nil
}

// Colorful converts c back to a clamped sRGB colorful.Color.
func (c Color) Colorful() colorful.Color {
	return colorful.LinearRgb(float64(c.R), float64(c.G), float64(c.B)).Clamped()
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return c.Colorful().Hex()
}
