package qrimage

import "math"

// Color resolves to an sRGB triplet. Implementations outside this package
// are accepted by every backend.
type Color interface {
	RGB() (r, g, b uint8)
}

// AlphaColor is implemented by colors carrying an explicit opacity
// percentage. Colors that do not implement it are treated as fully opaque.
type AlphaColor interface {
	Color
	Alpha() int
}

// assert interface conformance
var (
	_ Color      = RGB{}
	_ AlphaColor = Alpha{}
	_ Color      = Gray{}
	_ Color      = CMYK{}
)

// Opacity resolves the alpha percentage of c, in [0, 100];
// 100 when c carries no explicit opacity.
func Opacity(c Color) int {
	if ac, ok := c.(AlphaColor); ok {
		return clampPercent(ac.Alpha())
	}
	return 100
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RGB is a plain opaque sRGB color.
type RGB struct{ R, G, B uint8 }

func (c RGB) RGB() (uint8, uint8, uint8) { return c.R, c.G, c.B }

// Convenience colors for the common black-on-white symbol.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Alpha wraps a base color with an opacity percentage in [0, 100].
// An opacity of 0 is fully transparent.
type Alpha struct {
	Opacity int
	Base    Color
}

func (c Alpha) RGB() (uint8, uint8, uint8) { return c.Base.RGB() }

// Alpha returns the opacity percentage.
func (c Alpha) Alpha() int { return c.Opacity }

// Gray is a gray level in [0, 100], 0 black and 100 white.
type Gray struct{ Level int }

func (c Gray) RGB() (uint8, uint8, uint8) {
	v := uint8(math.Round(255 * float64(clampPercent(c.Level)) / 100))
	return v, v, v
}

// CMYK is a cyan/magenta/yellow/key color, each channel in [0, 100].
type CMYK struct{ C, M, Y, K int }

func (c CMYK) RGB() (uint8, uint8, uint8) {
	k := 1 - float64(clampPercent(c.K))/100
	conv := func(ch int) uint8 {
		return uint8(math.Round(255 * (1 - float64(clampPercent(ch))/100) * k))
	}
	return conv(c.C), conv(c.M), conv(c.Y)
}
