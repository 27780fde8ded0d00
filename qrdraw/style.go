package qrdraw

import "github.com/gweber/okqr/qrimage"

// EyeFill overrides the colors of one corner eye. Nil fields inherit
// the foreground.
type EyeFill struct {
	External qrimage.Color
	Internal qrimage.Color
}

// Fill selects the colors of a symbol. When Gradient is set it paints
// the module field in place of Foreground; the eyes stay solid.
type Fill struct {
	Background qrimage.Color
	Foreground qrimage.Color
	Gradient   *qrimage.Gradient

	TopLeftEye    EyeFill
	TopRightEye   EyeFill
	BottomLeftEye EyeFill
}

// UniformFill paints every dark module in one color.
func UniformFill(background, foreground qrimage.Color) Fill {
	return Fill{Background: background, Foreground: foreground}
}

// GradientFill paints the module field with a gradient spanning the
// whole symbol. The eyes inherit the gradient's start color.
func GradientFill(background qrimage.Color, gradient qrimage.Gradient) Fill {
	return Fill{Background: background, Foreground: gradient.Start, Gradient: &gradient}
}

func (f Fill) resolve(c qrimage.Color) qrimage.Color {
	if c == nil {
		return f.Foreground
	}
	return c
}

// Style bundles everything Render needs besides the matrix itself.
type Style struct {
	// Size is the document size in backend units (pixels or points).
	Size int
	// Margin is the quiet zone width in modules. Zero means the
	// default four; negative values drop the quiet zone.
	Margin int
	Module ModuleShape
	Eye    EyeShape
	Fill   Fill
	// Link wraps the symbol in a hyperlink on backends that carry one.
	Link string
}

// DefaultStyle is the classic black on white symbol at 512 units with
// a four module quiet zone.
var DefaultStyle = Style{
	Size:   512,
	Margin: 4,
	Module: SquareModule{},
	Eye:    SquareEye{},
	Fill:   UniformFill(qrimage.White, qrimage.Black),
}

// withDefaults fills unset fields from DefaultStyle.
func (s Style) withDefaults() Style {
	if s.Size <= 0 {
		s.Size = DefaultStyle.Size
	}
	if s.Margin == 0 {
		s.Margin = DefaultStyle.Margin
	} else if s.Margin < 0 {
		s.Margin = 0
	}
	if s.Module == nil {
		s.Module = DefaultStyle.Module
	}
	if s.Eye == nil {
		s.Eye = DefaultStyle.Eye
	}
	if s.Fill.Background == nil {
		s.Fill.Background = DefaultStyle.Fill.Background
	}
	if s.Fill.Foreground == nil {
		s.Fill.Foreground = DefaultStyle.Fill.Foreground
	}
	return s
}
