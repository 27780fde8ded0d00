package qrimage

import "math"

// GradientType selects the geometry of a two-color gradient.
type GradientType uint8

const (
	Horizontal GradientType = iota
	Vertical
	Diagonal
	InverseDiagonal
	Radial
)

func (t GradientType) String() string {
	switch t {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	case InverseDiagonal:
		return "inverse-diagonal"
	case Radial:
		return "radial"
	default:
		return "<unknown gradient type>"
	}
}

// Gradient is a fill varying continuously between two colors, along an axis
// for the linear types or from a center outward for Radial. It is a
// stateless value: backends derive the concrete geometry from the box passed
// at draw time.
type Gradient struct {
	Type       GradientType
	Start, End Color
}

// one entry per linear direction
var linearCoords = [...]func(x, y, w, h float64) (x1, y1, x2, y2 float64){
	Horizontal: func(x, y, w, h float64) (float64, float64, float64, float64) {
		return x, y, x + w, y
	},
	Vertical: func(x, y, w, h float64) (float64, float64, float64, float64) {
		return x, y, x, y + h
	},
	Diagonal: func(x, y, w, h float64) (float64, float64, float64, float64) {
		return x, y, x + w, y + h
	},
	InverseDiagonal: func(x, y, w, h float64) (float64, float64, float64, float64) {
		return x, y + h, x + w, y
	},
}

// LinearCoords returns the gradient axis endpoints over the box
// (x, y, width, height). It must only be called for the linear types;
// Radial geometry comes from RadialCoords.
func (t GradientType) LinearCoords(x, y, width, height float64) (x1, y1, x2, y2 float64) {
	return linearCoords[t](x, y, width, height)
}

// RadialCoords returns the center and radius of a radial gradient over the
// box (x, y, width, height).
func RadialCoords(x, y, width, height float64) (cx, cy, r float64) {
	return (x + width) / 2, (y + height) / 2, math.Max(width, height) / 2
}
