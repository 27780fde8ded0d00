package qrdraw

import "github.com/gweber/okqr/qrimage"

// ModuleShape turns the dark modules of a matrix into a fill path in
// module units, one unit per module.
type ModuleShape interface {
	Path(m Matrix) qrimage.Path
}

// SquareModule draws each dark module as a full square, the classic
// look.
type SquareModule struct{}

func (SquareModule) Path(m Matrix) qrimage.Path {
	var p qrimage.Path
	n := m.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if m.At(x, y) {
				p = append(p, qrimage.Rect(float64(x), float64(y), 1, 1)...)
			}
		}
	}
	return p
}

// DotsModule draws each dark module as a centered dot. Diameter is
// relative to the module; values outside (0, 1] fall back to 1.
type DotsModule struct {
	Diameter float64
}

func (d DotsModule) Path(m Matrix) qrimage.Path {
	diameter := d.Diameter
	if diameter <= 0 || diameter > 1 {
		diameter = 1
	}
	radius := diameter / 2
	var p qrimage.Path
	n := m.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if m.At(x, y) {
				p = append(p, qrimage.Circle(float64(x)+0.5, float64(y)+0.5, radius)...)
			}
		}
	}
	return p
}
