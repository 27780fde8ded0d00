package qrdraw

import "github.com/gweber/okqr/qrimage"

// EyeShape draws one finder pattern. Both paths are centered on the
// origin in module units; the renderer translates them to the corners
// and rotates the side eyes, so asymmetric shapes stay oriented
// towards their corner.
type EyeShape interface {
	// ExternalPath is the outer ring, a seven module square with a
	// five module hole for the standard shape.
	ExternalPath() qrimage.Path
	// InternalPath is the three module core.
	InternalPath() qrimage.Path
}

// SquareEye is the standard finder pattern.
type SquareEye struct{}

func (SquareEye) ExternalPath() qrimage.Path {
	ring := qrimage.Rect(-3.5, -3.5, 7, 7)
	return append(ring, qrimage.Rect(-2.5, -2.5, 5, 5)...)
}

func (SquareEye) InternalPath() qrimage.Path {
	return qrimage.Rect(-1.5, -1.5, 3, 3)
}

// CircleEye rounds both the ring and the core.
type CircleEye struct{}

func (CircleEye) ExternalPath() qrimage.Path {
	ring := qrimage.Circle(0, 0, 3.5)
	return append(ring, qrimage.Circle(0, 0, 2.5)...)
}

func (CircleEye) InternalPath() qrimage.Path {
	return qrimage.Circle(0, 0, 1.5)
}
