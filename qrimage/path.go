package qrimage

// This file defines the basic path structure

type pathCommand uint8

const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathArcTo
	pathCubicTo
	pathClose
)

// Point is a position in the abstract drawing space, y axis pointing down.
type Point struct {
	X, Y float64
}

// Operation is one drawing instruction of a Path. The set of operations is
// closed: backends switch exhaustively over the concrete types and reject
// anything else with ErrUnsupportedOperation.
type Operation interface {
	command() pathCommand
}

// MoveTo starts a new subpath at the given point.
type MoveTo Point

// LineTo draws a straight line to the given point.
type LineTo Point

// ArcTo draws an elliptic arc to (X, Y). Rotation is the x-axis rotation in
// degrees; LargeArc and Sweep pick one of the four candidate arcs.
type ArcTo struct {
	Rx, Ry   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	X, Y     float64
}

// CubicTo draws a cubic Bézier curve through the two control points to the
// final point.
type CubicTo [3]Point

// Close closes the current subpath.
type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (ArcTo) command() pathCommand   { return pathArcTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes an ordered sequence of drawing operations forming one
// filled shape. A Path is owned by its caller: backends only read it.
type Path []Operation

// Move starts a new subpath at the given point.
func (p *Path) Move(x, y float64) {
	*p = append(*p, MoveTo{x, y})
}

// Line adds a linear segment to the current subpath.
func (p *Path) Line(x, y float64) {
	*p = append(*p, LineTo{x, y})
}

// Arc adds an elliptic arc segment to the current subpath.
func (p *Path) Arc(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	*p = append(*p, ArcTo{Rx: rx, Ry: ry, Rotation: rotation, LargeArc: largeArc, Sweep: sweep, X: x, Y: y})
}

// Cubic adds a cubic Bézier segment to the current subpath.
func (p *Path) Cubic(x1, y1, x2, y2, x3, y3 float64) {
	*p = append(*p, CubicTo{{x1, y1}, {x2, y2}, {x3, y3}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	*p = append(*p, Close{})
}
