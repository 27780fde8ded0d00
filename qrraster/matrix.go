package qrraster

import "math"

// Matrix2D is the affine transform applied to drawing coordinates. The
// field layout matches the rasterizer's own matrix, so gradient setups
// convert directly.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform. The Matrix2D zero value is not
// usable, it collapses everything onto the origin.
var Identity = Matrix2D{A: 1, D: 1}

// Mult composes the transforms, applying b before a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Scale appends a uniform scale in local space.
func (a Matrix2D) Scale(s float64) Matrix2D {
	return a.Mult(Matrix2D{A: s, D: s})
}

// Translate appends a translation in local space.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Rotate appends a whole-degree rotation in local space, clockwise in
// the y-down image coordinates.
func (a Matrix2D) Rotate(degrees int) Matrix2D {
	sin, cos := math.Sincos(float64(degrees) * math.Pi / 180)
	return a.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

func (a Matrix2D) apply(x, y float64) (float64, float64) {
	return x*a.A + y*a.C + a.E, x*a.B + y*a.D + a.F
}
