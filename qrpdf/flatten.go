package qrpdf

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gweber/okqr/qrimage"
)

// curveSteps is the number of chords a cubic segment is cut into when
// a path becomes a clip polygon.
const curveSteps = 16

// flatten converts a path to the point lists ClipPolygon expects, one
// per subpath. Arcs are rewritten to cubics first, cubics are sampled
// with the Bézier polynomial.
func flatten(path qrimage.Path) ([][]gofpdf.PointType, error) {
	var polygons [][]gofpdf.PointType
	var polygon []gofpdf.PointType
	var cur qrimage.Point

	flush := func() {
		if len(polygon) > 0 {
			polygons = append(polygons, polygon)
			polygon = nil
		}
	}

	for _, op := range qrimage.ReplaceArcs(path) {
		switch op := op.(type) {
		case qrimage.MoveTo:
			flush()
			cur = qrimage.Point(op)
			polygon = append(polygon, gofpdf.PointType{X: op.X, Y: op.Y})
		case qrimage.LineTo:
			cur = qrimage.Point(op)
			polygon = append(polygon, gofpdf.PointType{X: op.X, Y: op.Y})
		case qrimage.CubicTo:
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				polygon = append(polygon, gofpdf.PointType{
					X: bezierSpline(cur.X, op[0].X, op[1].X, op[2].X, t),
					Y: bezierSpline(cur.Y, op[0].Y, op[1].Y, op[2].Y, t),
				})
			}
			cur = op[2]
		case qrimage.Close:
			// the clip polygon closes its ring itself
			flush()
		default:
			return nil, fmt.Errorf("%w: %T", qrimage.ErrUnsupportedOperation, op)
		}
	}
	flush()
	return polygons, nil
}

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}
