package qrimage

import "math"

// Basic closed shapes, reduced to paths.

// Rect returns the closed rectangle with top-left corner (x, y).
func Rect(x, y, w, h float64) Path {
	var p Path
	p.Move(x, y)
	p.Line(x+w, y)
	p.Line(x+w, y+h)
	p.Line(x, y+h)
	p.Close()
	return p
}

// Circle returns the closed circle of radius r around (cx, cy), drawn as
// four quarter arcs starting at the rightmost point.
func Circle(cx, cy, r float64) Path {
	var p Path
	p.Move(cx+r, cy)
	p.Arc(r, r, 0, false, true, cx, cy+r)
	p.Arc(r, r, 0, false, true, cx-r, cy)
	p.Arc(r, r, 0, false, true, cx, cy-r)
	p.Arc(r, r, 0, false, true, cx+r, cy)
	p.Close()
	return p
}

// ReplaceArcs returns a path equivalent to p with every elliptic arc
// replaced by cubic Bézier segments. Backends without a native arc
// primitive route paths through here first. Operations outside the known
// set are passed through untouched.
func ReplaceArcs(p Path) Path {
	var cur, start Point
	out := make(Path, 0, len(p))
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			cur = Point(op)
			start = cur
			out = append(out, op)
		case LineTo:
			cur = Point(op)
			out = append(out, op)
		case CubicTo:
			cur = op[2]
			out = append(out, op)
		case ArcTo:
			for _, seg := range arcSegments(cur, op) {
				out = append(out, seg)
			}
			cur = Point{op.X, op.Y}
		case Close:
			cur = start
			out = append(out, op)
		default:
			out = append(out, op)
		}
	}
	return out
}

// arcSegments approximates the elliptic arc from `from` with cubic
// Bézier curves of at most a quarter turn each. Endpoint parameters are
// converted to the center parameterization first (SVG 1.1, appendix F.6.5);
// out-of-range radii are scaled up per F.6.6.
func arcSegments(from Point, arc ArcTo) []CubicTo {
	to := Point{arc.X, arc.Y}
	rx, ry := math.Abs(arc.Rx), math.Abs(arc.Ry)
	if from == to {
		return nil
	}
	if rx == 0 || ry == 0 {
		// a degenerate arc is a straight line
		return []CubicTo{{from, to, to}}
	}

	phi := arc.Rotation * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den != 0 && num > 0 {
		co = math.Sqrt(num / den)
	}
	if arc.LargeArc == arc.Sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if !arc.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	}
	if arc.Sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if n == 0 {
		return nil
	}
	step := delta / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)

	pointAt := func(theta float64) (pos, tangent Point) {
		ct, st := math.Cos(theta), math.Sin(theta)
		pos = Point{
			X: cx + rx*ct*cosPhi - ry*st*sinPhi,
			Y: cy + rx*ct*sinPhi + ry*st*cosPhi,
		}
		tangent = Point{
			X: -rx*st*cosPhi - ry*ct*sinPhi,
			Y: -rx*st*sinPhi + ry*ct*cosPhi,
		}
		return pos, tangent
	}

	segs := make([]CubicTo, 0, n)
	prev, tPrev := pointAt(theta1)
	for i := 1; i <= n; i++ {
		pos, tangent := pointAt(theta1 + step*float64(i))
		end := pos
		if i == n {
			// land exactly on the requested endpoint
			end = to
		}
		segs = append(segs, CubicTo{
			{prev.X + k*tPrev.X, prev.Y + k*tPrev.Y},
			{end.X - k*tangent.X, end.Y - k*tangent.Y},
			end,
		})
		prev, tPrev = pos, tangent
	}
	return segs
}
