package qrimage

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRect(t *testing.T) {
	got := Rect(2, 3, 10, 20)
	want := Path{
		MoveTo{2, 3},
		LineTo{12, 3},
		LineTo{12, 23},
		LineTo{2, 23},
		Close{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected rectangle path (-want +got):\n%s", diff)
	}
}

func TestPathBuilder(t *testing.T) {
	var p Path
	p.Move(0, 0)
	p.Line(1, 0)
	p.Cubic(1, 1, 2, 1, 2, 0)
	p.Arc(3, 3, 45, true, false, 4, 0)
	p.Close()

	want := Path{
		MoveTo{0, 0},
		LineTo{1, 0},
		CubicTo{{1, 1}, {2, 1}, {2, 0}},
		ArcTo{Rx: 3, Ry: 3, Rotation: 45, LargeArc: true, Sweep: false, X: 4, Y: 0},
		Close{},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

func TestCircleStructure(t *testing.T) {
	p := Circle(5, 5, 2)
	if len(p) != 6 {
		t.Fatalf("expected 6 operations, got %d", len(p))
	}
	if diff := cmp.Diff(MoveTo{7, 5}, p[0]); diff != "" {
		t.Errorf("unexpected start point (-want +got):\n%s", diff)
	}
	quarters := []Point{{5, 7}, {3, 5}, {5, 3}, {7, 5}}
	for i, end := range quarters {
		arc, ok := p[1+i].(ArcTo)
		if !ok {
			t.Fatalf("operation %d: expected ArcTo, got %T", 1+i, p[1+i])
		}
		if arc.Rx != 2 || arc.Ry != 2 || !arc.Sweep || arc.LargeArc {
			t.Errorf("operation %d: unexpected arc parameters %+v", 1+i, arc)
		}
		if arc.X != end.X || arc.Y != end.Y {
			t.Errorf("operation %d: ends at (%g, %g), want (%g, %g)", 1+i, arc.X, arc.Y, end.X, end.Y)
		}
	}
	if _, ok := p[5].(Close); !ok {
		t.Errorf("expected closing operation, got %T", p[5])
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestReplaceArcsQuarterCircle(t *testing.T) {
	var p Path
	p.Move(1, 0)
	p.Arc(1, 1, 0, false, true, 0, 1)

	out := ReplaceArcs(p)
	if len(out) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(out))
	}
	seg, ok := out[1].(CubicTo)
	if !ok {
		t.Fatalf("expected CubicTo, got %T", out[1])
	}

	// quarter circle around the origin: control distance 4/3*tan(pi/8)
	k := 4.0 / 3 * math.Tan(math.Pi/8)
	if !approx(seg[0].X, 1) || !approx(seg[0].Y, k) {
		t.Errorf("first control point (%g, %g), want (1, %g)", seg[0].X, seg[0].Y, k)
	}
	if !approx(seg[1].X, k) || !approx(seg[1].Y, 1) {
		t.Errorf("second control point (%g, %g), want (%g, 1)", seg[1].X, seg[1].Y, k)
	}
	if seg[2] != (Point{0, 1}) {
		t.Errorf("end point %+v, want (0, 1)", seg[2])
	}
}

func TestReplaceArcsCircle(t *testing.T) {
	out := ReplaceArcs(Circle(0, 0, 1))
	if len(out) != 6 {
		t.Fatalf("expected 6 operations, got %d", len(out))
	}
	for i := 1; i <= 4; i++ {
		if _, ok := out[i].(CubicTo); !ok {
			t.Errorf("operation %d: expected CubicTo, got %T", i, out[i])
		}
	}
	last := out[4].(CubicTo)
	if last[2] != (Point{1, 0}) {
		t.Errorf("circle ends at %+v, want (1, 0)", last[2])
	}
}

func TestReplaceArcsDegenerate(t *testing.T) {
	// zero radius behaves as a straight line
	var p Path
	p.Move(0, 0)
	p.Arc(0, 5, 0, false, true, 3, 4)
	out := ReplaceArcs(p)
	if len(out) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(out))
	}
	seg := out[1].(CubicTo)
	if seg[2] != (Point{3, 4}) {
		t.Errorf("line surrogate ends at %+v, want (3, 4)", seg[2])
	}

	// coincident endpoints draw nothing
	p = nil
	p.Move(2, 2)
	p.Arc(1, 1, 0, true, true, 2, 2)
	out = ReplaceArcs(p)
	if len(out) != 1 {
		t.Errorf("expected the arc to be dropped, got %d operations", len(out))
	}
}

func TestReplaceArcsKeepsUnknownOperations(t *testing.T) {
	p := Path{MoveTo{0, 0}, nil, LineTo{1, 1}}
	out := ReplaceArcs(p)
	if diff := cmp.Diff(p, out); diff != "" {
		t.Errorf("unexpected rewrite (-want +got):\n%s", diff)
	}
}
