package qreps_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gweber/okqr/qreps"
	"github.com/gweber/okqr/qrimage"
)

func newBackend(t *testing.T) *qreps.Backend {
	t.Helper()
	b, err := qreps.New()
	require.NoError(t, err)
	return b
}

func docLines(doc []byte) []string {
	return strings.Split(strings.TrimRight(string(doc), "\n"), "\n")
}

// assertStateBalanced counts gsave against grestore lines.
func assertStateBalanced(t *testing.T, doc []byte) {
	t.Helper()
	opens, closes := 0, 0
	for _, line := range docLines(doc) {
		if line == "q" || strings.HasPrefix(line, "q ") {
			opens++
		}
		if line == "Q" {
			closes++
		}
	}
	assert.Equal(t, opens, closes)
}

func TestDocumentStructure(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(100, qrimage.White, ""))
	doc, err := b.End()
	require.NoError(t, err)

	raw := string(doc)
	assert.True(t, strings.HasPrefix(raw, "%!PS-Adobe-3.0 EPSF-3.0\n"))
	assert.Contains(t, raw, "%%BoundingBox: 0 0 100 100\n")
	assert.Contains(t, raw, "%%LanguageLevel: 3\n")
	assert.Contains(t, raw, "/q { gsave } bind def\n")
	assert.Contains(t, raw, "/f { eofill } bind def\n")
	// the flip into the y-down space all backends share
	assert.Contains(t, raw, "0 100 t\n1 -1 s\n")
	assert.True(t, strings.HasSuffix(raw, "showpage\n%%EOF\n"))
}

func TestBackgroundRect(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(100, qrimage.White, ""))
	doc, err := b.End()
	require.NoError(t, err)

	raw := string(doc)
	assert.Contains(t, raw, "1 1 1 rgb\n")
	assert.Contains(t, raw, "newpath\n0 0 m\n100 0 l\n100 100 l\n0 100 l\nz\nf\n")
}

func TestTransparentBackgroundSkipped(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(50, qrimage.Alpha{Opacity: 0, Base: qrimage.White}, ""))
	doc, err := b.End()
	require.NoError(t, err)

	raw := string(doc)
	assert.NotContains(t, raw, "newpath")
	assert.NotContains(t, raw, "rgb\n")
}

func TestTranslucentBackgroundPaintsOpaquely(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(50, qrimage.Alpha{Opacity: 40, Base: qrimage.RGB{255, 0, 0}}, ""))
	doc, err := b.End()
	require.NoError(t, err)
	assert.Contains(t, string(doc), "1 0 0 rgb\n")
}

func TestColorOperators(t *testing.T) {
	square := qrimage.Rect(0, 0, 10, 10)
	for _, tt := range []struct {
		name  string
		color qrimage.Color
		want  string
	}{
		{"black", qrimage.Black, "0 0 0 rgb\n"},
		{"rgb channels", qrimage.RGB{16, 32, 48}, "0.063 0.125 0.188 rgb\n"},
		{"cmyk native", qrimage.CMYK{C: 0, M: 100, Y: 100, K: 0}, "0 1 1 0 cmyk\n"},
		{"gray native", qrimage.Gray{50}, "0.5 gray\n"},
		{"alpha unwraps", qrimage.Alpha{Opacity: 50, Base: qrimage.RGB{255, 0, 0}}, "1 0 0 rgb\n"},
	} {
		b := newBackend(t)
		require.NoError(t, b.Begin(20, qrimage.Alpha{Opacity: 0, Base: qrimage.White}, ""))
		require.NoError(t, b.DrawPath(square, tt.color))
		doc, err := b.End()
		require.NoError(t, err)
		assert.Contains(t, string(doc), tt.want, tt.name)
	}
}

func TestPathBody(t *testing.T) {
	var p qrimage.Path
	p.Move(0, 0)
	p.Line(10, 0)
	p.Line(10.5004, 10)
	p.Cubic(0, 0.125, 4, 5.5555, 6, 7)
	p.Close()

	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.Alpha{Opacity: 0, Base: qrimage.White}, ""))
	require.NoError(t, b.DrawPath(p, qrimage.Black))
	doc, err := b.End()
	require.NoError(t, err)

	assert.Contains(t, string(doc),
		"newpath\n0 0 m\n10 0 l\n10.5 10 l\n0 0.125 4 5.556 6 7 c\nz\nf\n")
}

func TestArcsBecomeCurves(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.Alpha{Opacity: 0, Base: qrimage.White}, ""))
	require.NoError(t, b.DrawPath(qrimage.Circle(10, 10, 5), qrimage.Black))
	doc, err := b.End()
	require.NoError(t, err)

	curves := 0
	for _, line := range docLines(doc) {
		if strings.HasSuffix(line, " c") {
			curves++
		}
	}
	assert.Equal(t, 4, curves)
}

func TestTransformOperators(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.White, ""))
	require.NoError(t, b.Scale(0.75))
	require.NoError(t, b.Translate(4, -2.25))
	require.NoError(t, b.Rotate(-90))
	doc, err := b.End()
	require.NoError(t, err)

	raw := string(doc)
	assert.Contains(t, raw, "q 0.75 0.75 s\n")
	assert.Contains(t, raw, "q 4 -2.25 t\n")
	assert.Contains(t, raw, "q -90 r\n")
	assertStateBalanced(t, doc)
}

func TestPushPopBalance(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.White, ""))
	require.NoError(t, b.Push())
	require.NoError(t, b.Scale(2))
	require.NoError(t, b.Scale(3))
	require.NoError(t, b.Pop())
	require.NoError(t, b.Translate(1, 1))
	doc, err := b.End()
	require.NoError(t, err)
	assertStateBalanced(t, doc)
}

func TestPopWithoutPushFails(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.White, ""))
	assert.ErrorIs(t, b.Pop(), qrimage.ErrNotInitialized)
}

func TestAxialShading(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(200, qrimage.White, ""))
	grad := qrimage.Gradient{Type: qrimage.Horizontal, Start: qrimage.Black, End: qrimage.White}
	require.NoError(t, b.DrawPathGradient(qrimage.Rect(0, 20, 100, 50), grad, 0, 20, 100, 50))
	doc, err := b.End()
	require.NoError(t, err)

	raw := string(doc)
	assert.Contains(t, raw, "eoclip\n")
	assert.Contains(t, raw, "/ShadingType 2 ")
	assert.Contains(t, raw, "/Coords [0 20 100 20] ")
	assert.Contains(t, raw, "/C0 [0 0 0] ")
	assert.Contains(t, raw, "/C1 [1 1 1] ")
	assert.Contains(t, raw, "shfill\n")
	assertStateBalanced(t, doc)
}

func TestRadialShading(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(200, qrimage.White, ""))
	grad := qrimage.Gradient{Type: qrimage.Radial, Start: qrimage.Black, End: qrimage.White}
	require.NoError(t, b.DrawPathGradient(qrimage.Rect(0, 0, 100, 50), grad, 0, 0, 100, 50))
	doc, err := b.End()
	require.NoError(t, err)

	raw := string(doc)
	assert.Contains(t, raw, "/ShadingType 3 ")
	assert.Contains(t, raw, "/Coords [50 25 0 50 25 50] ")
}

func TestLinkAccepted(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.White, "https://example.org"))
	doc, err := b.End()
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "example.org")
}

func TestLifecycleErrors(t *testing.T) {
	b := newBackend(t)
	assert.ErrorIs(t, b.Scale(2), qrimage.ErrNotInitialized)
	assert.ErrorIs(t, b.Push(), qrimage.ErrNotInitialized)
	_, err := b.End()
	assert.ErrorIs(t, err, qrimage.ErrNotInitialized)

	require.NoError(t, b.Begin(20, qrimage.White, ""))
	assert.ErrorIs(t, b.Begin(20, qrimage.White, ""), qrimage.ErrNotInitialized)
	require.Error(t, b.Begin(20, qrimage.White, ""))
}

func TestBeginRejectsInvalidSize(t *testing.T) {
	b := newBackend(t)
	require.Error(t, b.Begin(0, qrimage.White, ""))
}

func TestUnsupportedOperation(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.White, ""))
	err := b.DrawPath(qrimage.Path{qrimage.MoveTo{0, 0}, nil}, qrimage.Black)
	assert.ErrorIs(t, err, qrimage.ErrUnsupportedOperation)
}

func TestReuseAfterEnd(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Begin(20, qrimage.White, ""))
	_, err := b.End()
	require.NoError(t, err)

	require.NoError(t, b.Begin(30, qrimage.White, ""))
	doc, err := b.End()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(doc), "%!PS-Adobe-3.0 EPSF-3.0"))
	assert.Contains(t, string(doc), "%%BoundingBox: 0 0 30 30\n")
}
