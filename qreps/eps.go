// Implements the Encapsulated PostScript backend, writing symbols as
// plain EPSF-3.0 text with level 3 shading for gradients.
package qreps

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/gweber/okqr/qrimage"
)

var _ qrimage.Backend = (*Backend)(nil)

// prolog shortens the operators the document body uses. One letter per
// drawing op keeps the emitted body close to the SVG path syntax.
const prolog = `/q { gsave } bind def
/Q { grestore } bind def
/s { scale } bind def
/t { translate } bind def
/r { rotate } bind def
/m { moveto } bind def
/l { lineto } bind def
/c { curveto } bind def
/z { closepath } bind def
/f { eofill } bind def
/rgb { setrgbcolor } bind def
/cmyk { setcmykcolor } bind def
/gray { setgray } bind def
`

// Backend writes Encapsulated PostScript documents. A nil buffer means
// no document is in progress.
type Backend struct {
	buf   *bytes.Buffer
	stack []int
}

// New returns a ready EPS backend. The error is always nil: the text
// emitter has no engine that could be missing, but the signature is
// shared with backends that do.
func New() (*Backend, error) {
	return &Backend{}, nil
}

func (b *Backend) inProgress(op string) error {
	if b.buf == nil {
		return fmt.Errorf("%s: %w", op, qrimage.ErrNotInitialized)
	}
	return nil
}

// Begin starts a size by size point document. The link is ignored, EPS
// has no hyperlink notion. The background is skipped when fully
// transparent; any other opacity paints it opaquely, the format has no
// alpha channel.
func (b *Backend) Begin(size int, background qrimage.Color, link string) error {
	if b.buf != nil {
		return fmt.Errorf("document already in progress: %w", qrimage.ErrNotInitialized)
	}
	if size <= 0 {
		return fmt.Errorf("invalid document size %d", size)
	}

	b.buf = &bytes.Buffer{}
	b.stack = []int{0}

	b.buf.WriteString("%!PS-Adobe-3.0 EPSF-3.0\n")
	fmt.Fprintf(b.buf, "%%%%BoundingBox: 0 0 %d %d\n", size, size)
	b.buf.WriteString("%%LanguageLevel: 3\n")
	b.buf.WriteString("%%BeginProlog\n")
	b.buf.WriteString(prolog)
	b.buf.WriteString("%%EndProlog\n")
	// flip into the top-left, y-down space the other backends use
	fmt.Fprintf(b.buf, "0 %d t\n1 -1 s\n", size)

	if qrimage.Opacity(background) != 0 {
		b.writeColor(background)
		fmt.Fprintf(b.buf, "newpath\n0 0 m\n%d 0 l\n%d %d l\n0 %d l\nz\nf\n", size, size, size, size)
	}
	return nil
}

func (b *Backend) Scale(factor float64) error {
	if err := b.inProgress("scale"); err != nil {
		return err
	}
	fmt.Fprintf(b.buf, "q %s %s s\n", fmtNum(factor), fmtNum(factor))
	b.stack[len(b.stack)-1]++
	return nil
}

func (b *Backend) Translate(dx, dy float64) error {
	if err := b.inProgress("translate"); err != nil {
		return err
	}
	fmt.Fprintf(b.buf, "q %s %s t\n", fmtNum(dx), fmtNum(dy))
	b.stack[len(b.stack)-1]++
	return nil
}

// Rotate turns the coordinate space by whole degrees, clockwise on the
// page. The y flip from Begin makes the PostScript rotation direction
// match the other backends.
func (b *Backend) Rotate(degrees int) error {
	if err := b.inProgress("rotate"); err != nil {
		return err
	}
	fmt.Fprintf(b.buf, "q %d r\n", degrees)
	b.stack[len(b.stack)-1]++
	return nil
}

func (b *Backend) Push() error {
	if err := b.inProgress("push"); err != nil {
		return err
	}
	b.buf.WriteString("q\n")
	// the new level already counts the state saved above
	b.stack = append(b.stack, 1)
	return nil
}

func (b *Backend) Pop() error {
	if err := b.inProgress("pop"); err != nil {
		return err
	}
	// the root level belongs to Begin/End
	if len(b.stack) == 1 {
		return fmt.Errorf("pop without matching push: %w", qrimage.ErrNotInitialized)
	}
	b.closeGroups(b.stack[len(b.stack)-1])
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *Backend) closeGroups(n int) {
	for i := 0; i < n; i++ {
		b.buf.WriteString("Q\n")
	}
}

func (b *Backend) DrawPath(path qrimage.Path, color qrimage.Color) error {
	if err := b.inProgress("draw path"); err != nil {
		return err
	}
	b.writeColor(color)
	if err := b.writePath(path); err != nil {
		return err
	}
	b.buf.WriteString("f\n")
	return nil
}

// DrawPathGradient clips to the path and paints a level 3 shading over
// the supplied box.
func (b *Backend) DrawPathGradient(path qrimage.Path, grad qrimage.Gradient, x, y, width, height float64) error {
	if err := b.inProgress("draw gradient path"); err != nil {
		return err
	}
	b.buf.WriteString("q\n")
	if err := b.writePath(path); err != nil {
		return err
	}
	b.buf.WriteString("eoclip\n")
	b.writeShading(grad, x, y, width, height)
	b.buf.WriteString("Q\n")
	return nil
}

// End closes the remaining levels, innermost first, finishes the
// document and returns it. The backend is reset for the next Begin.
func (b *Backend) End() ([]byte, error) {
	if err := b.inProgress("end"); err != nil {
		return nil, err
	}
	for level := len(b.stack) - 1; level >= 0; level-- {
		b.closeGroups(b.stack[level])
	}
	b.buf.WriteString("showpage\n%%EOF\n")
	doc := b.buf.Bytes()
	b.buf = nil
	b.stack = nil
	return doc, nil
}

func (b *Backend) writePath(path qrimage.Path) error {
	b.buf.WriteString("newpath\n")
	for _, op := range qrimage.ReplaceArcs(path) {
		switch op := op.(type) {
		case qrimage.MoveTo:
			fmt.Fprintf(b.buf, "%s %s m\n", fmtNum(op.X), fmtNum(op.Y))
		case qrimage.LineTo:
			fmt.Fprintf(b.buf, "%s %s l\n", fmtNum(op.X), fmtNum(op.Y))
		case qrimage.CubicTo:
			fmt.Fprintf(b.buf, "%s %s %s %s %s %s c\n",
				fmtNum(op[0].X), fmtNum(op[0].Y),
				fmtNum(op[1].X), fmtNum(op[1].Y),
				fmtNum(op[2].X), fmtNum(op[2].Y))
		case qrimage.Close:
			b.buf.WriteString("z\n")
		default:
			return fmt.Errorf("%w: %T", qrimage.ErrUnsupportedOperation, op)
		}
	}
	return nil
}

// writeColor selects the native PostScript color operator for the
// concrete type. Opacity wrappers paint at their base value.
func (b *Backend) writeColor(color qrimage.Color) {
	if a, ok := color.(qrimage.Alpha); ok {
		color = a.Base
	}
	switch c := color.(type) {
	case qrimage.CMYK:
		fmt.Fprintf(b.buf, "%s %s %s %s cmyk\n",
			fmtNum(float64(c.C)/100), fmtNum(float64(c.M)/100),
			fmtNum(float64(c.Y)/100), fmtNum(float64(c.K)/100))
	case qrimage.Gray:
		fmt.Fprintf(b.buf, "%s gray\n", fmtNum(float64(c.Level)/100))
	default:
		r, g, bl := color.RGB()
		fmt.Fprintf(b.buf, "%s %s %s rgb\n",
			fmtNum(float64(r)/255), fmtNum(float64(g)/255), fmtNum(float64(bl)/255))
	}
}

func (b *Backend) writeShading(grad qrimage.Gradient, x, y, width, height float64) {
	var coords string
	shadingType := 2
	if grad.Type == qrimage.Radial {
		shadingType = 3
		cx, cy, r := qrimage.RadialCoords(x, y, width, height)
		coords = fmt.Sprintf("%s %s 0 %s %s %s",
			fmtNum(cx), fmtNum(cy), fmtNum(cx), fmtNum(cy), fmtNum(r))
	} else {
		x1, y1, x2, y2 := grad.Type.LinearCoords(x, y, width, height)
		coords = fmt.Sprintf("%s %s %s %s",
			fmtNum(x1), fmtNum(y1), fmtNum(x2), fmtNum(y2))
	}
	fmt.Fprintf(b.buf, "<< /ShadingType %d /ColorSpace /DeviceRGB /Coords [%s] "+
		"/Function << /FunctionType 2 /Domain [0 1] /C0 [%s] /C1 [%s] /N 1 >> "+
		"/Extend [true true] >> shfill\n",
		shadingType, coords, rgbVector(grad.Start), rgbVector(grad.End))
}

// rgbVector renders a color as the three channel floats a shading
// function expects.
func rgbVector(c qrimage.Color) string {
	r, g, b := c.RGB()
	return fmt.Sprintf("%s %s %s",
		fmtNum(float64(r)/255), fmtNum(float64(g)/255), fmtNum(float64(b)/255))
}

// fmtNum rounds to three decimals and drops trailing zeros.
func fmtNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
