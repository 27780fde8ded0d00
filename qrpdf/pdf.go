// Implements the PDF backend, drawing symbols as one-page vector
// documents by wrapping github.com/jung-kurt/gofpdf.
package qrpdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gweber/okqr/qrimage"
)

var _ qrimage.Backend = (*Backend)(nil) // assert interface conformance

// Backend writes drawing calls into a gofpdf document. A nil engine
// means no document is in progress.
type Backend struct {
	pdf   *gofpdf.Fpdf
	stack []int
}

// New probes the PDF engine once and returns a ready backend.
func New() (*Backend, error) {
	probe := gofpdf.New("P", "pt", "A4", "")
	if probe.Err() {
		return nil, fmt.Errorf("pdf engine unavailable: %v: %w", probe.Error(), qrimage.ErrMissingCapability)
	}
	return &Backend{}, nil
}

func (b *Backend) inProgress(op string) error {
	if b.pdf == nil {
		return fmt.Errorf("%s: %w", op, qrimage.ErrNotInitialized)
	}
	return nil
}

// Begin opens a single page of size by size points. A non-empty link
// becomes a page-wide hyperlink annotation. The background rectangle
// is skipped when fully transparent.
func (b *Backend) Begin(size int, background qrimage.Color, link string) error {
	if b.pdf != nil {
		return fmt.Errorf("document already in progress: %w", qrimage.ErrNotInitialized)
	}
	if size <= 0 {
		return fmt.Errorf("invalid document size %d", size)
	}
	dim := float64(size)
	b.pdf = gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: dim, Ht: dim},
	})
	b.pdf.SetMargins(0, 0, 0)
	b.pdf.SetAutoPageBreak(false, 0)
	b.pdf.AddPage()
	b.stack = []int{0}

	if link != "" {
		b.pdf.LinkString(0, 0, dim, dim, link)
	}
	if opacity := qrimage.Opacity(background); opacity != 0 {
		r, g, bl := background.RGB()
		b.pdf.SetFillColor(int(r), int(g), int(bl))
		b.pdf.SetAlpha(float64(opacity)/100, "")
		b.pdf.Rect(0, 0, dim, dim, "F")
	}
	return nil
}

func (b *Backend) Scale(factor float64) error {
	if err := b.inProgress("scale"); err != nil {
		return err
	}
	b.pdf.TransformBegin()
	b.pdf.TransformScale(factor*100, factor*100, 0, 0)
	b.stack[len(b.stack)-1]++
	return nil
}

func (b *Backend) Translate(dx, dy float64) error {
	if err := b.inProgress("translate"); err != nil {
		return err
	}
	b.pdf.TransformBegin()
	b.pdf.TransformTranslate(dx, dy)
	b.stack[len(b.stack)-1]++
	return nil
}

// Rotate turns the space clockwise on the page; the engine counts
// degrees counter-clockwise, hence the sign flip.
func (b *Backend) Rotate(degrees int) error {
	if err := b.inProgress("rotate"); err != nil {
		return err
	}
	b.pdf.TransformBegin()
	b.pdf.TransformRotate(-float64(degrees), 0, 0)
	b.stack[len(b.stack)-1]++
	return nil
}

func (b *Backend) Push() error {
	if err := b.inProgress("push"); err != nil {
		return err
	}
	b.pdf.TransformBegin()
	// the new level already counts the state opened above
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
		b.pdf.TransformEnd()
	}
}

func (b *Backend) DrawPath(path qrimage.Path, col qrimage.Color) error {
	if err := b.inProgress("draw path"); err != nil {
		return err
	}
	r, g, bl := col.RGB()
	b.pdf.SetFillColor(int(r), int(g), int(bl))
	b.pdf.SetAlpha(float64(qrimage.Opacity(col))/100, "")
	if err := b.tracePath(path); err != nil {
		return err
	}
	b.pdf.DrawPath("f*")
	return nil
}

// DrawPathGradient clips to the path and paints the engine's native
// shading over the supplied box. Each subpath is clipped and shaded on
// its own, the engine clips single polygons only; the shading repeats
// identically over the box, so disjoint subpaths compose seamlessly.
func (b *Backend) DrawPathGradient(path qrimage.Path, grad qrimage.Gradient, x, y, width, height float64) error {
	if err := b.inProgress("draw gradient path"); err != nil {
		return err
	}
	polygons, err := flatten(path)
	if err != nil {
		return err
	}
	b.pdf.SetAlpha(1, "")
	r1, g1, b1 := grad.Start.RGB()
	r2, g2, b2 := grad.End.RGB()
	for _, polygon := range polygons {
		b.pdf.ClipPolygon(polygon, false)
		if grad.Type == qrimage.Radial {
			b.pdf.RadialGradient(x, y, width, height,
				int(r1), int(g1), int(b1), int(r2), int(g2), int(b2),
				0.5, 0.5, 0.5, 0.5, 0.5)
		} else {
			x1, y1, x2, y2 := grad.Type.LinearCoords(0, 0, 1, 1)
			b.pdf.LinearGradient(x, y, width, height,
				int(r1), int(g1), int(b1), int(r2), int(g2), int(b2),
				x1, y1, x2, y2)
		}
		b.pdf.ClipEnd()
	}
	return nil
}

func (b *Backend) tracePath(path qrimage.Path) error {
	for _, op := range qrimage.ReplaceArcs(path) {
		switch op := op.(type) {
		case qrimage.MoveTo:
			b.pdf.MoveTo(op.X, op.Y)
		case qrimage.LineTo:
			b.pdf.LineTo(op.X, op.Y)
		case qrimage.CubicTo:
			b.pdf.CurveBezierCubicTo(op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case qrimage.Close:
			b.pdf.ClosePath()
		default:
			return fmt.Errorf("%w: %T", qrimage.ErrUnsupportedOperation, op)
		}
	}
	return nil
}

// End closes the remaining levels, renders the document and returns
// its bytes. The backend is reset for the next Begin.
func (b *Backend) End() ([]byte, error) {
	if err := b.inProgress("end"); err != nil {
		return nil, err
	}
	for level := len(b.stack) - 1; level >= 0; level-- {
		b.closeGroups(b.stack[level])
	}
	var buf bytes.Buffer
	err := b.pdf.Output(&buf)
	b.pdf = nil
	b.stack = nil
	if err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
