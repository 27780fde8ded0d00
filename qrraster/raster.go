// Implements the raster backend, drawing symbols into an RGBA image
// by wrapping rasterx. End returns the image PNG encoded.
package qrraster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/gweber/okqr/qrimage"
)

var _ qrimage.Backend = (*Backend)(nil) // assert interface conformance

// Backend rasterizes drawing calls into pixels. A nil image means no
// document is in progress.
type Backend struct {
	img    *image.RGBA
	filler *rasterx.Filler
	cur    Matrix2D
	stack  []Matrix2D // saved transforms, one per open level
}

// New returns a ready raster backend. The error is always nil: the
// rasterizer is compiled in, but the signature is shared with backends
// whose engine can be missing.
func New() (*Backend, error) {
	return &Backend{}, nil
}

func (b *Backend) inProgress(op string) error {
	if b.img == nil {
		return fmt.Errorf("%s: %w", op, qrimage.ErrNotInitialized)
	}
	return nil
}

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// Begin allocates a size by size pixel image and paints the
// background. The link is ignored, pixels carry no hyperlink. A fully
// transparent background leaves the image cleared; a translucent one
// is painted at its opacity, PNG keeps the alpha channel.
func (b *Backend) Begin(size int, background qrimage.Color, link string) error {
	if b.img != nil {
		return fmt.Errorf("document already in progress: %w", qrimage.ErrNotInitialized)
	}
	if size <= 0 {
		return fmt.Errorf("invalid document size %d", size)
	}
	b.img = image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, b.img, b.img.Bounds())
	b.filler = rasterx.NewFiller(size, size, scanner)
	b.filler.SetWinding(false)
	b.cur = Identity
	b.stack = nil

	if opacity := qrimage.Opacity(background); opacity != 0 {
		c := rasterx.ApplyOpacity(opaque(background), float64(opacity)/100)
		draw.Draw(b.img, b.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return nil
}

func (b *Backend) Scale(factor float64) error {
	if err := b.inProgress("scale"); err != nil {
		return err
	}
	b.cur = b.cur.Scale(factor)
	return nil
}

func (b *Backend) Translate(dx, dy float64) error {
	if err := b.inProgress("translate"); err != nil {
		return err
	}
	b.cur = b.cur.Translate(dx, dy)
	return nil
}

func (b *Backend) Rotate(degrees int) error {
	if err := b.inProgress("rotate"); err != nil {
		return err
	}
	b.cur = b.cur.Rotate(degrees)
	return nil
}

func (b *Backend) Push() error {
	if err := b.inProgress("push"); err != nil {
		return err
	}
	b.stack = append(b.stack, b.cur)
	return nil
}

func (b *Backend) Pop() error {
	if err := b.inProgress("pop"); err != nil {
		return err
	}
	// the root transform belongs to Begin/End
	if len(b.stack) == 0 {
		return fmt.Errorf("pop without matching push: %w", qrimage.ErrNotInitialized)
	}
	b.cur = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *Backend) DrawPath(path qrimage.Path, col qrimage.Color) error {
	if err := b.inProgress("draw path"); err != nil {
		return err
	}
	opacity := float64(qrimage.Opacity(col)) / 100
	b.filler.Scanner.SetColor(rasterx.ApplyOpacity(opaque(col), opacity))
	if err := b.tracePath(path); err != nil {
		return err
	}
	b.filler.Draw()
	b.filler.Clear()
	return nil
}

func (b *Backend) DrawPathGradient(path qrimage.Path, grad qrimage.Gradient, x, y, width, height float64) error {
	if err := b.inProgress("draw gradient path"); err != nil {
		return err
	}
	b.filler.Scanner.SetColor(b.colorFunction(grad, x, y, width, height))
	if err := b.tracePath(path); err != nil {
		return err
	}
	b.filler.Draw()
	b.filler.Clear()
	return nil
}

// colorFunction builds the rasterx gradient for the supplied box. The
// geometry is given in drawing coordinates; the current transform is
// handed to the rasterizer so it lands on the same pixels as the path.
func (b *Backend) colorFunction(grad qrimage.Gradient, x, y, width, height float64) interface{} {
	var points [5]float64
	isRadial := grad.Type == qrimage.Radial
	if isRadial {
		cx, cy, r := qrimage.RadialCoords(x, y, width, height)
		points = [5]float64{cx, cy, cx, cy, r}
	} else {
		x1, y1, x2, y2 := grad.Type.LinearCoords(x, y, width, height)
		points = [5]float64{x1, y1, x2, y2, 0}
	}
	rg := rasterx.Gradient{
		Points: points,
		Stops: []rasterx.GradStop{
			{StopColor: opaque(grad.Start), Offset: 0, Opacity: float64(qrimage.Opacity(grad.Start)) / 100},
			{StopColor: opaque(grad.End), Offset: 1, Opacity: float64(qrimage.Opacity(grad.End)) / 100},
		},
		Matrix:   rasterx.Matrix2D(b.cur),
		Spread:   rasterx.PadSpread,
		Units:    rasterx.UserSpaceOnUse,
		IsRadial: isRadial,
	}
	rg.Bounds.X, rg.Bounds.Y = x, y
	rg.Bounds.W, rg.Bounds.H = width, height
	return rg.GetColorFunction(1.0)
}

func (b *Backend) tracePath(path qrimage.Path) error {
	for _, op := range qrimage.ReplaceArcs(path) {
		switch op := op.(type) {
		case qrimage.MoveTo:
			x, y := b.cur.apply(op.X, op.Y)
			b.filler.Start(toFixedP(x, y))
		case qrimage.LineTo:
			x, y := b.cur.apply(op.X, op.Y)
			b.filler.Line(toFixedP(x, y))
		case qrimage.CubicTo:
			c1x, c1y := b.cur.apply(op[0].X, op[0].Y)
			c2x, c2y := b.cur.apply(op[1].X, op[1].Y)
			x, y := b.cur.apply(op[2].X, op[2].Y)
			b.filler.CubeBezier(toFixedP(c1x, c1y), toFixedP(c2x, c2y), toFixedP(x, y))
		case qrimage.Close:
			b.filler.Stop(true)
		default:
			return fmt.Errorf("%w: %T", qrimage.ErrUnsupportedOperation, op)
		}
	}
	return nil
}

// End encodes the image as PNG, returns the bytes and resets the
// backend for the next Begin.
func (b *Backend) End() ([]byte, error) {
	if err := b.inProgress("end"); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.img); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	b.img = nil
	b.filler = nil
	b.cur = Matrix2D{}
	b.stack = nil
	return buf.Bytes(), nil
}

// opaque resolves the color channels, opacity is applied separately.
func opaque(c qrimage.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
