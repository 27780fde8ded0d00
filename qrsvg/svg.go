// Implements the SVG 1.1 backend, writing symbols as compact
// vector documents through an XML token encoder.
package qrsvg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gweber/okqr/qrimage"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// assert interface conformance
var _ qrimage.Backend = (*Backend)(nil)

// Backend builds one SVG document at a time. All emission state is held by
// the instance: the XML encoder cursor, the per-level count of open groups,
// and the gradient id counter. End serializes the document and resets the
// instance for the next one.
type Backend struct {
	buf       *bytes.Buffer
	enc       *xml.Encoder // nil while no document is in progress
	stack     []int        // open groups per nesting level
	gradients int          // gradient ids handed out so far
	link      bool         // a hyperlink wrapper is open
}

// New returns an SVG backend. The error keeps the constructor shape shared
// with the engine-backed backends; the XML encoder is part of the runtime
// and cannot be missing, so the error is always nil here.
func New() (*Backend, error) {
	return &Backend{}, nil
}

func (b *Backend) inProgress(op string) error {
	if b.enc == nil {
		return fmt.Errorf("%s: %w", op, qrimage.ErrNotInitialized)
	}
	return nil
}

func (b *Backend) Begin(size int, background qrimage.Color, link string) error {
	if b.enc != nil {
		return fmt.Errorf("document already in progress: %w", qrimage.ErrNotInitialized)
	}
	if size <= 0 {
		return fmt.Errorf("invalid document size %d", size)
	}
	b.buf = &bytes.Buffer{}
	b.buf.WriteString(xml.Header)
	b.enc = xml.NewEncoder(b.buf)
	b.stack = []int{0}
	b.gradients = 0
	b.link = link != ""

	dim := strconv.Itoa(size)
	err := b.enc.EncodeToken(elem("svg",
		attr("xmlns", svgNamespace),
		attr("version", "1.1"),
		attr("width", dim),
		attr("height", dim),
		attr("viewBox", "0 0 "+dim+" "+dim),
	))
	if err != nil {
		return err
	}
	if b.link {
		if err = b.enc.EncodeToken(elem("a", attr("href", link))); err != nil {
			return err
		}
	}

	alpha := qrimage.Opacity(background)
	if alpha == 0 {
		return nil
	}
	attrs := []xml.Attr{
		attr("x", "0"),
		attr("y", "0"),
		attr("width", dim),
		attr("height", dim),
		attr("fill", hexColor(background)),
	}
	if alpha < 100 {
		attrs = append(attrs, attr("fill-opacity", fmtOpacity(alpha)))
	}
	return b.writeElement(elem("rect", attrs...))
}

func (b *Backend) Scale(factor float64) error {
	if err := b.inProgress("scale"); err != nil {
		return err
	}
	return b.openGroup(attr("transform", "scale("+fmtNum(factor)+")"))
}

func (b *Backend) Translate(dx, dy float64) error {
	if err := b.inProgress("translate"); err != nil {
		return err
	}
	return b.openGroup(attr("transform", "translate("+fmtNum(dx)+" "+fmtNum(dy)+")"))
}

func (b *Backend) Rotate(degrees int) error {
	if err := b.inProgress("rotate"); err != nil {
		return err
	}
	return b.openGroup(attr("transform", "rotate("+strconv.Itoa(degrees)+")"))
}

// openGroup opens one <g> at the current nesting level.
func (b *Backend) openGroup(attrs ...xml.Attr) error {
	if err := b.enc.EncodeToken(elem("g", attrs...)); err != nil {
		return err
	}
	b.stack[len(b.stack)-1]++
	return nil
}

func (b *Backend) Push() error {
	if err := b.inProgress("push"); err != nil {
		return err
	}
	if err := b.enc.EncodeToken(elem("g")); err != nil {
		return err
	}
	// the new level already counts the group opened above
	b.stack = append(b.stack, 1)
	return nil
}

func (b *Backend) Pop() error {
	if err := b.inProgress("pop"); err != nil {
		return err
	}
	if len(b.stack) == 1 {
		// the root level belongs to Begin/End
		return fmt.Errorf("pop without matching push: %w", qrimage.ErrNotInitialized)
	}
	top := len(b.stack) - 1
	if err := b.closeGroups(b.stack[top]); err != nil {
		return err
	}
	b.stack = b.stack[:top]
	return nil
}

func (b *Backend) closeGroups(n int) error {
	for ; n > 0; n-- {
		if err := b.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "g"}}); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) DrawPath(path qrimage.Path, color qrimage.Color) error {
	if err := b.inProgress("draw path"); err != nil {
		return err
	}
	d, err := pathData(path)
	if err != nil {
		return err
	}
	attrs := []xml.Attr{
		attr("fill-rule", "evenodd"),
		attr("d", d),
		attr("fill", hexColor(color)),
	}
	if alpha := qrimage.Opacity(color); alpha < 100 {
		attrs = append(attrs, attr("fill-opacity", fmtOpacity(alpha)))
	}
	return b.writeElement(elem("path", attrs...))
}

func (b *Backend) DrawPathGradient(path qrimage.Path, grad qrimage.Gradient, x, y, width, height float64) error {
	if err := b.inProgress("draw path"); err != nil {
		return err
	}
	id, err := b.registerGradient(grad, x, y, width, height)
	if err != nil {
		return err
	}
	d, err := pathData(path)
	if err != nil {
		return err
	}
	return b.writeElement(elem("path",
		attr("fill-rule", "evenodd"),
		attr("d", d),
		attr("fill", "url(#"+id+")"),
	))
}

// registerGradient emits a defs block holding the gradient definition and
// returns its fresh document-unique identifier.
func (b *Backend) registerGradient(grad qrimage.Gradient, x, y, width, height float64) (string, error) {
	b.gradients++
	id := fmt.Sprintf("g%d", b.gradients)

	if err := b.enc.EncodeToken(elem("defs")); err != nil {
		return "", err
	}
	var start xml.StartElement
	if grad.Type == qrimage.Radial {
		cx, cy, r := qrimage.RadialCoords(x, y, width, height)
		start = elem("radialGradient",
			attr("gradientUnits", "userSpaceOnUse"),
			attr("cx", fmtNum(cx)),
			attr("cy", fmtNum(cy)),
			attr("r", fmtNum(r)),
			attr("id", id),
		)
	} else {
		x1, y1, x2, y2 := grad.Type.LinearCoords(x, y, width, height)
		start = elem("linearGradient",
			attr("gradientUnits", "userSpaceOnUse"),
			attr("x1", fmtNum(x1)),
			attr("y1", fmtNum(y1)),
			attr("x2", fmtNum(x2)),
			attr("y2", fmtNum(y2)),
			attr("id", id),
		)
	}
	if err := b.enc.EncodeToken(start); err != nil {
		return "", err
	}
	if err := b.writeStop("0%", grad.Start); err != nil {
		return "", err
	}
	if err := b.writeStop("100%", grad.End); err != nil {
		return "", err
	}
	if err := b.enc.EncodeToken(start.End()); err != nil {
		return "", err
	}
	if err := b.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "defs"}}); err != nil {
		return "", err
	}
	return id, nil
}

func (b *Backend) writeStop(offset string, c qrimage.Color) error {
	attrs := []xml.Attr{
		attr("offset", offset),
		attr("stop-color", hexColor(c)),
	}
	// stop-opacity is written whenever the color type carries an opacity,
	// even a full one; solid fills only write it below 100.
	if _, ok := c.(qrimage.AlphaColor); ok {
		attrs = append(attrs, attr("stop-opacity", fmtOpacity(qrimage.Opacity(c))))
	}
	return b.writeElement(elem("stop", attrs...))
}

func (b *Backend) End() ([]byte, error) {
	if err := b.inProgress("end"); err != nil {
		return nil, err
	}
	// innermost level first, the root level last
	for level := len(b.stack) - 1; level >= 0; level-- {
		if err := b.closeGroups(b.stack[level]); err != nil {
			return nil, err
		}
	}
	if b.link {
		if err := b.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "a"}}); err != nil {
			return nil, err
		}
	}
	if err := b.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "svg"}}); err != nil {
		return nil, err
	}
	if err := b.enc.Flush(); err != nil {
		return nil, err
	}
	out := b.buf.Bytes()
	b.buf = nil
	b.enc = nil
	b.stack = nil
	b.gradients = 0
	b.link = false
	return out, nil
}

func (b *Backend) writeElement(start xml.StartElement) error {
	if err := b.enc.EncodeToken(start); err != nil {
		return err
	}
	return b.enc.EncodeToken(start.End())
}

// pathData serializes the operation sequence into a d attribute, one token
// per operation with no separator in between.
func pathData(p qrimage.Path) (string, error) {
	var sb strings.Builder
	for _, op := range p {
		switch op := op.(type) {
		case qrimage.MoveTo:
			fmt.Fprintf(&sb, "M%s %s", fmtNum(op.X), fmtNum(op.Y))
		case qrimage.LineTo:
			fmt.Fprintf(&sb, "L%s %s", fmtNum(op.X), fmtNum(op.Y))
		case qrimage.ArcTo:
			fmt.Fprintf(&sb, "A%s %s %s %d %d %s %s",
				fmtNum(op.Rx), fmtNum(op.Ry), fmtNum(op.Rotation),
				flag(op.LargeArc), flag(op.Sweep),
				fmtNum(op.X), fmtNum(op.Y))
		case qrimage.CubicTo:
			fmt.Fprintf(&sb, "C%s %s %s %s %s %s",
				fmtNum(op[0].X), fmtNum(op[0].Y),
				fmtNum(op[1].X), fmtNum(op[1].Y),
				fmtNum(op[2].X), fmtNum(op[2].Y))
		case qrimage.Close:
			sb.WriteByte('Z')
		default:
			return "", fmt.Errorf("%w: %T", qrimage.ErrUnsupportedOperation, op)
		}
	}
	return sb.String(), nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// fmtNum rounds to 3 decimals and prints the shortest representation,
// without trailing zeros.
func fmtNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func fmtOpacity(alpha int) string {
	return strconv.FormatFloat(float64(alpha)/100, 'f', -1, 64)
}

func hexColor(c qrimage.Color) string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func elem(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
