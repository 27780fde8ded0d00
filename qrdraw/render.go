// Given an encoded symbol matrix, implements how to draw it as a
// document. This requires a backend implementing the actual draw
// operations, such as the SVG writer or the rasterizer.
package qrdraw

import (
	"fmt"

	"github.com/gweber/okqr/logging"
	"github.com/gweber/okqr/qrimage"
)

// smallestSymbol is the side of a version 1 symbol; anything below
// cannot carry the three finder patterns.
const smallestSymbol = 21

// Render draws the matrix through the backend and returns the document
// it produces. The module field is drawn first, then the three eyes,
// each translated to its corner and turned to face it.
func Render(m Matrix, style Style, backend qrimage.Backend) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("nil matrix")
	}
	modules := m.Size()
	if modules < smallestSymbol {
		return nil, fmt.Errorf("matrix size %d below the smallest symbol", modules)
	}
	style = style.withDefaults()

	logging.Logger().Debug("rendering symbol",
		"modules", modules, "size", style.Size, "backend", fmt.Sprintf("%T", backend))

	if err := backend.Begin(style.Size, style.Fill.Background, style.Link); err != nil {
		return nil, err
	}
	if err := backend.Scale(float64(style.Size) / float64(modules+2*style.Margin)); err != nil {
		return nil, err
	}
	if err := backend.Translate(float64(style.Margin), float64(style.Margin)); err != nil {
		return nil, err
	}

	field := style.Module.Path(eyeMasked{m})
	if style.Fill.Gradient != nil {
		span := float64(modules)
		if err := backend.DrawPathGradient(field, *style.Fill.Gradient, 0, 0, span, span); err != nil {
			return nil, err
		}
	} else {
		if err := backend.DrawPath(field, style.Fill.Foreground); err != nil {
			return nil, err
		}
	}

	if err := drawEyes(modules, style, backend); err != nil {
		return nil, err
	}
	return backend.End()
}

func drawEyes(modules int, style Style, backend qrimage.Backend) error {
	span := float64(modules)
	corners := []struct {
		x, y    float64
		degrees int
		fill    EyeFill
	}{
		{3.5, 3.5, 0, style.Fill.TopLeftEye},
		{span - 3.5, 3.5, 90, style.Fill.TopRightEye},
		{3.5, span - 3.5, -90, style.Fill.BottomLeftEye},
	}
	for _, corner := range corners {
		if err := drawEye(corner.x, corner.y, corner.degrees, corner.fill, style, backend); err != nil {
			return err
		}
	}
	return nil
}

func drawEye(x, y float64, degrees int, fill EyeFill, style Style, backend qrimage.Backend) error {
	if err := backend.Push(); err != nil {
		return err
	}
	if err := backend.Translate(x, y); err != nil {
		return err
	}
	if degrees != 0 {
		if err := backend.Rotate(degrees); err != nil {
			return err
		}
	}
	if err := backend.DrawPath(style.Eye.ExternalPath(), style.Fill.resolve(fill.External)); err != nil {
		return err
	}
	if err := backend.DrawPath(style.Eye.InternalPath(), style.Fill.resolve(fill.Internal)); err != nil {
		return err
	}
	return backend.Pop()
}
