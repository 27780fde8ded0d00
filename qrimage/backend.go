// Package qrimage defines the drawing model shared by the okqr output
// backends: colors, paths, gradients and the Backend interface through
// which a symbol renderer drives them.
package qrimage

// Backend builds one image document at a time from an ordered sequence of
// drawing commands. A Backend is stateful: Begin opens a document, the
// structural and draw calls append to it, End serializes it to bytes and
// resets the instance so it can be reused for the next document.
//
// Backends are not safe for concurrent use; concurrent documents need
// independent instances.
type Backend interface {
	// Begin opens a document of size×size units. The background is omitted
	// when its resolved opacity is zero. A non-empty link wraps the whole
	// content in a hyperlink where the format supports one.
	// Begin fails with ErrNotInitialized when a document is already open.
	Begin(size int, background Color, link string) error

	// Scale opens a grouping element applying a uniform scale.
	Scale(factor float64) error

	// Translate opens a grouping element applying a translation.
	Translate(dx, dy float64) error

	// Rotate opens a grouping element applying a rotation, in degrees.
	Rotate(degrees int) error

	// Push opens a new nesting level. Every grouping element opened after
	// it belongs to that level until the matching Pop.
	Push() error

	// Pop closes every grouping element opened at the current level, in
	// reverse order, and discards the level. Popping the root level is a
	// programming error and fails fast.
	Pop() error

	// DrawPath fills the path with a solid color. The element is
	// self-contained: it never changes the grouping state.
	DrawPath(path Path, color Color) error

	// DrawPathGradient fills the path with a gradient spanning the given
	// box, in current user-space coordinates.
	DrawPathGradient(path Path, grad Gradient, x, y, width, height float64) error

	// End closes every open grouping element, finalizes the document and
	// returns its bytes. The instance is reset for reuse.
	End() ([]byte, error)
}
