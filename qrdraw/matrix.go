package qrdraw

// Matrix is the module grid a symbol encoder produces. Size is the
// number of modules per side, At reports whether the module at (x, y)
// is dark.
type Matrix interface {
	Size() int
	At(x, y int) bool
}

// BitMatrix is a Matrix backed by a flat slice. Use NewBitMatrix, the
// zero value is empty.
type BitMatrix struct {
	size int
	bits []bool
}

func NewBitMatrix(size int) *BitMatrix {
	return &BitMatrix{size: size, bits: make([]bool, size*size)}
}

func (m *BitMatrix) Size() int { return m.size }

// Set marks the module at (x, y).
func (m *BitMatrix) Set(x, y int, dark bool) {
	m.bits[y*m.size+x] = dark
}

// At reports the module at (x, y); coordinates outside the grid read
// as light.
func (m *BitMatrix) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.bits[y*m.size+x]
}

// insideEye reports whether a module belongs to one of the three
// finder regions, which the renderer paints through the eye shape
// instead of the module shape.
func insideEye(x, y, size int) bool {
	if x < 7 && y < 7 {
		return true
	}
	if x >= size-7 && y < 7 {
		return true
	}
	return x < 7 && y >= size-7
}

// eyeMasked hides the finder regions of a matrix.
type eyeMasked struct {
	Matrix
}

func (m eyeMasked) At(x, y int) bool {
	if insideEye(x, y, m.Matrix.Size()) {
		return false
	}
	return m.Matrix.At(x, y)
}
