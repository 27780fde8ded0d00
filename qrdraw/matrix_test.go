package qrdraw

import "testing"

func TestBitMatrix(t *testing.T) {
	m := NewBitMatrix(21)
	if m.Size() != 21 {
		t.Fatalf("size = %d, want 21", m.Size())
	}
	m.Set(3, 4, true)
	if !m.At(3, 4) {
		t.Error("module (3,4) should be dark")
	}
	if m.At(4, 3) {
		t.Error("module (4,3) should be light")
	}
	m.Set(3, 4, false)
	if m.At(3, 4) {
		t.Error("module (3,4) should be cleared")
	}
}

func TestBitMatrixOutOfRange(t *testing.T) {
	m := NewBitMatrix(21)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {21, 0}, {0, 21}} {
		if m.At(p[0], p[1]) {
			t.Errorf("At(%d, %d) should read as light", p[0], p[1])
		}
	}
}

func TestInsideEye(t *testing.T) {
	for _, tt := range []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{6, 6, true},
		{7, 0, false},
		{0, 7, false},
		{13, 0, false},
		{14, 0, true},
		{20, 6, true},
		{0, 14, true},
		{6, 20, true},
		{14, 14, false}, // the bottom right corner has no finder
		{20, 20, false},
		{10, 10, false},
	} {
		if got := insideEye(tt.x, tt.y, 21); got != tt.want {
			t.Errorf("insideEye(%d, %d, 21) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestEyeMasked(t *testing.T) {
	m := NewBitMatrix(21)
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			m.Set(x, y, true)
		}
	}
	masked := eyeMasked{m}
	if masked.At(0, 0) {
		t.Error("finder module should be hidden")
	}
	if masked.At(15, 2) {
		t.Error("top right finder module should be hidden")
	}
	if !masked.At(10, 10) {
		t.Error("data module should stay visible")
	}
	if masked.Size() != 21 {
		t.Errorf("masked size = %d, want 21", masked.Size())
	}
}
