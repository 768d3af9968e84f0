package framebuffer

import (
	"bytes"
	"testing"
)

var (
	grey = RGBA(0x3e, 0x42, 0x4b, 0xff)
	red  = RGBA(0xdd, 0x40, 0x3a, 0xff)
)

func TestNewBuffer(t *testing.T) {
	b := New(10, 5)
	if len(b.Pix) != 10*5*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(b.Pix), 200)
	}
	if b.Stride() != 40 {
		t.Errorf("Stride() = %d, want 40", b.Stride())
	}
	if got := b.Bounds().Dx(); got != 10 {
		t.Errorf("Bounds().Dx() = %d, want 10", got)
	}
	if got := b.Offset(3, 2); got != 2*40+3*4 {
		t.Errorf("Offset(3, 2) = %d, want %d", got, 92)
	}
}

func TestFillRectWritesExactBytes(t *testing.T) {
	b := New(10, 10)
	FillRect(b, 0, 0, 2, grey)

	want := make([]byte, len(b.Pix))
	for row := 0; row < 2; row++ {
		for i := 0; i < 8; i += 4 {
			copy(want[row*40+i:], grey[:])
		}
	}

	if !bytes.Equal(b.Pix, want) {
		t.Errorf("FillRect wrote unexpected bytes")
		for row := 0; row < 3; row++ {
			t.Logf("row %d: % x", row, b.Pix[row*40:row*40+12])
		}
	}
}

func TestFillRectOffset(t *testing.T) {
	b := New(8, 8)
	FillRect(b, 3, 4, 3, red)

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			inside := x >= 3 && x < 6 && y >= 4 && y < 7
			got := b.At(x, y)
			if inside && got != red {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, got, red)
			}
			if !inside && got != (Color{}) {
				t.Errorf("At(%d, %d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestFillRectOverwrites(t *testing.T) {
	b := New(4, 4)
	FillRect(b, 0, 0, 4, red)
	FillRect(b, 1, 1, 1, grey)

	if got := b.At(1, 1); got != grey {
		t.Errorf("At(1, 1) = %v, want %v", got, grey)
	}
	if got := b.At(2, 2); got != red {
		t.Errorf("At(2, 2) = %v, want %v", got, red)
	}
}

func TestFillCenteredColumn(t *testing.T) {
	tests := []struct {
		name      string
		centerX   int
		halfWidth int
		length    int
		wantLeft  int
		wantTop   int
	}{
		{"single pixel", 4, 0, 1, 4, 4},
		{"even remainder", 4, 0, 4, 4, 3},
		{"wide strip", 5, 2, 3, 3, 3},
		{"full height", 1, 0, 10, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(10, 10)
			FillCenteredColumn(b, tt.centerX, tt.halfWidth, tt.length, red)

			width := 2*tt.halfWidth + 1
			for y := 0; y < b.Height; y++ {
				for x := 0; x < b.Width; x++ {
					inside := x >= tt.wantLeft && x < tt.wantLeft+width &&
						y >= tt.wantTop && y < tt.wantTop+tt.length
					got := b.At(x, y)
					if inside != (got == red) {
						t.Errorf("At(%d, %d) = %v, inside = %v", x, y, got, inside)
					}
				}
			}
		})
	}
}

func TestCenteredColumnsFormTriangle(t *testing.T) {
	b := New(12, 12)
	for i := 0; i < 10; i++ {
		FillCenteredColumn(b, 1+i, 0, i+1, red)
	}

	for i := 0; i < 10; i++ {
		x := 1 + i
		count := 0
		for y := 0; y < b.Height; y++ {
			if b.At(x, y) == red {
				count++
			}
		}
		if count != i+1 {
			t.Errorf("column %d has %d painted pixels, want %d", x, count, i+1)
		}
	}
	if got := b.At(0, 6); got != (Color{}) {
		t.Errorf("At(0, 6) = %v, want untouched", got)
	}
}
