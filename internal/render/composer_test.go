package render

import (
	"bytes"
	"testing"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/world"
)

const roomMap = "rrrrr\nr___r\nr_b_r\nr___r\nrrrrr"

func newGrid(t *testing.T, layout world.Layout) *world.Grid {
	t.Helper()
	g, err := world.Parse(roomMap, layout)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func TestRenderIdempotent(t *testing.T) {
	layout := world.Layout{OriginX: 0, OriginY: 399, CellSize: 10, Palette: world.DefaultPalette()}
	g := newGrid(t, layout)
	overlay := DefaultOverlay()
	c := NewComposer(&overlay)

	buf := framebuffer.New(900, 450)
	c.Render(buf, g)
	first := bytes.Clone(buf.Pix)
	c.Render(buf, g)

	if !bytes.Equal(first, buf.Pix) {
		t.Error("second Render() changed the buffer")
	}
}

func TestRenderLeavesUncoveredPixels(t *testing.T) {
	layout := world.Layout{OriginX: 2, OriginY: 2, CellSize: 2, Palette: world.DefaultPalette()}
	g := newGrid(t, layout)
	c := NewComposer(nil)

	buf := framebuffer.New(20, 20)
	junk := framebuffer.RGBA(1, 2, 3, 4)
	framebuffer.FillRect(buf, 0, 0, 20, junk)

	f := c.Render(buf, g)
	if !f.Grid || f.Overlay {
		t.Errorf("Render() = %+v, want grid only", f)
	}

	if got := buf.At(0, 0); got != junk {
		t.Errorf("At(0, 0) = %v, want previous contents %v", got, junk)
	}
	if got := buf.At(12, 12); got != junk {
		t.Errorf("At(12, 12) = %v, want previous contents %v", got, junk)
	}
	if got := buf.At(2, 2); got != layout.Palette.Wall {
		t.Errorf("At(2, 2) = %v, want wall", got)
	}

	// Player at (2.5, 1) cells -> pixel (2+5, 2+2)
	if got := buf.At(7, 4); got != layout.Palette.Marker {
		t.Errorf("At(7, 4) = %v, want marker", got)
	}
}

func TestRenderSkipsGridThatDoesNotFit(t *testing.T) {
	layout := world.Layout{OriginX: 0, OriginY: 0, CellSize: 10, Palette: world.DefaultPalette()}
	g := newGrid(t, layout)
	c := NewComposer(nil)

	buf := framebuffer.New(40, 40)
	f := c.Render(buf, g)
	if f.Grid {
		t.Error("Render() drew a grid larger than the buffer")
	}
	if !bytes.Equal(buf.Pix, make([]byte, len(buf.Pix))) {
		t.Error("Render() wrote into a buffer it could not fit")
	}
}

func TestOverlayFits(t *testing.T) {
	o := DefaultOverlay()
	tests := []struct {
		name          string
		width, height int
		want          bool
	}{
		{"window", 900, 450, true},
		{"exact", 101, 100, true},
		{"too narrow", 100, 100, false},
		{"too short", 200, 99, false},
	}

	for _, tt := range tests {
		if got := o.Fits(framebuffer.New(tt.width, tt.height)); got != tt.want {
			t.Errorf("%s: Fits(%dx%d) = %v, want %v", tt.name, tt.width, tt.height, got, tt.want)
		}
	}

	wide := Overlay{Steps: 3, StartX: 0, HalfWidth: 1}
	if wide.Fits(framebuffer.New(10, 10)) {
		t.Error("Fits() = true for a column left of the buffer")
	}
}

func TestOverlayDrawsTriangle(t *testing.T) {
	o := DefaultOverlay()
	buf := framebuffer.New(120, 100)
	o.Draw(buf)

	for i := 0; i < o.Steps; i++ {
		x := o.StartX + i
		top := (buf.Height - (i + 1)) / 2
		if got := buf.At(x, top); got != o.Color {
			t.Errorf("column %d top pixel = %v, want overlay", x, got)
		}
		if top > 0 {
			if got := buf.At(x, top-1); got == o.Color {
				t.Errorf("column %d painted above its top", x)
			}
		}
	}
	if got := buf.At(0, 50); got == o.Color {
		t.Error("column 0 should be untouched")
	}
}
