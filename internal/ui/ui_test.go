package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr/testr"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/input"
	"github.com/samdwyer/tilegrid/internal/movement"
)

func newSimScreen(t *testing.T, cols, rows int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(screen.Close)
	return screen, sim
}

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want input.State
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.State{Quit: true}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), input.State{Quit: true}},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input.State{Quit: true}},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.State{Directions: movement.Directions{Up: true}}},
		{"vi down", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), input.State{Directions: movement.Directions{Down: true}}},
		{"resize", tcell.NewEventResize(80, 24), input.State{Resized: true}},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), input.State{}},
	}

	for _, tt := range tests {
		if got := translateEvent(tt.ev); got != tt.want {
			t.Errorf("%s: translateEvent() = %+v, want %+v", tt.name, got, tt.want)
		}
	}

	if got := translateEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)); !got.Left {
		t.Errorf("translateEvent('a') = %+v, want Left", got)
	}
	if got := translateEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)); !got.Right {
		t.Errorf("translateEvent(right) = %+v, want Right", got)
	}
}

func TestRendererHalfBlocks(t *testing.T) {
	screen, sim := newSimScreen(t, 4, 3)
	r := NewRenderer(screen)

	w, h := r.BufferSize()
	if w != 4 || h != 6 {
		t.Fatalf("BufferSize() = %dx%d, want 4x6", w, h)
	}

	buf := framebuffer.New(w, h)
	red := framebuffer.RGBA(0xdd, 0x40, 0x3a, 0xff)
	blue := framebuffer.RGBA(0x05, 0x29, 0x9e, 0xff)
	framebuffer.FillRect(buf, 1, 2, 1, red)
	framebuffer.FillRect(buf, 1, 3, 1, blue)
	r.Render(buf)

	mainc, _, style, _ := sim.GetContent(1, 1)
	if mainc != upperHalf {
		t.Errorf("GetContent(1, 1) rune = %q, want %q", mainc, upperHalf)
	}
	fg, bg, _ := style.Decompose()
	if fg != toTCell(red) {
		t.Errorf("foreground = %v, want %v", fg, toTCell(red))
	}
	if bg != toTCell(blue) {
		t.Errorf("background = %v, want %v", bg, toTCell(blue))
	}
}

// scriptedHandler records key input from Run and stops on quit.
type scriptedHandler struct {
	updates []input.State
	renders []framebuffer.Buffer
	quit    bool
}

func (s *scriptedHandler) Update(_ context.Context, in input.State) bool {
	if in.Resized {
		return true
	}
	s.updates = append(s.updates, in)
	s.quit = s.quit || in.Quit
	return true
}

func (s *scriptedHandler) Render(buf framebuffer.Buffer) {
	s.renders = append(s.renders, buf)
}

func (s *scriptedHandler) Running() bool {
	return !s.quit
}

func TestRunFeedsEvents(t *testing.T) {
	screen, sim := newSimScreen(t, 8, 4)
	h := &scriptedHandler{}

	if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}
	if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	if err := Run(context.Background(), screen, h, testr.New(t)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(h.updates) != 2 {
		t.Fatalf("Run() delivered %d updates, want 2", len(h.updates))
	}
	if !h.updates[0].Down || h.updates[0].Elapsed != 0 {
		t.Errorf("first update = %+v, want a discrete Down press", h.updates[0])
	}
	if !h.updates[1].Quit {
		t.Errorf("second update = %+v, want Quit", h.updates[1])
	}
	if len(h.renders) == 0 {
		t.Fatal("Run() never rendered")
	}
	if w, ht := h.renders[0].Width, h.renders[0].Height; w != 8 || ht != 8 {
		t.Errorf("first render buffer = %dx%d, want 8x8", w, ht)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	screen, _ := newSimScreen(t, 8, 4)
	h := &scriptedHandler{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, screen, h, testr.New(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
}

func TestRunStopsWhenContextEndsWhileWaiting(t *testing.T) {
	screen, _ := newSimScreen(t, 8, 4)
	h := &scriptedHandler{}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- Run(ctx, screen, h, testr.New(t))
	}()

	// No terminal events arrive; only the cancellation can end Run
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want %v", err, context.Canceled)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after the context was cancelled")
	}
}
