package marquee

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"
)

// fakeDisplay records Present and Clear calls.
type fakeDisplay struct {
	mu       sync.Mutex
	presents int
	clears   int
	last     image.Image
}

func (f *fakeDisplay) Present(img image.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presents++
	f.last = img
	return nil
}

func (f *fakeDisplay) Clear(color.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

func (f *fakeDisplay) counts() (presents, clears int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents, f.clears
}

func testManager(d Display) *Manager {
	opts := Options{
		Width:         32,
		Height:        24,
		FontSize:      13,
		LineSpacing:   2,
		Margin:        2,
		StepPx:        4,
		FrameInterval: time.Millisecond,
		LoopPause:     time.Millisecond,
		ScrollPadding: 8,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(d, basicfont.Face7x13, nil, opts, log)
}

// waitFor polls until cond holds or the deadline expires.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

func TestSubmitPresentsFrames(t *testing.T) {
	d := &fakeDisplay{}
	m := testManager(d)

	id := m.Submit("hello world", color.White, color.Black)
	if id == "" {
		t.Fatal("Submit returned an empty session id")
	}

	waitFor(t, func() bool { p, _ := d.counts(); return p >= 3 }, "no frames presented")

	d.mu.Lock()
	b := d.last.Bounds()
	d.mu.Unlock()
	if b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("presented frame is %v, want 32x24", b)
	}

	m.Stop()
}

// Cancellation results in no further presents after the suspension point
// and exactly one clear.
func TestStopClearsOnce(t *testing.T) {
	d := &fakeDisplay{}
	m := testManager(d)

	m.Submit("some scrolling text", color.White, color.Black)
	waitFor(t, func() bool { p, _ := d.counts(); return p >= 2 }, "no frames presented")

	m.Stop()
	presentsAtStop, clears := d.counts()
	if clears != 1 {
		t.Errorf("clears after Stop = %d, want exactly 1", clears)
	}

	time.Sleep(20 * time.Millisecond)
	presents, clears := d.counts()
	if presents != presentsAtStop {
		t.Errorf("frames kept arriving after Stop: %d -> %d", presentsAtStop, presents)
	}
	if clears != 1 {
		t.Errorf("clears grew after Stop: %d", clears)
	}
}

// A new submission supersedes the running session: the old one is torn
// down (display cleared) before the new one starts.
func TestSubmitSupersedes(t *testing.T) {
	d := &fakeDisplay{}
	m := testManager(d)

	first := m.Submit("first", color.White, color.Black)
	waitFor(t, func() bool { p, _ := d.counts(); return p >= 1 }, "first session never presented")

	second := m.Submit("second", color.White, color.Black)
	if first == second {
		t.Error("superseding session reused the old session id")
	}

	_, clears := d.counts()
	if clears != 1 {
		t.Errorf("clears after supersede = %d, want 1 (old session teardown)", clears)
	}

	m.Stop()
	_, clears = d.counts()
	if clears != 2 {
		t.Errorf("clears after final Stop = %d, want 2", clears)
	}
}

func TestStopIdleIsNoop(t *testing.T) {
	d := &fakeDisplay{}
	m := testManager(d)

	m.Stop()
	if p, c := d.counts(); p != 0 || c != 0 {
		t.Errorf("Stop on idle manager touched the display: presents %d, clears %d", p, c)
	}
}

func TestShowStatusPresentsOnce(t *testing.T) {
	d := &fakeDisplay{}
	m := testManager(d)

	if err := m.ShowStatus("Ready", color.White, color.Black); err != nil {
		t.Fatalf("ShowStatus: %v", err)
	}
	p, _ := d.counts()
	if p != 1 {
		t.Fatalf("presents after ShowStatus = %d, want 1", p)
	}

	time.Sleep(20 * time.Millisecond)
	if p2, _ := d.counts(); p2 != 1 {
		t.Errorf("ShowStatus kept animating: presents = %d", p2)
	}
}

// The offset walk visits every multiple of the step in strictly
// increasing order, then wraps back to the start exactly once per cycle.
func TestNextOffsetFullCycle(t *testing.T) {
	const (
		start = -24
		end   = 100 + 8 // canvas height plus padding
		step  = 4
	)

	offset := start
	prev := start
	wraps := 0
	for i := 0; i < 1000 && wraps == 0; i++ {
		next, wrapped := nextOffset(offset, step, start, end)
		if wrapped {
			if next != start {
				t.Fatalf("wrap reset to %d, want %d", next, start)
			}
			wraps++
			break
		}
		if next != prev+step {
			t.Fatalf("offset jumped from %d to %d, want strict +%d steps", prev, next, step)
		}
		if next >= end {
			t.Fatalf("offset %d reached end %d without wrapping", next, end)
		}
		prev = next
		offset = next
	}
	if wraps != 1 {
		t.Fatal("scroll cycle never wrapped")
	}
}
