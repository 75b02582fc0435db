package marquee

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/font"
)

// Display is the sink that scroll frames are presented to. Both calls are
// synchronous: they complete before the next frame is prepared.
type Display interface {
	// Present blits a frame sized exactly to the physical display.
	Present(img image.Image) error
	// Clear fills the whole display with a flat color.
	Clear(c color.Color) error
}

// Options configures the layout and animation of a Manager.
type Options struct {
	Width  int // display width in pixels
	Height int // display height in pixels

	FontSize    int // text size in pixels
	LineSpacing int // extra pixels between lines
	Margin      int // pixels kept clear on each side of the display

	StepPx        int           // pixels scrolled per frame
	FrameInterval time.Duration // delay between frames
	LoopPause     time.Duration // extra delay inserted at the wrap-around
	ScrollPadding int           // off-screen distance scrolled past the canvas end
}

// withDefaults fills unset options with the values tuned for the
// Waveshare 2-inch panel.
func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = 320
	}
	if o.Height == 0 {
		o.Height = 240
	}
	if o.FontSize == 0 {
		o.FontSize = 28
	}
	if o.LineSpacing == 0 {
		o.LineSpacing = 6
	}
	if o.Margin == 0 {
		o.Margin = 10
	}
	if o.StepPx == 0 {
		o.StepPx = 2
	}
	if o.FrameInterval == 0 {
		o.FrameInterval = 30 * time.Millisecond
	}
	if o.LoopPause == 0 {
		o.LoopPause = time.Second
	}
	if o.ScrollPadding == 0 {
		o.ScrollPadding = o.Height
	}
	return o
}

// session is one text submission bound to one canvas and one animation
// loop. At most one session is active at any instant.
type session struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{} // closed after teardown (display cleared)
	bg     color.Color
}

// Manager owns the single active scroll session. Submitting new text
// cancels the running session, waits for its teardown, and only then
// starts the replacement, so two sessions never race on the display.
type Manager struct {
	display Display
	face    font.Face
	emoji   EmojiSource
	opts    Options
	log     *slog.Logger

	mu     sync.Mutex
	active *session
}

// NewManager creates a session manager rendering through face and emoji
// (emoji may be nil) onto display. log may be nil to use slog.Default.
func NewManager(display Display, face font.Face, emoji EmojiSource, opts Options, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		display: display,
		face:    face,
		emoji:   emoji,
		opts:    opts.withDefaults(),
		log:     log,
	}
}

// measurer builds the shared width function for one session.
func (m *Manager) measurer() *Measurer {
	return &Measurer{Face: m.face, FontSize: m.opts.FontSize, Emoji: m.emoji}
}

// Submit starts a new scroll session for text, cancelling any session in
// progress and waiting for its teardown first. It returns the new
// session's id.
func (m *Manager) Submit(text string, fg, bg color.Color) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	meas := m.measurer()
	doc := meas.Layout(text, m.opts.Width, m.opts.Margin, m.opts.LineSpacing)
	comp := &Composer{Measurer: meas, Text: fg, Background: bg}
	canvas := comp.Compose(doc)

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
		bg:     bg,
	}
	m.active = s
	m.log.Info("scroll session started",
		"session", s.id,
		"lines", len(doc.Lines),
		"canvas_height", canvas.Bounds().Dy())

	go m.run(ctx, s, canvas)
	return s.id
}

// ShowStatus cancels any running session and renders text once, centered
// in the viewport, without scrolling. Used for startup banners.
func (m *Manager) ShowStatus(text string, fg, bg color.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	meas := m.measurer()
	doc := meas.Layout(text, m.opts.Width, m.opts.Margin, m.opts.LineSpacing)
	comp := &Composer{Measurer: meas, Text: fg, Background: bg}
	canvas := comp.Compose(doc)

	offset := (canvas.Bounds().Dy() - m.opts.Height) / 2
	frame := ExtractFrame(canvas, offset, m.opts.Width, m.opts.Height, bg)
	return m.display.Present(frame)
}

// Stop cancels the active session, if any, and waits for its teardown.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// stopLocked requests cancellation of the active session and blocks until
// it acknowledges teardown. Callers must hold m.mu.
func (m *Manager) stopLocked() {
	if m.active == nil {
		return
	}
	m.active.cancel()
	<-m.active.done
	m.log.Info("scroll session stopped", "session", m.active.id)
	m.active = nil
}

// run is the animation loop of one session. Cancellation is observed at
// exactly one point per iteration, the frame-interval wait, so no frame
// is presented after cancellation is seen; teardown clears the display.
func (m *Manager) run(ctx context.Context, s *session, canvas *image.RGBA) {
	defer close(s.done)

	o := m.opts
	start := -o.Height                            // fully below the viewport
	end := canvas.Bounds().Dy() + o.ScrollPadding // fully above the viewport
	offset := start

	for {
		frame := ExtractFrame(canvas, offset, o.Width, o.Height, s.bg)
		if err := m.display.Present(frame); err != nil {
			m.log.Error("present failed", "session", s.id, "err", err)
		}

		pause := o.FrameInterval
		next, wrapped := nextOffset(offset, o.StepPx, start, end)
		offset = next
		if wrapped {
			// One breathing gap before the roll repeats.
			pause += o.LoopPause
		}

		select {
		case <-ctx.Done():
			if err := m.display.Clear(s.bg); err != nil {
				m.log.Error("clear failed", "session", s.id, "err", err)
			}
			return
		case <-time.After(pause):
		}
	}
}

// nextOffset advances the scroll position by one step. Offsets grow as
// the canvas climbs through the viewport; once the offset reaches end the
// scroll wraps back to start, and wrapped reports that the discontinuity
// happened on this step.
func nextOffset(offset, step, start, end int) (next int, wrapped bool) {
	offset += step
	if offset >= end {
		return start, true
	}
	return offset, false
}
