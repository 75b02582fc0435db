package marquee

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// stubEmoji renders every pictographic code point as a solid red square.
type stubEmoji struct{}

func (stubEmoji) Render(r rune, sizePx int) (*image.RGBA, bool) {
	img := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0xFF, A: 0xFF}), image.Point{}, draw.Src)
	return img, true
}

// noEmoji reports every code point as unavailable.
type noEmoji struct{}

func (noEmoji) Render(rune, int) (*image.RGBA, bool) { return nil, false }

// testMeasurer uses the built-in 7px-advance bitmap font so widths are
// deterministic.
func testMeasurer(emoji EmojiSource) *Measurer {
	return &Measurer{Face: basicfont.Face7x13, FontSize: 28, Emoji: emoji}
}

func TestRuneWidthRegular(t *testing.T) {
	m := testMeasurer(nil)
	for _, r := range []rune{'A', 'z', '0', ' ', '.'} {
		if got := m.RuneWidth(r); got != 7 {
			t.Errorf("RuneWidth(%q) = %d, want 7", r, got)
		}
	}
}

func TestRuneWidthIgnorable(t *testing.T) {
	m := testMeasurer(stubEmoji{})
	if got := m.RuneWidth('‍'); got != 0 {
		t.Errorf("RuneWidth(ZWJ) = %d, want 0", got)
	}
	if got := m.RuneWidth('️'); got != 0 {
		t.Errorf("RuneWidth(VS16) = %d, want 0", got)
	}
}

func TestEmojiAdvance(t *testing.T) {
	m := testMeasurer(stubEmoji{})

	// floor((109 + 2*20) * 28/109) = floor(38.27) = 38
	if got := m.EmojiAdvance(); got != 38 {
		t.Errorf("EmojiAdvance() = %d, want 38", got)
	}
	if got := m.RuneWidth(0x1F600); got != 38 {
		t.Errorf("RuneWidth(emoji) = %d, want 38", got)
	}
}

// With no emoji source, pictographic code points measure as regular
// glyphs, mirroring how they will be rendered.
func TestEmojiWidthWithoutSource(t *testing.T) {
	m := testMeasurer(nil)
	if got := m.RuneWidth(0x1F600); got != 7 {
		t.Errorf("RuneWidth(emoji, no source) = %d, want 7 (regular fallback)", got)
	}
}

func TestWidthSumsPerGlyph(t *testing.T) {
	m := testMeasurer(stubEmoji{})

	tests := []struct {
		name string
		s    string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "abc", 21},
		{"with space", "a b", 21},
		{"emoji between letters", "a\U0001F600b", 7 + 38 + 7},
		{"ignorables vanish", "a️‍b", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Width(tt.s); got != tt.want {
				t.Errorf("Width(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

// A nil face must not fail measurement; the built-in bitmap metric takes
// over.
func TestNilFaceFallback(t *testing.T) {
	m := &Measurer{FontSize: 28}
	if got := m.RuneWidth('A'); got != 7 {
		t.Errorf("RuneWidth with nil face = %d, want 7", got)
	}
	if m.Ascent() <= 0 {
		t.Error("Ascent with nil face should be positive")
	}
}
