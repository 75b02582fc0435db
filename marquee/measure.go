package marquee

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Emoji bitmaps are produced at a fixed native resolution and scaled down
// to the text size. The padding around the native bitmap avoids clipping
// during compositing and is included in the advance so wrapping stays
// consistent with rendering.
const (
	// NativeEmojiSize is the native emoji bitmap edge length in pixels.
	NativeEmojiSize = 109
	// EmojiPad is the transparent padding around the native bitmap.
	EmojiPad = 20
)

// EmojiSource renders a pictographic code point as a color bitmap.
type EmojiSource interface {
	// Render returns an RGBA bitmap of sizePx x sizePx pixels for r, or
	// ok=false when the glyph (or the whole source) is unavailable.
	Render(r rune, sizePx int) (*image.RGBA, bool)
}

// Measurer computes rendered pixel widths of code points and strings.
//
// Regular widths come from the glyph advance of Face at the configured
// size. Pictographic widths use a fixed linear scale of the native emoji
// bitmap, deliberately not the true glyph metrics: centering behavior is
// defined relative to this approximation. Widths are summed per code
// point with no kerning.
type Measurer struct {
	// Face provides regular glyph metrics. When nil, or when it cannot
	// resolve a glyph, the built-in fixed-width bitmap font is used so
	// layout never fails outright.
	Face font.Face

	// FontSize is the target line size in pixels.
	FontSize int

	// Emoji is the pictographic bitmap source. When nil, pictographic
	// code points are measured (and later rendered) as regular glyphs.
	Emoji EmojiSource
}

// face returns the metrics face, falling back to the built-in bitmap font.
func (m *Measurer) face() font.Face {
	if m.Face != nil {
		return m.Face
	}
	return basicfont.Face7x13
}

// EmojiScale is the uniform factor applied to native emoji bitmaps.
func (m *Measurer) EmojiScale() float64 {
	return float64(m.FontSize) / float64(NativeEmojiSize)
}

// EmojiAdvance is the horizontal advance of one pictographic code point,
// the native bitmap plus its padding scaled to the text size.
func (m *Measurer) EmojiAdvance() int {
	return int(float64(NativeEmojiSize+2*EmojiPad) * m.EmojiScale())
}

// regularAdvance returns the advance of r through the text font, falling
// back through the built-in bitmap font and finally its '?' glyph.
func (m *Measurer) regularAdvance(r rune) int {
	if adv, ok := m.face().GlyphAdvance(r); ok {
		return adv.Ceil()
	}
	if adv, ok := basicfont.Face7x13.GlyphAdvance(r); ok {
		return adv.Ceil()
	}
	adv, _ := basicfont.Face7x13.GlyphAdvance('?')
	return adv.Ceil()
}

// RuneWidth returns the rendered width of a single code point in pixels.
func (m *Measurer) RuneWidth(r rune) int {
	switch Classify(r) {
	case Ignorable:
		return 0
	case Pictographic:
		if m.Emoji != nil {
			return m.EmojiAdvance()
		}
	}
	return m.regularAdvance(r)
}

// Width returns the total rendered width of s in pixels: the sum of its
// constituent glyph widths.
func (m *Measurer) Width(s string) int {
	total := 0
	for _, r := range s {
		total += m.RuneWidth(r)
	}
	return total
}

// Ascent is the distance from the top of a line to the text baseline.
func (m *Measurer) Ascent() int {
	return m.face().Metrics().Ascent.Ceil()
}
