package marquee

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Composer renders a wrapped Document into one tall pixel buffer.
//
// Every line is centered horizontally and drawn left to right with the
// exact advances the Measurer produced; layout and render share one width
// function so wrapping and centering cannot drift apart.
type Composer struct {
	Measurer   *Measurer
	Text       color.Color
	Background color.Color
}

// Compose renders doc onto a new canvas of doc.Width x doc.TotalHeight()
// pixels filled with the background color.
func (c *Composer) Compose(doc Document) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, doc.Width, doc.TotalHeight()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)

	y := 0
	for _, line := range doc.Lines {
		if strings.TrimSpace(line.Text) != "" {
			x := (doc.Width - c.Measurer.Width(line.Text)) / 2
			c.drawLine(canvas, x, y, line.Text)
		}
		y += doc.LineHeight
	}
	return canvas
}

// drawLine renders one line of text with the top of the line at y.
func (c *Composer) drawLine(dst *image.RGBA, x, y int, text string) {
	m := c.Measurer
	baseline := y + m.Ascent()
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.Text),
		Face: m.face(),
	}

	for _, r := range text {
		switch Classify(r) {
		case Ignorable:
			continue
		case Pictographic:
			if m.Emoji != nil {
				if bm, ok := m.Emoji.Render(r, NativeEmojiSize); ok {
					x += c.compositeEmoji(dst, x, y, bm)
					continue
				}
				// Missing bitmap: draw the text-font glyph (likely a
				// placeholder) but keep the pictographic advance so the
				// line width still matches the Measurer.
				drawer.Dot = fixed.P(x, baseline)
				drawer.DrawString(string(r))
				x += m.EmojiAdvance()
				continue
			}
			// No emoji source at all: the whole code point goes through
			// the regular glyph path, measurement included.
		}
		drawer.Dot = fixed.P(x, baseline)
		drawer.DrawString(string(r))
		x += m.regularAdvance(r)
	}
}

// compositeEmoji blends a native-resolution emoji bitmap onto the canvas,
// scaled to the text size. The bitmap is placed on a padded scratch
// surface first so downscaling never clips the glyph; the paste position
// compensates for the scaled padding so the emoji's visual center lands
// on the text line. Returns the horizontal advance.
func (c *Composer) compositeEmoji(dst *image.RGBA, x, y int, bm *image.RGBA) int {
	m := c.Measurer

	scratchSize := NativeEmojiSize + 2*EmojiPad
	scratch := image.NewRGBA(image.Rect(0, 0, scratchSize, scratchSize))
	pasteRect := image.Rect(EmojiPad, EmojiPad, EmojiPad+NativeEmojiSize, EmojiPad+NativeEmojiSize)
	draw.Draw(scratch, pasteRect, bm, bm.Bounds().Min, draw.Src)

	scale := m.EmojiScale()
	scaled := m.EmojiAdvance()
	out := image.NewRGBA(image.Rect(0, 0, scaled, scaled))
	xdraw.CatmullRom.Scale(out, out.Bounds(), scratch, scratch.Bounds(), xdraw.Src, nil)

	pasteY := y - int(float64(EmojiPad)*scale)
	draw.Draw(dst, image.Rect(x, pasteY, x+scaled, pasteY+scaled), out, image.Point{}, draw.Over)
	return scaled
}
