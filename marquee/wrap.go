package marquee

import (
	"strings"
)

// Line is a finished, non-overflowing run of code points plus its measured
// pixel width. An empty Line preserves a blank line from the input.
type Line struct {
	Text  string
	Width int
}

// Document is the wrapped form of one text submission, ready to composite.
type Document struct {
	Lines      []Line
	Width      int // canvas width in pixels
	LineHeight int // font size plus line spacing
}

// TotalHeight is the canvas height needed to hold every line.
func (d Document) TotalHeight() int {
	return len(d.Lines) * d.LineHeight
}

// Wrap greedily packs the words of one raw input line into Lines no wider
// than maxWidth pixels. A word that alone exceeds the budget is broken at
// code point granularity. Whitespace between words collapses to a single
// space; an empty or whitespace-only input produces exactly one empty
// Line, preserving the caller's blank-line intent.
func (m *Measurer) Wrap(raw string, maxWidth int) []Line {
	if strings.TrimSpace(raw) == "" {
		return []Line{{}}
	}

	var lines []Line
	current := ""
	for _, word := range strings.Fields(raw) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		// A line exactly at budget is accepted.
		if m.Width(test) <= maxWidth {
			current = test
			continue
		}

		if current != "" {
			lines = append(lines, Line{Text: current, Width: m.Width(current)})
			current = ""
		}
		if m.Width(word) <= maxWidth {
			current = word
			continue
		}

		full, rest := m.splitWord(word, maxWidth)
		lines = append(lines, full...)
		current = rest
	}

	if current != "" {
		lines = append(lines, Line{Text: current, Width: m.Width(current)})
	}
	if len(lines) == 0 {
		return []Line{{}}
	}
	return lines
}

// splitWord breaks an oversized word into budget-sized Lines, returning
// the completed Lines and the trailing remainder that still accumulates.
// Ignorable code points (variation selectors, ZWJ) never count toward the
// break decision and are never split away from the glyph before them.
func (m *Measurer) splitWord(word string, maxWidth int) (full []Line, rest string) {
	var buf strings.Builder
	empty := true
	for _, r := range word {
		if Classify(r) == Ignorable {
			buf.WriteRune(r)
			continue
		}
		if empty || m.Width(buf.String()+string(r)) <= maxWidth {
			buf.WriteRune(r)
			empty = false
			continue
		}
		line := buf.String()
		full = append(full, Line{Text: line, Width: m.Width(line)})
		buf.Reset()
		buf.WriteRune(r)
	}
	return full, buf.String()
}

// Layout splits text on explicit line breaks, wraps every raw line to the
// display width minus the side margins, and assembles the Document.
func (m *Measurer) Layout(text string, displayWidth, marginPx, lineSpacingPx int) Document {
	maxWidth := displayWidth - 2*marginPx
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		lines = append(lines, m.Wrap(raw, maxWidth)...)
	}
	return Document{
		Lines:      lines,
		Width:      displayWidth,
		LineHeight: m.FontSize + lineSpacingPx,
	}
}
