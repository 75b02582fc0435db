package marquee

// Class is the layout category of a single code point.
type Class uint8

const (
	// Regular code points are rendered through the text font.
	Regular Class = iota
	// Pictographic code points are rendered as scaled color bitmaps.
	Pictographic
	// Ignorable code points (variation selectors, zero-width joiner)
	// contribute no width and are skipped during rendering.
	Ignorable
)

// String returns the class name, for logs and test failures.
func (c Class) String() string {
	switch c {
	case Regular:
		return "regular"
	case Pictographic:
		return "pictographic"
	case Ignorable:
		return "ignorable"
	}
	return "unknown"
}

// zwj is the zero-width joiner, used to glue emoji sequences together.
const zwj = '‍'

// Variation selectors VS1-VS16.
const (
	vsFirst = '︀'
	vsLast  = '️'
)

type runeRange struct {
	lo, hi rune
}

// pictographicRanges lists the Unicode blocks treated as emoji. Detection
// is purely lexical; no font-presence check is made.
var pictographicRanges = []runeRange{
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F300, 0x1F5FF}, // Misc Symbols and Pictographs
	{0x1F680, 0x1F6FF}, // Transport and Map
	{0x1F1E0, 0x1F1FF}, // Regional indicators (flags)
	{0x2600, 0x26FF},   // Misc symbols
	{0x2700, 0x27BF},   // Dingbats
	{0x1F900, 0x1F9FF}, // Supplemental Symbols and Pictographs
	{0x1FA00, 0x1FA6F}, // Chess Symbols
	{0x1FA70, 0x1FAFF}, // Symbols and Pictographs Extended-A
	{0x2300, 0x23FF},   // Misc Technical
	{0x203C, 0x3299},   // Various symbols
}

// Classify assigns a layout class to a code point. It is a pure function:
// every code point maps to exactly one class, and the same input always
// yields the same class.
func Classify(r rune) Class {
	if r == zwj || (r >= vsFirst && r <= vsLast) {
		return Ignorable
	}
	for _, rr := range pictographicRanges {
		if r >= rr.lo && r <= rr.hi {
			return Pictographic
		}
	}
	return Regular
}
