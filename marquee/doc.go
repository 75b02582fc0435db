// Package marquee turns arbitrary UTF-8 text, emoji included, into a
// continuously scrolling credits roll for a small fixed-resolution display.
//
// The pipeline flows strictly downward: raw text is classified per code
// point and measured in pixels (Measurer), greedily wrapped into lines
// against a pixel budget (Wrap), composited once into one tall canvas with
// centered lines and alpha-blended emoji bitmaps (Composer), and then
// cropped frame by frame into fixed-size viewports (ExtractFrame) by the
// animation loop (Manager).
//
// The Manager is the only component with a concurrency contract: it owns
// the single active scroll session, and a new submission cancels the old
// session and waits for its teardown before touching the display.
//
// Hardware access stays out of this package; frames are handed to the
// Display interface, implemented for real panels by the st7789 package.
package marquee
