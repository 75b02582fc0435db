// Package fontset locates and caches the fonts the marquee renders with.
//
// Text glyphs come from the first loadable system TTF, falling back to the
// Go Regular font compiled into the binary and, as a last resort, the
// fixed-width bitmap font; a Set therefore always produces a usable face.
// Color emoji come from a directory of PNG bitmaps in the Noto Color
// Emoji asset naming scheme.
package fontset

import (
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultPaths lists the system fonts tried in order on a Raspberry Pi OS
// install.
var DefaultPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation2/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansMono-Regular.ttf",
}

// Set holds one scalable text font and hands out cached faces per size.
type Set struct {
	font *opentype.Font // nil when no scalable font could be parsed

	mu    sync.Mutex
	faces map[int]font.Face
}

// Load tries paths in order and keeps the first parseable font. With no
// paths it tries DefaultPaths. When nothing on disk loads, the built-in
// Go Regular font takes over; Load never fails. log may be nil.
func Load(log *slog.Logger, paths ...string) *Set {
	if log == nil {
		log = slog.Default()
	}
	if len(paths) == 0 {
		paths = DefaultPaths
	}

	s := &Set{faces: map[int]font.Face{}}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			log.Warn("unparseable font skipped", "path", p, "err", err)
			continue
		}
		s.font = f
		log.Info("text font loaded", "path", p)
		return s
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// Leaves s.font nil; Face degrades to the bitmap font.
		log.Warn("built-in font unusable; using fixed bitmap font", "err", err)
		return s
	}
	s.font = f
	log.Info("no system font found; using built-in Go Regular")
	return s
}

// Face returns a rendering face at sizePx pixels. Faces are cached per
// size. When no scalable font is available the built-in fixed-width
// bitmap face is returned, so callers never receive nil.
func (s *Set) Face(sizePx int) font.Face {
	if s.font == nil {
		return basicfont.Face7x13
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.faces[sizePx]; ok {
		return f
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	s.faces[sizePx] = f
	return f
}
