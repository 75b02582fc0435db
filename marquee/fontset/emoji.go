package fontset

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/zwing99/lcd-remote-app/marquee"
)

// EmojiDir serves color emoji bitmaps from a directory of PNG assets in
// the Noto Color Emoji naming scheme (emoji_u1f600.png). The Debian
// fonts-noto-color-emoji package ships these under
// /usr/share/fonts/truetype/noto/png, and the upstream noto-emoji
// repository carries them as png/128.
type EmojiDir struct {
	dir string
}

var _ marquee.EmojiSource = (*EmojiDir)(nil)

// OpenEmojiDir validates that dir exists. A missing directory is the
// "emoji unavailable" case and is reported as an error so the caller can
// run without an emoji source instead.
func OpenEmojiDir(dir string) (*EmojiDir, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fontset: emoji directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fontset: emoji path %s is not a directory", dir)
	}
	return &EmojiDir{dir: dir}, nil
}

// Render loads the bitmap for r and scales it to sizePx x sizePx. A
// missing or undecodable asset reports ok=false, never an error: the
// composer substitutes the regular glyph path.
func (d *EmojiDir) Render(r rune, sizePx int) (*image.RGBA, bool) {
	f, err := os.Open(filepath.Join(d.dir, assetName(r)))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, false
	}

	out := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	xdraw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return out, true
}

// assetName maps a code point to its Noto PNG file name.
func assetName(r rune) string {
	return fmt.Sprintf("emoji_u%04x.png", r)
}
