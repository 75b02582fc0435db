package marquee

import (
	"image"
	"image/color"
	"image/draw"
)

// ExtractFrame crops one fixed-size viewport frame out of a tall canvas.
//
// yOffset is the position of the viewport's top edge relative to the
// canvas top; negative values mean the canvas has not yet scrolled up into
// the viewport. Rows not covered by the canvas are filled with bg. The
// returned frame is always exactly width x height pixels.
func ExtractFrame(canvas image.Image, yOffset, width, height int, bg color.Color) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	canvasHeight := canvas.Bounds().Dy()

	switch {
	case yOffset < 0:
		// Canvas still entering from below: its top rows land partway
		// down the frame.
		visible := height + yOffset
		if visible > canvasHeight {
			visible = canvasHeight
		}
		if visible > 0 {
			dst := image.Rect(0, -yOffset, width, -yOffset+visible)
			draw.Draw(frame, dst, canvas, canvas.Bounds().Min, draw.Src)
		}

	case yOffset+height <= canvasHeight:
		// Viewport fully covered: a straight crop.
		sp := canvas.Bounds().Min.Add(image.Pt(0, yOffset))
		draw.Draw(frame, frame.Bounds(), canvas, sp, draw.Src)

	default:
		// Canvas exiting past the top: its remaining rows fill the top
		// of the frame.
		visible := canvasHeight - yOffset
		if visible > 0 {
			sp := canvas.Bounds().Min.Add(image.Pt(0, yOffset))
			draw.Draw(frame, image.Rect(0, 0, width, visible), canvas, sp, draw.Src)
		}
	}
	return frame
}
