// Package st7789 controls an ST7789VW TFT LCD panel via SPI.
//
// The ST7789VW drives 240×320 RGB panels with 16-bit (RGB565) color. The
// driver targets the Waveshare 2-inch LCD module but works with any panel
// wired in the standard 4-line SPI configuration.
//
// # Hardware Connection
//
// Connect the panel to a Raspberry Pi (BCM numbering):
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	CLK         → GPIO11 (SPI0 SCLK)
//	DIN/MOSI    → GPIO10 (SPI0 MOSI)
//	CS          → GPIO8 (SPI0 CE0)
//	DC          → GPIO25
//	RST         → GPIO27 (optional)
//	BL          → GPIO18 (optional, PWM brightness)
//
// # Basic Usage
//
//	host.Init()
//
//	bus, _ := spireg.Open("")
//	dc := gpioreg.ByName("GPIO25")
//
//	dev, _ := st7789.NewSPI(bus, dc, &st7789.Opts{
//		W:        320,
//		H:        240,
//		Rotation: 90,
//		BGR:      true,
//	})
//	defer dev.Halt()
//
//	dev.Draw(dev.Bounds(), myImage, image.Point{})
//
// # Drawing Modes
//
// Draw renders any image.Image onto the panel and uses a differential row
// update: only the span of rows that changed since the previous frame is
// transferred. Write streams a raw RGB565 buffer covering the full frame
// and is the fastest path when every frame changes completely. Fill blanks
// the panel with a flat color.
//
// # Backlight
//
// When a backlight pin is configured, SetBacklight drives it with 1kHz PWM
// so brightness can be set between 0 and 100 percent. Halt switches the
// backlight off.
//
// # Datasheet
//
// https://www.waveshare.com/w/upload/a/ad/ST7789VW.pdf
package st7789
