package st7789

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/zwing99/lcd-remote-app/st7789/rgb565"
)

// Panel RAM dimensions of the ST7789 controller (portrait orientation).
const (
	ramWidth  = 240
	ramHeight = 320
)

// ST7789 command bytes used by this driver.
const (
	cmdSWRESET   = 0x01
	cmdSLPIN     = 0x10
	cmdSLPOUT    = 0x11
	cmdNORON     = 0x13
	cmdINVOFF    = 0x20
	cmdINVON     = 0x21
	cmdDISPOFF   = 0x28
	cmdDISPON    = 0x29
	cmdCASET     = 0x2A
	cmdRASET     = 0x2B
	cmdRAMWR     = 0x2C
	cmdMADCTL    = 0x36
	cmdCOLMOD    = 0x3A
	cmdPORCTRL   = 0xB2
	cmdGCTRL     = 0xB7
	cmdVCOMS     = 0xBB
	cmdLCMCTRL   = 0xC0
	cmdVDVVRHEN  = 0xC2
	cmdVRHS      = 0xC3
	cmdVDVS      = 0xC4
	cmdFRCTRL2   = 0xC6
	cmdPWCTRL1   = 0xD0
	cmdPVGAMCTRL = 0xE0
	cmdNVGAMCTRL = 0xE1
)

// MADCTL bits.
const (
	madctlMY  = 0x80 // Row address order
	madctlMX  = 0x40 // Column address order
	madctlMV  = 0x20 // Row/column exchange
	madctlBGR = 0x08 // BGR subpixel order
)

// Opts is the configuration for the ST7789 display.
type Opts struct {
	// Display dimensions in pixels, after rotation is applied.
	W int // Width (default: 320)
	H int // Height (default: 240)

	// Rotation in degrees: 0, 90, 180 or 270.
	// 0 is portrait (240x320); 90 and 270 are landscape (320x240).
	Rotation int

	// BGR selects blue-green-red subpixel order. The Waveshare 2-inch
	// module is wired BGR.
	BGR bool

	// Freq is the SPI clock frequency. Defaults to 40MHz, the speed the
	// Waveshare module is specified for.
	Freq physic.Frequency

	// Optional hardware reset pin.
	RST gpio.PinIO

	// Optional backlight pin, driven with 1kHz PWM for brightness control.
	Backlight gpio.PinOut
}

// backlightPWMFreq is the PWM carrier frequency for the backlight pin.
const backlightPWMFreq = 1 * physic.KiloHertz

// Dev is the device handle for the ST7789 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)
	bl  gpio.PinOut // Backlight pin (optional)

	// Display geometry
	rect image.Rectangle

	// Transfer limits
	maxTx int // Largest single SPI transfer in bytes

	// Pixel buffers
	last *rgb565.Image // Last displayed frame for differential row updates

	// State
	halted bool
}

// NewSPI creates a new ST7789 device connected via SPI.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers at
// opts.Freq. The dc (Data/Command) GPIO pin must be provided and configured
// as an output.
//
// opts can be nil to use defaults (320x240 landscape, BGR, 40MHz).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	// Apply defaults and validate options
	if opts == nil {
		opts = &Opts{W: 320, H: 240, Rotation: 90, BGR: true}
	}
	if opts.W == 0 && opts.H == 0 {
		opts.W, opts.H = 320, 240
		if opts.Rotation == 0 {
			opts.Rotation = 90
		}
	}
	if opts.Freq == 0 {
		opts.Freq = 40 * physic.MegaHertz
	}

	if err := validate(opts); err != nil {
		return nil, err
	}

	c, err := p.Connect(opts.Freq, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	// Respect the bus driver's transfer size limit, if it reports one.
	maxTx := 4096
	if l, ok := c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 0 {
			maxTx = m
		}
	}

	d := &Dev{
		c:     c,
		dc:    dc,
		rst:   opts.RST,
		bl:    opts.Backlight,
		rect:  image.Rect(0, 0, opts.W, opts.H),
		maxTx: maxTx,
	}

	if err := d.init(opts); err != nil {
		return nil, err
	}

	return d, nil
}

// validate checks display geometry against the panel RAM.
func validate(opts *Opts) error {
	maxW, maxH := ramWidth, ramHeight
	switch opts.Rotation {
	case 0, 180:
	case 90, 270:
		maxW, maxH = ramHeight, ramWidth
	default:
		return errors.New("st7789: rotation must be 0, 90, 180 or 270")
	}
	if opts.W <= 0 || opts.W > maxW {
		return fmt.Errorf("st7789: width must be between 1 and %d for rotation %d", maxW, opts.Rotation)
	}
	if opts.H <= 0 || opts.H > maxH {
		return fmt.Errorf("st7789: height must be between 1 and %d for rotation %d", maxH, opts.Rotation)
	}
	return nil
}

// madctl returns the MADCTL register value for the requested orientation.
func madctl(rotation int, bgr bool) byte {
	var v byte
	switch rotation {
	case 90:
		v = madctlMX | madctlMV
	case 180:
		v = madctlMX | madctlMY
	case 270:
		v = madctlMY | madctlMV
	}
	if bgr {
		v |= madctlBGR
	}
	return v
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset sequence (if RST pin is provided)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("st7789: failed to pull RST low: %w", err)
		}
		time.Sleep(100 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("st7789: failed to pull RST high: %w", err)
		}
		time.Sleep(120 * time.Millisecond)
	}

	// Software reset and wake from sleep.
	if err := d.sendCommand(cmdSWRESET); err != nil {
		return err
	}
	time.Sleep(150 * time.Millisecond)
	if err := d.sendCommand(cmdSLPOUT); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)

	// Panel configuration.
	steps := []struct {
		cmd  byte
		data []byte
	}{
		{cmdCOLMOD, []byte{0x55}}, // 16 bits per pixel
		{cmdMADCTL, []byte{madctl(opts.Rotation, opts.BGR)}},
		{cmdPORCTRL, []byte{0x0C, 0x0C, 0x00, 0x33, 0x33}},
		{cmdGCTRL, []byte{0x35}},  // Gate control
		{cmdVCOMS, []byte{0x19}},  // VCOM setting
		{cmdLCMCTRL, []byte{0x2C}},
		{cmdVDVVRHEN, []byte{0x01}},
		{cmdVRHS, []byte{0x12}},
		{cmdVDVS, []byte{0x20}},
		{cmdFRCTRL2, []byte{0x0F}}, // 60Hz frame rate
		{cmdPWCTRL1, []byte{0xA4, 0xA1}},
		{cmdPVGAMCTRL, []byte{0xD0, 0x04, 0x0D, 0x11, 0x13, 0x2B, 0x3F, 0x54, 0x4C, 0x18, 0x0D, 0x0B, 0x1F, 0x23}},
		{cmdNVGAMCTRL, []byte{0xD0, 0x04, 0x0C, 0x11, 0x13, 0x2C, 0x3F, 0x44, 0x51, 0x2F, 0x1F, 0x1F, 0x20, 0x23}},
	}
	for _, s := range steps {
		if err := d.sendCommandData(s.cmd, s.data); err != nil {
			return err
		}
	}

	// IPS panels are wired inverted; INVON yields normal colors.
	if err := d.sendCommand(cmdINVON); err != nil {
		return err
	}
	if err := d.sendCommand(cmdNORON); err != nil {
		return err
	}

	// Clear RAM before switching the display on to avoid a flash of noise.
	if err := d.Fill(color.Black); err != nil {
		return err
	}

	if err := d.sendCommand(cmdDISPON); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)

	// Backlight on at full brightness.
	return d.SetBacklight(100)
}

// sendCommand sends a single command byte with no parameters.
func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommandData(cmd, nil)
}

// sendCommandData sends a command byte followed by its parameter bytes.
// The command goes out with DC low, the parameters with DC high.
func (d *Dev) sendCommandData(cmd byte, data []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return d.sendData(data)
}

// sendData sends a slice of data bytes, chunked to the bus transfer limit.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		n := len(data)
		if n > d.maxTx {
			n = d.maxTx
		}
		if err := d.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// writeRect writes RGB565 pixel data to a rectangular region of the display.
func (d *Dev) writeRect(x, y, width, height int, pixels []byte) error {
	commands := []struct {
		cmd  byte
		data []byte
	}{
		{cmdCASET, []byte{byte(x >> 8), byte(x), byte((x + width - 1) >> 8), byte(x + width - 1)}},
		{cmdRASET, []byte{byte(y >> 8), byte(y), byte((y + height - 1) >> 8), byte(y + height - 1)}},
	}
	for _, c := range commands {
		if err := d.sendCommandData(c.cmd, c.data); err != nil {
			return err
		}
	}
	return d.sendCommandData(cmdRAMWR, pixels)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.RGB565Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes raw RGB565 pixel data covering the full display.
// The data must be exactly d.rect.Dx() * d.rect.Dy() * 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errors.New("st7789: halted")
	}
	if len(pixels) != d.rect.Dx()*d.rect.Dy()*2 {
		return 0, errors.New("st7789: invalid buffer size")
	}
	if err := d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), pixels); err != nil {
		return 0, err
	}
	d.last = nil // Raw writes bypass the differential buffer.
	return len(pixels), nil
}

// Draw draws an image onto the display.
//
// Consecutive Draw calls use a differential row update: only the span of
// rows that changed since the previous frame is transferred, which keeps
// the bus traffic low when most of the frame is static.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("st7789: halted")
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	if d.last == nil {
		d.last = rgb565.NewImage(d.rect)
		draw.Draw(d.last, dst, src, sp, draw.Src)
		return d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), d.last.Pix)
	}

	next := rgb565.NewImage(d.rect)
	copy(next.Pix, d.last.Pix)
	draw.Draw(next, dst, src, sp, draw.Src)

	minRow, maxRow := diffRows(d.last, next)
	if minRow > maxRow {
		return nil // No changes.
	}

	stride := next.Stride
	if err := d.writeRect(0, minRow, d.rect.Dx(), maxRow-minRow+1, next.Pix[minRow*stride:(maxRow+1)*stride]); err != nil {
		return err
	}
	d.last = next
	return nil
}

// diffRows returns the first and last row that differ between two frames,
// or (1, 0) when the frames are identical.
func diffRows(a, b *rgb565.Image) (minRow, maxRow int) {
	h := a.Rect.Dy()
	minRow, maxRow = h, -1
	for y := 0; y < h; y++ {
		rowA := a.Pix[y*a.Stride : (y+1)*a.Stride]
		rowB := b.Pix[y*b.Stride : (y+1)*b.Stride]
		if !bytes.Equal(rowA, rowB) {
			if y < minRow {
				minRow = y
			}
			maxRow = y
		}
	}
	if maxRow < 0 {
		return 1, 0
	}
	return minRow, maxRow
}

// Fill fills the whole display with a flat color.
func (d *Dev) Fill(c color.Color) error {
	if d.halted {
		return errors.New("st7789: halted")
	}
	v := rgb565.RGB565Model.Convert(c).(rgb565.RGB565).V
	frame := rgb565.NewImage(d.rect)
	for i := 0; i < len(frame.Pix); i += 2 {
		frame.Pix[i] = byte(v >> 8)
		frame.Pix[i+1] = byte(v)
	}
	if err := d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), frame.Pix); err != nil {
		return err
	}
	d.last = frame
	return nil
}

// SetBacklight sets the backlight brightness as a percentage (0-100).
// It is a no-op when no backlight pin was configured.
func (d *Dev) SetBacklight(percent int) error {
	if d.bl == nil {
		return nil
	}
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	duty := gpio.Duty(int64(percent) * int64(gpio.DutyMax) / 100)
	return d.bl.PWM(duty, backlightPWMFreq)
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("st7789: halted")
	}
	// The panel runs inverted by default (see init), so "invert" here
	// means undoing that.
	mode := byte(cmdINVON)
	if invert {
		mode = cmdINVOFF
	}
	return d.sendCommand(mode)
}

// Halt blanks the display, puts the controller to sleep and switches the
// backlight off. After calling Halt, the display will not respond to
// further commands until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.sendCommand(cmdDISPOFF); err != nil {
		return err
	}
	if err := d.sendCommand(cmdSLPIN); err != nil {
		return err
	}
	return d.SetBacklight(0)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
