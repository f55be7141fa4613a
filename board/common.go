package board

import (
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
)

// Settings for the simulator. These can be modified at any time, but it is
// recommended to modify them before configuring any of the board peripherals.
//
// These can be modified to match whatever board your main target is. For
// example, if your board has a display that's only 160 by 128 pixels, you can
// modify the window size here to get a realistic simulation.
var Simulator = struct {
	WindowTitle string

	// Width and height in virtual pixels (matching Size()). The window will
	// take up more physical pixels on high-DPI screens.
	WindowWidth  int
	WindowHeight int

	// Pixels per inch. The default is 120, which matches many commonly used
	// high-DPI screens (for example, Apple screens).
	WindowPPI int

	// How long it takes to send one pixel to the window. Zero means as fast
	// as possible. Setting this to something like 100ns gives an impression
	// of a display on a slow SPI bus.
	WindowDrawSpeed time.Duration
}{
	WindowTitle:  "Simulator",
	WindowWidth:  320,
	WindowHeight: 240,
	WindowPPI:    120, // common on many modern displays (for example Retina is 254 / 2 = 127)
}

// The display interface shared by all supported displays.
type Displayer[T pixel.Color] interface {
	// The display size in pixels. This must match Display.Size().
	Size() (width, height int16)

	// Write data to the display in the usual row-major order (which matches the
	// usual order of text on a page: first left to right and then each line top
	// to bottom).
	DrawRGBBitmap8(x, y int16, buf []uint8, w, h int16) error

	// Display the written image on screen. This call may or may not be
	// necessary depending on the screen, but it's better to call it anyway.
	Display() error
}

// streamPanel sends lines to a Displayer from a separate goroutine, so that
// the next line can be composited while the previous one is being sent.
type streamPanel[T display.Color] struct {
	dev  Displayer[T]
	jobs chan lineJob[T]
	busy atomic.Bool

	// Set by the goroutine before it clears busy.
	err error

	vertical       bool
	x0, y0, x1, y1 int16
	line           int16
}

type lineJob[T display.Color] struct {
	buf        []T
	x, y, w, h int16
}

func newStreamPanel[T display.Color](dev Displayer[T]) *streamPanel[T] {
	p := &streamPanel[T]{
		dev:  dev,
		jobs: make(chan lineJob[T], 1),
	}
	go p.run()
	return p
}

func (p *streamPanel[T]) run() {
	for job := range p.jobs {
		err := p.dev.DrawRGBBitmap8(job.x, job.y, pixelsToBytes(job.buf), job.w, job.h)
		if err != nil {
			p.err = err
		}
		p.busy.Store(false)
	}
}

// Configure does nothing: the display controller was already configured by
// the board.
func (p *streamPanel[T]) Configure() error {
	return nil
}

func (p *streamPanel[T]) Size() (width, height int16) {
	return p.dev.Size()
}

// SetOrientation selects whether lines are rows or columns. The display
// controller itself isn't rotated.
func (p *streamPanel[T]) SetOrientation(orientation display.Orientation) error {
	p.vertical = orientation == display.Vertical
	return nil
}

func (p *streamPanel[T]) SetWindow(x0, y0, x1, y1 int16) error {
	p.x0, p.y0, p.x1, p.y1 = x0, y0, x1, y1
	p.line = 0
	return nil
}

func (p *streamPanel[T]) StartLine(buf []T) error {
	if p.busy.Load() {
		return display.ErrDeviceNotReady
	}
	var job lineJob[T]
	if p.vertical {
		job.x, job.y = p.x0+p.line, p.y0
		job.w, job.h = 1, p.y1-p.y0+1
	} else {
		job.x, job.y = p.x0, p.y0+p.line
		job.w, job.h = p.x1-p.x0+1, 1
	}
	n := int(job.w) * int(job.h)
	if n > len(buf) {
		return errShortLine
	}
	job.buf = buf[:n]
	p.line++
	p.busy.Store(true)
	p.jobs <- job
	return nil
}

func (p *streamPanel[T]) TransferComplete() bool {
	return !p.busy.Load()
}

func (p *streamPanel[T]) StopTransfer() error {
	if err := p.err; err != nil {
		p.err = nil
		return err
	}
	return p.dev.Display()
}

// Reinterpret a slice of pixels as the raw bytes that make up these pixels.
func pixelsToBytes[T pixel.Color](buf []T) []byte {
	if len(buf) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(buf[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), len(buf)*size)
}

// Map and clamp an input value to an output range.
func clamp(value, lowIn, highIn, lowOut, highOut int) int {
	rangeIn := highIn - lowIn
	rangeOut := highOut - lowOut
	valueOut := (value-lowIn)*rangeOut/rangeIn + lowOut
	if valueOut > highOut {
		valueOut = highOut
	}
	if valueOut < lowOut {
		valueOut = lowOut
	}
	return valueOut
}

// Key is a single keyboard key (not to be confused with a single character).
type Key uint8

// List of all supported key codes.
const (
	NoKey = iota

	// Special keys.
	KeyEscape

	// Navigation keys.
	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	// Character keys.
	KeyEnter
	KeySpace
	KeyA
	KeyB
	KeyL
	KeyR

	// Special keys, used on some boards.
	KeySelect
	KeyStart
)

// KeyEvent is a single key press or release event.
type KeyEvent uint16

const (
	NoKeyEvent KeyEvent = iota // No key event was available.

	keyReleased = KeyEvent(1 << 15) // The upper bit is set when this is a release event
)

// Key returns the key code for this key event.
func (k KeyEvent) Key() Key {
	return Key(k) // lower 8 bits are the key code
}

// Pressed returns whether this event indicates a key press event. It returns
// true for a press, false for a release.
func (k KeyEvent) Pressed() bool {
	return k&keyReleased == 0
}
