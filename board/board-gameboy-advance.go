//go:build gameboyadvance

package board

import (
	"device/gba"
	"math/bits"
	"runtime/volatile"
	"unsafe"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
)

const (
	Name = "gameboy-advance"
)

var (
	Display = mainDisplay{}
	Buttons = &gbaButtons{}
)

type mainDisplay struct{}

func (d mainDisplay) PPI() int {
	return 99
}

func (d mainDisplay) Configure() display.Panel[pixel.RGB555] {
	return &gbaPanel{}
}

func (d mainDisplay) MaxBrightness() int {
	return 0
}

func (d mainDisplay) SetBrightness(level int) {
	// The display doesn't have a backlight.
}

// There is no touchscreen on this board.
func (d mainDisplay) ConfigureTouch() display.TouchSensor {
	return nil
}

func (d mainDisplay) TouchBus() (display.Bus, uint32) {
	return nil, 0
}

func (d mainDisplay) TouchCalibration() display.Calibration {
	return display.Calibration{}
}

var displayFrameBuffer = (*[160 * 240]volatile.Register16)(unsafe.Pointer(uintptr(gba.MEM_VRAM)))

// The display is memory mapped, so a line is written directly to VRAM and
// the transfer is complete as soon as StartLine returns.
type gbaPanel struct {
	vertical       bool
	x0, y0, x1, y1 int16
	line           int16
}

func (p *gbaPanel) Configure() error {
	// Use video mode 3 (in BG2, a 16bpp bitmap in VRAM) and Enable BG2.
	gba.DISP.DISPCNT.Set(gba.DISPCNT_BGMODE_3<<gba.DISPCNT_BGMODE_Pos |
		gba.DISPCNT_SCREENDISPLAY_BG2_ENABLE<<gba.DISPCNT_SCREENDISPLAY_BG2_Pos)
	return nil
}

func (p *gbaPanel) Size() (x, y int16) {
	return 240, 160
}

func (p *gbaPanel) SetOrientation(orientation display.Orientation) error {
	p.vertical = orientation == display.Vertical
	return nil
}

func (p *gbaPanel) SetWindow(x0, y0, x1, y1 int16) error {
	p.x0, p.y0, p.x1, p.y1 = x0, y0, x1, y1
	p.line = 0
	return nil
}

func (p *gbaPanel) StartLine(buf []pixel.RGB555) error {
	if p.vertical {
		x := int(p.x0 + p.line)
		for i := 0; i <= int(p.y1-p.y0) && i < len(buf); i++ {
			displayFrameBuffer[(int(p.y0)+i)*240+x].Set(uint16(buf[i]))
		}
	} else {
		y := int(p.y0 + p.line)
		for i := 0; i <= int(p.x1-p.x0) && i < len(buf); i++ {
			displayFrameBuffer[y*240+int(p.x0)+i].Set(uint16(buf[i]))
		}
	}
	p.line++
	return nil
}

func (p *gbaPanel) TransferComplete() bool {
	return true
}

// StopTransfer waits for the next VBlank, so that a new frame doesn't start
// while the previous one is still being scanned out.
func (p *gbaPanel) StopTransfer() error {
	// TODO: sleep until the next VBlank instead of busy waiting.
	// (See VBlankIntrWait)
	for gba.DISP.DISPSTAT.Get()&(1<<gba.DISPSTAT_VBLANK_Pos) == 0 {
	}
	return nil
}

type gbaButtons struct {
	state         uint16
	previousState uint16
}

func (b *gbaButtons) Configure() {
	// nothing to configure
}

func (b *gbaButtons) ReadInput() {
	b.state = gba.KEY.INPUT.Get() ^ 0x3ff
}

var codes = [16]Key{
	KeyA,
	KeyB,
	KeySelect,
	KeyStart,
	KeyRight,
	KeyLeft,
	KeyUp,
	KeyDown,
	KeyR,
	KeyL,
}

func (b *gbaButtons) NextEvent() KeyEvent {
	// The xor between the previous state and the current state is the buttons
	// that changed.
	change := b.state ^ b.previousState
	if change == 0 {
		return NoKeyEvent
	}

	// Find the index of the button with the lowest index that changed state.
	index := bits.TrailingZeros32(uint32(change))
	e := KeyEvent(codes[index])
	if b.state&(1<<index) == 0 {
		// The button state change was from 1 to 0, so it was released.
		e |= keyReleased
	}

	// This button event was read, so mark it as such.
	// By toggling the bit, the bit will be set to the value that is currently
	// in b.state.
	b.previousState ^= (1 << index)

	return e
}
