//go:build pico

package board

import (
	"machine"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
	"tinygo.org/x/drivers/ili9341"
)

// A Raspberry Pi Pico with a common 2.8" ILI9341 module that has an XPT2046
// resistive touch controller on the same SPI bus.
const (
	Name = "pico"

	displaySCK = machine.GP18
	displaySDO = machine.GP19
	displaySDI = machine.GP16
	displayCS  = machine.GP17
	displayDC  = machine.GP20
	displayRST = machine.GP21
	displayLED = machine.GP15

	touchCS  = machine.GP22
	touchIRQ = machine.GP26

	displaySpeed = 40_000_000
	touchSpeed   = 2_000_000 // the XPT2046 can't go much faster than 2.5MHz
)

var (
	Display = mainDisplay{}
	Buttons = noButtons{}
)

type mainDisplay struct{}

func (d mainDisplay) Configure() display.Panel[pixel.RGB565BE] {
	displayLED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	displayLED.Low()

	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       displaySCK,
		SDO:       displaySDO,
		SDI:       displaySDI,
		Frequency: displaySpeed,
	})
	dev := ili9341.NewSPI(machine.SPI0, displayDC, displayCS, displayRST)
	dev.Configure(ili9341.Config{
		Rotation: ili9341.Rotation90,
	})

	return newStreamPanel[pixel.RGB565BE](dev)
}

func (d mainDisplay) PPI() int {
	return 143 // 2.8" 320x240
}

func (d mainDisplay) MaxBrightness() int {
	return 1
}

func (d mainDisplay) SetBrightness(level int) {
	displayLED.Set(level > 0)
}

func (d mainDisplay) ConfigureTouch() display.TouchSensor {
	return xpt2046{}
}

// The touch controller shares SPI0 with the display, but needs a much lower
// clock speed.
func (d mainDisplay) TouchBus() (display.Bus, uint32) {
	return sharedSPI{machine.SPI0}, touchSpeed
}

// Calibrated on one module: raw X 3700..400 maps to 0..319 and raw Y
// 3700..300 maps to 0..239.
func (d mainDisplay) TouchCalibration() display.Calibration {
	return display.Calibration{KX: -1034, BX: 357, KY: -1422, BY: 260}
}

// SPI bus whose clock speed can be changed between transfers.
type sharedSPI struct {
	spi *machine.SPI
}

func (b sharedSPI) Speed() uint32 {
	return b.spi.GetBaudRate()
}

func (b sharedSPI) SetSpeed(hz uint32) error {
	return b.spi.SetBaudRate(hz)
}

// Minimal XPT2046 driver. It is only used while the bus is locked and set to
// the touch speed.
type xpt2046 struct{}

const (
	xptReadX = 0xD0 // 12-bit differential conversion of X
	xptReadY = 0x90 // same, for Y
)

func (t xpt2046) Configure() error {
	touchCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	touchCS.High()
	touchIRQ.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

// Touched reads the PENIRQ line, which is low while the screen is pressed.
func (t xpt2046) Touched() bool {
	return !touchIRQ.Get()
}

func (t xpt2046) ReadRaw() (x, y int, ok bool) {
	if !t.Touched() {
		return 0, 0, false
	}
	touchCS.Low()
	x = t.read(xptReadX)
	y = t.read(xptReadY)
	touchCS.High()

	// The pen may have been lifted during the conversion.
	if !t.Touched() {
		return 0, 0, false
	}
	return x, y, true
}

func (t xpt2046) read(command byte) int {
	machine.SPI0.Transfer(command)
	hi, _ := machine.SPI0.Transfer(0)
	lo, _ := machine.SPI0.Transfer(0)
	return (int(hi)<<8 | int(lo)) >> 3
}
