//go:build pinetime_devkit0

package board

import (
	"device/nrf"
	"machine"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
	"tinygo.org/x/drivers/st7789"
)

const (
	Name = "pinetime"

	touchInterruptPin = 28
)

var (
	Display = mainDisplay{}
	Buttons = &singleButton{}
)

func init() {
	// Enable the DC/DC regulator.
	// This doesn't affect sleep power consumption, but significantly reduces
	// runtime power consumpton of the CPU core (almost halving the current
	// required).
	nrf.POWER.DCDCEN.Set(nrf.POWER_DCDCEN_DCDCEN)
}

type mainDisplay struct{}

func (d mainDisplay) Configure() display.Panel[pixel.RGB565BE] {
	// Set the chip select line for the flash chip to inactive.
	cs := machine.Pin(5) // SPI CS
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cs.High()

	// Configure the SPI bus.
	spi := machine.SPI0
	spi.Configure(machine.SPIConfig{
		Frequency: 8_000_000, // 8MHz is the maximum the nrf52832 supports
		SCK:       machine.SPI0_SCK_PIN,
		SDO:       machine.SPI0_SDO_PIN,
		SDI:       machine.SPI0_SDI_PIN,
		Mode:      3,
	})

	// Configure the display.
	dev := st7789.New(spi,
		machine.LCD_RESET,
		machine.LCD_RS, // data/command
		machine.LCD_CS,
		machine.LCD_BACKLIGHT_HIGH)
	dev.Configure(st7789.Config{
		Width:     240,
		Height:    240,
		Rotation:  st7789.ROTATION_180,
		RowOffset: 80,
	})
	dev.EnableBacklight(true)

	return newStreamPanel[pixel.RGB565BE](&dev)
}

func (d mainDisplay) MaxBrightness() int {
	return 1 // TODO: 0-7 is supported through LCD_BACKLIGHT_LOW/MID/HIGH
}

func (d mainDisplay) SetBrightness(level int) {
	machine.LCD_BACKLIGHT_HIGH.Set(!(level > 0)) // low means on, high means off
}

func (d mainDisplay) PPI() int {
	return 261
}

func (d mainDisplay) ConfigureTouch() display.TouchSensor {
	return &touchController{data: make([]byte, 6)}
}

// The touch controller is on its own I2C bus.
func (d mainDisplay) TouchBus() (display.Bus, uint32) {
	return nil, 0
}

// The touch controller reports screen coordinates.
func (d mainDisplay) TouchCalibration() display.Calibration {
	return display.Calibration{}
}

var touchI2C = machine.I2C1

// The CST816S touch controller.
type touchController struct {
	data []byte
}

func (t *touchController) Configure() error {
	// Configure touch interrupt pin.
	// After the pin goes low (for a very short time), the touch controller is
	// accessible over I2C for as long as a finger touches the screen and a
	// short time afterwards (a second or so) before going back to sleep.
	//
	// We don't actually use an interrupt here because pin change interrupts
	// result in far too much current consumption (jumping from 0.19mA to
	// 0.65mA), probably due to anomaly 97:
	// https://infocenter.nordicsemi.com/index.jsp?topic=%2Ferrata_nRF52832_Rev2%2FERR%2FnRF52832%2FRev2%2Flatest%2Fanomaly_832_97.html
	// Instead, the LATCH register is used as a level interrupt that is
	// cleared by hand.
	nrf.P0.PIN_CNF[touchInterruptPin].Set(nrf.GPIO_PIN_CNF_DIR_Input<<nrf.GPIO_PIN_CNF_DIR_Pos | nrf.GPIO_PIN_CNF_INPUT_Connect<<nrf.GPIO_PIN_CNF_INPUT_Pos | nrf.GPIO_PIN_CNF_SENSE_Low<<nrf.GPIO_PIN_CNF_SENSE_Pos)

	// Run I2C at a high speed (400KHz).
	return touchI2C.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.Pin(6),
		SCL:       machine.Pin(7),
	})
}

// Touched returns whether the LATCH bit is set, which happens when TP_INT
// goes low. It is cleared in ReadRaw once the controller reports no more
// touches.
func (t *touchController) Touched() bool {
	return nrf.P0.LATCH.Get()&(1<<touchInterruptPin) != 0
}

func (t *touchController) ReadRaw() (x, y int, ok bool) {
	if !t.Touched() {
		return 0, 0, false
	}
	if err := touchI2C.ReadRegister(21, 1, t.data); err != nil {
		return 0, 0, false
	}
	num := t.data[1] & 0x0f
	if num == 0 {
		// Stop reading touch events.
		// There may be a small race condition here, if the touch controller
		// detects another touch while reading the touch data over I2C.
		nrf.P0.LATCH.Set(1 << touchInterruptPin)
		return 0, 0, false
	}
	x = int(t.data[2]&0xf)<<8 | int(t.data[3])
	y = int(t.data[4]&0xf)<<8 | int(t.data[5])
	x = clamp(x, 0, 239, 0, 239)
	y = clamp(y, 0, 239, 0, 239)
	return x, y, true
}

// State for the one and only button on the PineTime.
type singleButton struct {
	state         bool
	previousState bool
}

func (b *singleButton) Configure() {
	// BUTTON_OUT must be held high for BUTTON_IN to read anything useful.
	machine.BUTTON_OUT.Configure(machine.PinConfig{Mode: machine.PinOutput})
	machine.BUTTON_OUT.Low()
	machine.BUTTON_IN.Configure(machine.PinConfig{Mode: machine.PinInput})
}

func (b *singleButton) ReadInput() {
	// BUTTON_OUT needs to be kept low most of the time to avoid a ~34ÂµA current
	// increase. However, setting it to high just before reading doesn't appear
	// to be enough: a small delay is needed. This can be done by setting
	// BUTTON_OUT high multiple times in a row, which doesn't do anything except
	// introduce the needed delay.
	// Four stores appear to be enough to get readings, I have added a fifth to
	// be sure.
	machine.BUTTON_OUT.High()
	machine.BUTTON_OUT.High()
	machine.BUTTON_OUT.High()
	machine.BUTTON_OUT.High()
	machine.BUTTON_OUT.High()
	b.state = machine.BUTTON_IN.Get()
	machine.BUTTON_OUT.Low()
}

func (b *singleButton) NextEvent() KeyEvent {
	if b.state == b.previousState {
		return NoKeyEvent
	}
	e := KeyEvent(KeyEnter)
	if !b.state {
		e |= keyReleased
	}
	b.previousState = b.state
	return e
}
