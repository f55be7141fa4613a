//go:build mch2022

package board

import (
	"machine"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
	"tinygo.org/x/drivers/ili9341"
)

const (
	Name = "mch2022"
)

var (
	Display = mainDisplay{}
	Buttons = noButtons{}
)

type mainDisplay struct{}

func (d mainDisplay) Configure() display.Panel[pixel.RGB565BE] {
	machine.LCD_MODE.Configure(machine.PinConfig{Mode: machine.PinOutput})
	machine.LCD_MODE.Low()

	machine.SPI2.Configure(machine.SPIConfig{
		Frequency: 80_000_000, // This is probably overclocking the ILI9341 but it seems to work.
		SCK:       18,
		SDO:       23,
		SDI:       35,
	})
	dev := ili9341.NewSPI(machine.SPI2, machine.LCD_DC, machine.SPI0_CS_LCD_PIN, machine.LCD_RESET)
	dev.Configure(ili9341.Config{
		Rotation: ili9341.Rotation90,
	})

	return newStreamPanel[pixel.RGB565BE](dev)
}

func (d mainDisplay) PPI() int {
	return 166
}

// The backlight is controlled by the co-processor.
func (d mainDisplay) MaxBrightness() int {
	return 0
}

func (d mainDisplay) SetBrightness(level int) {
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
