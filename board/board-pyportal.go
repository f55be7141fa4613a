//go:build pyportal

package board

import (
	"machine"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
	"tinygo.org/x/drivers/ili9341"
	"tinygo.org/x/drivers/touch/resistive"
)

const (
	Name = "pyportal"
)

var (
	Display = mainDisplay{}
	Buttons = noButtons{}
)

type mainDisplay struct{}

func (d mainDisplay) Configure() display.Panel[pixel.RGB565BE] {
	// Initialize backlight and disable at startup.
	backlight := machine.TFT_BACKLIGHT
	backlight.Configure(machine.PinConfig{Mode: machine.PinOutput})
	backlight.Low()

	// Enable and configure display.
	dev := ili9341.NewParallel(
		machine.LCD_DATA0,
		machine.TFT_WR,
		machine.TFT_DC,
		machine.TFT_CS,
		machine.TFT_RESET,
		machine.TFT_RD,
	)
	dev.Configure(ili9341.Config{
		Rotation: ili9341.Rotation270,
	})

	return newStreamPanel[pixel.RGB565BE](dev)
}

func (d mainDisplay) MaxBrightness() int {
	return 1
}

func (d mainDisplay) SetBrightness(level int) {
	machine.TFT_BACKLIGHT.Set(level > 0)
}

func (d mainDisplay) PPI() int {
	return 166 // appears to be the same size/resolution as the Gopher Badge and the MCH2022 badge
}

// Configure the resistive touch input on this display.
func (d mainDisplay) ConfigureTouch() display.TouchSensor {
	return &fourWireTouch{}
}

// The touchscreen is read through the ADC, which isn't shared with the
// (parallel) display bus.
func (d mainDisplay) TouchBus() (display.Bus, uint32) {
	return nil, 0
}

// Values calibrated on the PyPortal I have. Other boards might have slightly
// different values: raw X 16000..54000 maps to 0..319 and raw Y 48000..22000
// maps to 0..239.
func (d mainDisplay) TouchCalibration() display.Calibration {
	return display.Calibration{KX: 11912, BX: -134, KY: -10878, BY: 441}
}

type fourWireTouch struct {
	touch resistive.FourWire
}

func (t *fourWireTouch) Configure() error {
	machine.InitADC()
	return t.touch.Configure(&resistive.FourWireConfig{
		YP: machine.TOUCH_YD,
		YM: machine.TOUCH_YU,
		XP: machine.TOUCH_XR,
		XM: machine.TOUCH_XL,
	})
}

func (t *fourWireTouch) Touched() bool {
	return t.touch.ReadZ() > 8192
}

func (t *fourWireTouch) ReadRaw() (x, y int, ok bool) {
	point := t.touch.ReadTouchPoint()
	if point.Z <= 8192 {
		return 0, 0, false
	}
	// The touchscreen axes are swapped compared to the display in this
	// rotation.
	return point.Y, point.X, true
}
