package main

import (
	"github.com/aykevl/lcdui/board"
	"github.com/aykevl/lcdui/display"
)

func main() {
	// Verify board name constant.
	var _ string = board.Name

	// Assert that board.Display returns a panel the compositor can use.
	checkPanel(board.Display.Configure())

	// Assert that Display uses the usual interface.
	var _ interface {
		PPI() int
		ConfigureTouch() display.TouchSensor
		TouchBus() (display.Bus, uint32)
		TouchCalibration() display.Calibration
		MaxBrightness() int
		SetBrightness(int)
	} = board.Display

	// Assert that board.Buttons uses the usual interface.
	var _ interface {
		Configure()
		ReadInput()
		NextEvent() board.KeyEvent
	} = board.Buttons
}

func checkPanel[T display.Color](panel display.Panel[T]) {
	// Assert the method set the compositor drives, line by line.
	var _ interface {
		Configure() error
		Size() (int16, int16)
		SetOrientation(display.Orientation) error
		SetWindow(x0, y0, x1, y1 int16) error
		StartLine([]T) error
		TransferComplete() bool
		StopTransfer() error
	} = panel

	display.New[T](panel, nil, nil, display.Config{})
}
