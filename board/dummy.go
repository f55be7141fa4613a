package board

import "errors"

// This file contains dummy devices, for devices which don't support a
// particular kind of device.

var errShortLine = errors.New("board: line buffer smaller than window")

// Dummy button input that doesn't actually read any inputs.
// Used for boards that don't have any buttons.
type noButtons struct{}

func (b noButtons) Configure() {
}

func (b noButtons) ReadInput() {
}

func (b noButtons) NextEvent() KeyEvent {
	return NoKeyEvent
}
