package display

import "errors"

var (
	// Registry errors. They are returned to the caller but are not fatal:
	// showing an object twice simply leaves it where it was.
	ErrNullObject     = errors.New("display: nil object")
	ErrAlreadyListed  = errors.New("display: object is already shown")
	ErrNotListed      = errors.New("display: object is not shown")
	ErrLockTimeout    = errors.New("display: timeout waiting for lock")
	ErrBusTimeout     = errors.New("display: timeout waiting for touch bus")
	ErrDeviceNotReady = errors.New("display: device not ready")
	ErrNoTouch        = errors.New("display: no touch sensor configured")

	// ErrTransferStalled is returned by the compositor when the panel didn't
	// finish a line transfer within Config.TransferTimeout. This is not
	// recoverable: the compositor stops.
	ErrTransferStalled = errors.New("display: line transfer stalled")
)
