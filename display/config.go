package display

import (
	"log/slog"
	"time"
)

// Config configures a Compositor. The zero value is usable: zero fields are
// replaced with defaults by New.
type Config struct {
	// Orientation is the initial scan orientation.
	Orientation Orientation

	// FrameTimeout is how long the render loop waits for a redraw request
	// before it samples the touch sensor anyway. Default 100ms.
	FrameTimeout time.Duration

	// TouchLockTimeout is how long the render loop waits for the touch bus
	// and touch state before skipping a sample. Default 1ms.
	TouchLockTimeout time.Duration

	// TransferTimeout is the time after which a line transfer that hasn't
	// completed is considered stalled. Default 1s.
	TransferTimeout time.Duration

	// MaxPendingFrames is the number of redraw requests that can be queued.
	// Further requests are merged into the pending ones. Default 1.
	MaxPendingFrames int

	// TouchBusSpeed is the bus frequency used while talking to the touch
	// controller, in Hz. Zero leaves the bus speed alone.
	TouchBusSpeed uint32

	// Calibration maps raw touch samples to screen coordinates.
	Calibration Calibration

	// Logger receives diagnostics. Default slog.Default().
	Logger *slog.Logger
}

func (c *Config) setDefaults() {
	if c.FrameTimeout == 0 {
		c.FrameTimeout = 100 * time.Millisecond
	}
	if c.TouchLockTimeout == 0 {
		c.TouchLockTimeout = time.Millisecond
	}
	if c.TransferTimeout == 0 {
		c.TransferTimeout = time.Second
	}
	if c.MaxPendingFrames <= 0 {
		c.MaxPendingFrames = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
