package display

import (
	"context"
	"errors"
	"image"
	"runtime"
	"sync/atomic"
	"time"
)

// Compositor draws the objects in its registry to a panel, one scan line at a
// time, and dispatches touch events to them.
//
// Two line buffers are used: while one line is being sent to the panel, the
// next line is composited in the other buffer.
type Compositor[T Color] struct {
	panel    Panel[T]
	registry *Registry[T]
	touch    *TouchResolver[T]
	config   Config

	frameLock *Lock
	busLock   *Lock
	trigger   chan struct{}

	// Only changed with the frame lock held.
	orientation Orientation
	buffers     [2][]T

	width  atomic.Int32
	height atomic.Int32
	fps    atomic.Uint32 // frames per second times 10
}

// New creates a compositor for the given panel. The touch sensor and the bus
// may be nil: without a sensor there are no touch events, and without a bus
// the touch controller has a bus of its own.
func New[T Color](panel Panel[T], sensor TouchSensor, bus Bus, config Config) *Compositor[T] {
	config.setDefaults()
	c := &Compositor[T]{
		panel:       panel,
		registry:    NewRegistry[T](),
		config:      config,
		frameLock:   NewLock(),
		busLock:     NewLock(),
		trigger:     make(chan struct{}, config.MaxPendingFrames),
		orientation: config.Orientation,
	}
	c.touch = newTouchResolver(c.registry, sensor, bus, c.busLock, &c.config, c.RequestRedraw)
	return c
}

// Setup initializes the panel and the touch sensor.
func (c *Compositor[T]) Setup(ctx context.Context) error {
	if err := c.frameLock.Lock(ctx); err != nil {
		return err
	}
	defer c.frameLock.Unlock()

	if err := c.panel.Configure(); err != nil {
		return err
	}
	if err := c.setOrientation(c.orientation); err != nil {
		return err
	}
	if err := c.touch.configure(); err != nil {
		return err
	}
	c.config.Logger.Info("display configured",
		"width", c.width.Load(),
		"height", c.height.Load(),
		"orientation", c.orientation)

	// Draw the first frame without waiting for a request.
	c.RequestRedraw()
	return nil
}

// setOrientation configures the panel and resizes the line buffers. The frame
// lock must be held.
func (c *Compositor[T]) setOrientation(orientation Orientation) error {
	if err := c.panel.SetOrientation(orientation); err != nil {
		return err
	}
	width, height := c.panel.Size()
	if width <= 0 || height <= 0 {
		return ErrDeviceNotReady
	}
	c.orientation = orientation
	c.width.Store(int32(width))
	c.height.Store(int32(height))

	length := int(width)
	if height > width {
		length = int(height)
	}
	for i := range c.buffers {
		if cap(c.buffers[i]) < length {
			c.buffers[i] = make([]T, length)
		}
	}
	return nil
}

// Loop runs one cycle of the render loop: it waits for a redraw request (at
// most Config.FrameTimeout), draws a frame if one was requested, and samples
// the touch sensor. It only returns an error when the context is done or the
// panel stopped responding.
func (c *Compositor[T]) Loop(ctx context.Context) error {
	timer := time.NewTimer(c.config.FrameTimeout)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.trigger:
		if err := c.drawFrame(ctx); err != nil {
			if errors.Is(err, ErrTransferStalled) {
				c.config.Logger.Error("display stopped", "err", err)
			}
			return err
		}
	case <-timer.C:
	}

	if err := c.touch.Poll(); err != nil {
		c.config.Logger.Debug("touch sample skipped", "err", err)
	}
	return nil
}

// Run calls Setup and then Loop until an error occurs.
func (c *Compositor[T]) Run(ctx context.Context) error {
	if err := c.Setup(ctx); err != nil {
		return err
	}
	for {
		if err := c.Loop(ctx); err != nil {
			return err
		}
	}
}

// drawFrame composites and sends all lines of the screen.
func (c *Compositor[T]) drawFrame(ctx context.Context) error {
	if err := c.frameLock.Lock(ctx); err != nil {
		return err
	}
	defer c.frameLock.Unlock()
	if err := c.busLock.Lock(ctx); err != nil {
		return err
	}
	defer c.busLock.Unlock()

	start := time.Now()
	width, height := int(c.width.Load()), int(c.height.Load())
	if err := c.panel.SetWindow(0, 0, int16(width-1), int16(height-1)); err != nil {
		return err
	}

	lines, length := height, width
	if c.orientation == Vertical {
		lines, length = width, height
	}
	for i := 0; i < lines; i++ {
		// The buffer was last used two lines ago. That transfer has completed
		// before the previous line was started.
		buf := c.buffers[i%2][:length]
		clear(buf)

		c.registry.lock.LockTimeout(-1)
		if c.orientation == Vertical {
			c.registry.drawColumn(buf, i)
		} else {
			c.registry.drawRow(buf, i)
		}
		c.registry.lock.Unlock()

		if err := c.waitTransfer(); err != nil {
			return err
		}
		if err := c.panel.StartLine(buf); err != nil {
			return err
		}
	}
	if err := c.waitTransfer(); err != nil {
		return err
	}
	if err := c.panel.StopTransfer(); err != nil {
		return err
	}

	if elapsed := time.Since(start); elapsed > 0 {
		c.fps.Store(uint32(10 * time.Second / elapsed))
	}
	return nil
}

// waitTransfer yields until the panel finished sending the last line.
func (c *Compositor[T]) waitTransfer() error {
	if c.panel.TransferComplete() {
		return nil
	}
	deadline := time.Now().Add(c.config.TransferTimeout)
	for !c.panel.TransferComplete() {
		if time.Now().After(deadline) {
			return ErrTransferStalled
		}
		runtime.Gosched()
	}
	return nil
}

// RequestRedraw asks the render loop to draw a new frame. Requests made while
// Config.MaxPendingFrames requests are already waiting are merged with them.
func (c *Compositor[T]) RequestRedraw() {
	select {
	case c.trigger <- struct{}{}:
	default:
		c.config.Logger.Debug("redraw request merged")
	}
}

// Registry returns the registry of shown objects.
func (c *Compositor[T]) Registry() *Registry[T] {
	return c.registry
}

// Show adds the object to the screen at the given depth. Depth 0 keeps the
// depth the object had the last time it was shown.
func (c *Compositor[T]) Show(obj Object[T], depth uint32) error {
	if obj == nil {
		return ErrNullObject
	}
	c.registry.lock.LockTimeout(-1)
	defer c.registry.lock.Unlock()
	if depth == 0 {
		depth = obj.node().depth
	}
	return c.registry.insert(obj, depth)
}

// Hide removes the object from the screen.
func (c *Compositor[T]) Hide(obj Object[T]) error {
	return c.registry.Remove(obj)
}

// IsShown returns whether the object is on screen.
func (c *Compositor[T]) IsShown(obj Object[T]) bool {
	if obj == nil {
		return false
	}
	c.registry.lock.LockTimeout(-1)
	defer c.registry.lock.Unlock()
	return obj.node().listed
}

// Move moves the object to (x, y), or by (x, y) if relative is set.
func (c *Compositor[T]) Move(obj Object[T], x, y int, relative bool) error {
	if obj == nil {
		return ErrNullObject
	}
	c.registry.lock.LockTimeout(-1)
	defer c.registry.lock.Unlock()
	n := obj.node()
	delta := image.Pt(x, y)
	if !relative {
		delta = delta.Sub(n.bounds.Min)
	}
	n.bounds = n.bounds.Add(delta)
	return nil
}

// Modify calls fn with the line lock held. Use it to change objects that are
// on screen, so that no line is drawn with a half-updated object.
func (c *Compositor[T]) Modify(fn func()) {
	c.registry.lock.LockTimeout(-1)
	defer c.registry.lock.Unlock()
	fn()
}

// LockDisplay waits until no frame is being drawn and prevents new frames from
// being drawn until UnlockDisplay is called. Use this to make several changes
// appear at once.
func (c *Compositor[T]) LockDisplay(ctx context.Context) error {
	return c.frameLock.Lock(ctx)
}

// UnlockDisplay releases the lock taken by LockDisplay.
func (c *Compositor[T]) UnlockDisplay() {
	c.frameLock.Unlock()
}

// LockLine takes the line lock, which prevents the registry from being drawn
// or changed. Show, Hide, Move and Modify must not be called while holding
// it.
func (c *Compositor[T]) LockLine(ctx context.Context) error {
	return c.registry.lock.Lock(ctx)
}

// UnlockLine releases the lock taken by LockLine.
func (c *Compositor[T]) UnlockLine() {
	c.registry.lock.Unlock()
}

// Touch returns the current touch position, or false when the screen isn't
// touched.
func (c *Compositor[T]) Touch() (x, y int, ok bool) {
	return c.touch.Get()
}

// IsTouched returns whether the screen is pressed right now.
func (c *Compositor[T]) IsTouched() bool {
	return c.touch.Touched()
}

// ReadRawTouch returns an uncalibrated touch sample, for calibration.
func (c *Compositor[T]) ReadRawTouch() (x, y int, touched bool, err error) {
	return c.touch.readRaw(-1)
}

// SetCalibration sets the touch calibration.
func (c *Compositor[T]) SetCalibration(calibration Calibration) error {
	return c.touch.SetCalibration(calibration)
}

// Calibration returns the touch calibration in use.
func (c *Compositor[T]) Calibration() Calibration {
	return c.touch.Calibration()
}

// SetOrientation switches the scan orientation. It waits until the current
// frame is done.
func (c *Compositor[T]) SetOrientation(ctx context.Context, orientation Orientation) error {
	if err := c.frameLock.Lock(ctx); err != nil {
		return err
	}
	defer c.frameLock.Unlock()
	if err := c.setOrientation(orientation); err != nil {
		return err
	}
	c.RequestRedraw()
	return nil
}

// Size returns the current screen size.
func (c *Compositor[T]) Size() (width, height int) {
	return int(c.width.Load()), int(c.height.Load())
}

// FPS returns the frame rate of the last frame, in tenths of frames per
// second.
func (c *Compositor[T]) FPS() uint32 {
	return c.fps.Load()
}
