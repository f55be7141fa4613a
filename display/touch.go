package display

import (
	"log/slog"
	"time"
)

// TouchResolver samples the touch sensor and turns changes in the touch state
// into actions for the objects in a registry.
type TouchResolver[T Color] struct {
	registry *Registry[T]
	sensor   TouchSensor
	bus      Bus
	busLock  *Lock
	busSpeed uint32
	timeout  time.Duration
	logger   *slog.Logger
	redraw   func()

	// Guarded by lock.
	lock        *Lock
	calibration Calibration
	touched     bool // state of the last sample, used to detect changes
	valid       bool // x and y may be returned by Get
	x, y        int
}

// hit is an action that still has to be delivered.
type hit[T Color] struct {
	obj    Object[T]
	action Action
}

func newTouchResolver[T Color](registry *Registry[T], sensor TouchSensor, bus Bus, busLock *Lock, config *Config, redraw func()) *TouchResolver[T] {
	return &TouchResolver[T]{
		registry:    registry,
		sensor:      sensor,
		bus:         bus,
		busLock:     busLock,
		busSpeed:    config.TouchBusSpeed,
		timeout:     config.TouchLockTimeout,
		logger:      config.Logger,
		redraw:      redraw,
		lock:        NewLock(),
		calibration: config.Calibration,
	}
}

// configure initializes the touch sensor at touch bus speed.
func (r *TouchResolver[T]) configure() error {
	if r.sensor == nil {
		return nil
	}
	s, err := openBusSession(r.busLock, r.bus, r.busSpeed, -1)
	if err != nil {
		return err
	}
	err = r.sensor.Configure()
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

// readRaw takes one uncalibrated sample. The bus lock is only waited for
// during timeout.
func (r *TouchResolver[T]) readRaw(timeout time.Duration) (x, y int, touched bool, err error) {
	if r.sensor == nil {
		return 0, 0, false, ErrNoTouch
	}
	s, err := openBusSession(r.busLock, r.bus, r.busSpeed, timeout)
	if err != nil {
		return 0, 0, false, err
	}
	if r.sensor.Touched() {
		x, y, touched = r.sensor.ReadRaw()
	}
	err = s.Close()
	return x, y, touched, err
}

// Poll samples the sensor once and dispatches the resulting actions. When the
// bus or the touch state is busy, the sample is skipped and ErrBusTimeout or
// ErrLockTimeout is returned.
func (r *TouchResolver[T]) Poll() error {
	if r.sensor == nil {
		return nil
	}
	rawX, rawY, touched, err := r.readRaw(r.timeout)
	if err != nil {
		return err
	}

	if err := r.lock.LockTimeout(r.timeout); err != nil {
		return err
	}
	x, y := r.calibration.Apply(rawX, rawY)
	r.lock.Unlock()

	return r.update(touched, x, y)
}

// update stores the new touch state and dispatches actions for the change
// from the previous state. The coordinates are ignored when not touched: the
// last touched position is kept.
func (r *TouchResolver[T]) update(touched bool, x, y int) error {
	if err := r.lock.LockTimeout(r.timeout); err != nil {
		return err
	}
	wasTouched, oldX, oldY := r.touched, r.x, r.y
	r.touched = touched
	r.valid = touched
	if touched {
		r.x, r.y = x, y
	} else {
		x, y = oldX, oldY
	}
	r.lock.Unlock()

	var hits []hit[T]
	r.registry.lock.LockTimeout(-1)
	switch {
	case wasTouched != touched:
		action := ActionUntouch
		if touched {
			action = ActionTouch
		}
		hits = r.registry.touchHit(hits, action, x, y)
	case touched && (x != oldX || y != oldY):
		hits = r.registry.moveHits(hits, oldX, oldY, x, y)
	}
	r.registry.lock.Unlock()

	for _, h := range hits {
		r.logger.Debug("touch action", "action", h.action, "x", x, "y", y)
		h.obj.Action(h.action, x, y)
	}
	if len(hits) != 0 && r.redraw != nil {
		r.redraw()
	}
	return nil
}

// Get returns the last touched position. It returns false when the screen is
// not touched (anymore), or when the touch state is busy. A release seen here
// only hides the position: the Untouch is still dispatched by the next Poll.
func (r *TouchResolver[T]) Get() (x, y int, ok bool) {
	touching := r.Touched()
	if r.lock.LockTimeout(r.timeout) != nil {
		return 0, 0, false
	}
	defer r.lock.Unlock()
	if r.valid && touching {
		return r.x, r.y, true
	}
	r.valid = false
	return 0, 0, false
}

// Touched asks the sensor whether the screen is pressed right now. If the bus
// is busy, the last sampled state is returned instead.
func (r *TouchResolver[T]) Touched() bool {
	if r.sensor == nil {
		return false
	}
	s, err := openBusSession(r.busLock, r.bus, r.busSpeed, r.timeout)
	if err != nil {
		r.lock.LockTimeout(-1)
		defer r.lock.Unlock()
		return r.touched
	}
	touched := r.sensor.Touched()
	s.Close()
	return touched
}

// SetCalibration replaces the calibration used for following samples.
func (r *TouchResolver[T]) SetCalibration(c Calibration) error {
	if err := r.lock.LockTimeout(-1); err != nil {
		return err
	}
	r.calibration = c
	r.lock.Unlock()
	return nil
}

// Calibration returns the calibration currently in use.
func (r *TouchResolver[T]) Calibration() Calibration {
	r.lock.LockTimeout(-1)
	defer r.lock.Unlock()
	return r.calibration
}

// touchHit finds the topmost active object at (x, y). Touch and untouch
// actions go to one object only. The line lock must be held.
func (r *Registry[T]) touchHit(hits []hit[T], action Action, x, y int) []hit[T] {
	for i := len(r.objects) - 1; i >= 0; i-- {
		obj := r.objects[i]
		n := obj.node()
		if n.active && n.contains(x, y) {
			return append(hits, hit[T]{obj, action})
		}
	}
	return hits
}

// moveHits finds the objects affected by a touch moving from (oldX, oldY) to
// (x, y), topmost first. The topmost active object containing both points gets
// a move action and ends the search. Objects scanned before it that contained
// the old point get a move-out, and the topmost object that contains only the
// new point gets a move-in. The line lock must be held.
func (r *Registry[T]) moveHits(hits []hit[T], oldX, oldY, x, y int) []hit[T] {
	movedIn := false
	for i := len(r.objects) - 1; i >= 0; i-- {
		obj := r.objects[i]
		n := obj.node()
		if !n.active {
			continue
		}
		wasInside := n.contains(oldX, oldY)
		inside := n.contains(x, y)
		switch {
		case wasInside && inside:
			return append(hits, hit[T]{obj, ActionMove})
		case wasInside:
			hits = append(hits, hit[T]{obj, ActionMoveOut})
		case inside && !movedIn:
			hits = append(hits, hit[T]{obj, ActionMoveIn})
			movedIn = true
		}
	}
	return hits
}
