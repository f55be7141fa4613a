package display

import "time"

// busSession is exclusive access to the touch bus at a given speed. Close
// restores the previous speed and releases the bus.
type busSession struct {
	lock   *Lock
	bus    Bus
	speed  uint32 // speed to restore, 0 if unchanged
	closed bool
}

// openBusSession acquires the bus lock, waiting at most timeout (negative
// means forever), and switches the bus to the given speed. A nil bus or a
// zero speed only takes the lock.
func openBusSession(lock *Lock, bus Bus, hz uint32, timeout time.Duration) (*busSession, error) {
	if err := lock.LockTimeout(timeout); err != nil {
		return nil, ErrBusTimeout
	}
	s := &busSession{lock: lock, bus: bus}
	if bus != nil && hz != 0 {
		if old := bus.Speed(); old != hz {
			if err := bus.SetSpeed(hz); err != nil {
				lock.Unlock()
				return nil, err
			}
			s.speed = old
		}
	}
	return s, nil
}

// Close ends the session. Calling it more than once is a no-op.
func (s *busSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if s.speed != 0 {
		err = s.bus.SetSpeed(s.speed)
	}
	s.lock.Unlock()
	return err
}
