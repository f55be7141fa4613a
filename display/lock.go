package display

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"
)

// Lock is a non-reentrant mutex that supports bounded waiting. The compositor
// uses three of them: the line lock (registry), the frame lock and the touch
// lock.
type Lock struct {
	sem *semaphore.Weighted
}

// NewLock returns a new unlocked Lock.
func NewLock() *Lock {
	return &Lock{sem: semaphore.NewWeighted(1)}
}

// Lock blocks until the lock is acquired or ctx is done. It returns
// ErrLockTimeout when the context deadline passed, or the context error when
// it was cancelled.
func (l *Lock) Lock(ctx context.Context) error {
	err := l.sem.Acquire(ctx, 1)
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrLockTimeout
	}
	return err
}

// LockTimeout waits at most timeout for the lock. A negative timeout waits
// forever and a zero timeout only tries once.
func (l *Lock) LockTimeout(timeout time.Duration) error {
	if timeout < 0 {
		return l.Lock(context.Background())
	}
	if timeout == 0 {
		if !l.sem.TryAcquire(1) {
			return ErrLockTimeout
		}
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return l.Lock(ctx)
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *Lock) TryLock() bool {
	return l.sem.TryAcquire(1)
}

// Unlock releases the lock. Unlocking a lock that isn't held panics.
func (l *Lock) Unlock() {
	l.sem.Release(1)
}
