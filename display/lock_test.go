package display

import (
	"context"
	"testing"
	"time"
)

func TestLock(t *testing.T) {
	l := NewLock()
	if !l.TryLock() {
		t.Fatal("could not take a free lock")
	}
	if l.TryLock() {
		t.Error("took a lock twice")
	}
	if err := l.LockTimeout(0); err != ErrLockTimeout {
		t.Errorf("expected ErrLockTimeout without waiting, got %v", err)
	}
	if err := l.LockTimeout(time.Millisecond); err != ErrLockTimeout {
		t.Errorf("expected ErrLockTimeout after waiting, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Lock(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	done := make(chan error)
	go func() {
		done <- l.LockTimeout(-1)
	}()
	l.Unlock()
	if err := <-done; err != nil {
		t.Errorf("waiting for the lock: %v", err)
	}
	l.Unlock()
	if err := l.LockTimeout(time.Millisecond); err != nil {
		t.Errorf("lock not free after unlock: %v", err)
	}
}
