// Package task runs a set of cooperative tasks, such as the display
// compositor and the application screens.
package task

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrDone can be returned by Loop to stop the task without stopping the
// others.
var ErrDone = errors.New("task: done")

// Task is a long-running job. Setup is called once, and then Loop is called
// over and over until it returns an error.
type Task interface {
	Setup(ctx context.Context) error
	Loop(ctx context.Context) error
}

// Run sets up all tasks, in order, and then runs their loops concurrently.
// No loop is started before every Setup has returned. When one of the tasks
// fails, the context passed to the others is cancelled and the first error is
// returned.
func Run(ctx context.Context, tasks ...Task) error {
	for _, t := range tasks {
		if err := t.Setup(ctx); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			for {
				err := t.Loop(ctx)
				if errors.Is(err, ErrDone) {
					return nil
				}
				if err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}

// Func is a Task made from two functions. Either may be nil.
type Func struct {
	SetupFunc func(ctx context.Context) error
	LoopFunc  func(ctx context.Context) error
}

func (f Func) Setup(ctx context.Context) error {
	if f.SetupFunc == nil {
		return nil
	}
	return f.SetupFunc(ctx)
}

func (f Func) Loop(ctx context.Context) error {
	if f.LoopFunc == nil {
		return ErrDone
	}
	return f.LoopFunc(ctx)
}
