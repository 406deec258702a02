package services

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrBusy = errors.New("a request is already in progress")

// Task runs one outbound call at a time under a timeout. Busy is true
// exactly while a call runs, so a hung request ends at the deadline instead
// of blocking further submissions forever.
type Task struct {
	timeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewTask returns a Task that bounds each run by timeout. A zero timeout
// leaves the deadline to the caller's context.
func NewTask(timeout time.Duration) *Task {
	return &Task{timeout: timeout}
}

// Run calls fn with a cancellable child of ctx. It returns ErrBusy without
// calling fn when another run is in progress.
func (t *Task) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	if t.cancel != nil {
		t.mu.Unlock()
		return ErrBusy
	}
	var cancel context.CancelFunc
	if t.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	t.cancel = cancel
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.cancel = nil
		t.mu.Unlock()
		cancel()
	}()

	return fn(ctx)
}

func (t *Task) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Cancel aborts the running call, if any, and reports whether there was one.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel == nil {
		return false
	}
	t.cancel()
	return true
}
