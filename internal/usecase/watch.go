package usecase

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum"
)

// watchHandle owns the subscriptions of a live view and the goroutine reducing them.
// Updates is closed once the goroutine exits.
type watchHandle[T any] struct {
	updates   chan T
	errs      chan error
	done      chan struct{}
	subs      []ethereum.Subscription
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func newWatchHandle[T any](subs ...ethereum.Subscription) *watchHandle[T] {
	return &watchHandle[T]{
		updates: make(chan T, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		subs:    subs,
	}
}

// Updates delivers the initial view followed by every changed view
func (w *watchHandle[T]) Updates() <-chan T {
	return w.updates
}

// Err delivers at most one subscription failure
func (w *watchHandle[T]) Err() <-chan error {
	return w.errs
}

// Close stops the reducer and unsubscribes. It is safe to call more than once.
func (w *watchHandle[T]) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		for _, sub := range w.subs {
			sub.Unsubscribe()
		}
	})
}

func (w *watchHandle[T]) run(loop func()) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer close(w.updates)
		loop()
	}()
}

// emit blocks until the view is consumed or the watch stops
func (w *watchHandle[T]) emit(ctx context.Context, v T) bool {
	select {
	case w.updates <- v:
		return true
	case <-w.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (w *watchHandle[T]) fail(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

func unsubscribeAll(subs ...ethereum.Subscription) {
	for _, sub := range subs {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}
