// Package asset loads textures and the environment map in the background and
// swaps them into place once they are ready. Until then every consumer sees a
// fixed placeholder.
package asset

import (
	"context"
	"sync"
)

// Future is the result of a one-shot background job
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// Go runs fn on its own goroutine and returns its future
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		v, err := fn(ctx)
		f.complete(v, err)
	}()
	return f
}

// Completed returns a future that is already resolved
func Completed[T any](v T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.complete(v, err)
	return f
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
	})
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get returns the result without blocking; ok is false while pending
func (f *Future[T]) Get() (v T, ok bool, err error) {
	if !f.Ready() {
		return v, false, nil
	}
	return f.value, true, f.err
}

// Wait blocks until the future completes or ctx is done
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
