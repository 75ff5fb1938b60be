package asset

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Handle is a resource slot that starts with a placeholder and is replaced
// at most once by a loaded resource. Readers never see a partial value.
type Handle[T any] struct {
	name        string
	placeholder *T
	loaded      atomic.Pointer[T]
}

func NewHandle[T any](name string, placeholder T) *Handle[T] {
	return &Handle[T]{name: name, placeholder: &placeholder}
}

func (h *Handle[T]) Name() string {
	return h.name
}

// Current returns the loaded resource, or the placeholder
func (h *Handle[T]) Current() T {
	if v := h.loaded.Load(); v != nil {
		return *v
	}
	return *h.placeholder
}

// Loaded reports whether the placeholder has been replaced
func (h *Handle[T]) Loaded() bool {
	return h.loaded.Load() != nil
}

// Resolve waits for f and swaps its value in. A failed load keeps the
// placeholder and is only logged. Resolve returns once f completes or ctx is
// cancelled.
func (h *Handle[T]) Resolve(ctx context.Context, f *Future[T], logger *slog.Logger) {
	v, err := f.Wait(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("Asset failed to load, keeping placeholder", "asset", h.name, "error", err)
		}
		return
	}
	h.loaded.CompareAndSwap(nil, &v)
	logger.Debug("Asset loaded", "asset", h.name)
}
