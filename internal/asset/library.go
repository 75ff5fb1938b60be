package asset

import (
	"context"
	"log/slog"
	"sync"

	"orrery-server/internal/body"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// Library holds one texture handle per textured body and the environment map
type Library struct {
	loader      *Loader
	logger      *slog.Logger
	textures    map[uuid.UUID]*Handle[Resource]
	environment *Handle[Resource]
	envPath     string
	wg          sync.WaitGroup
}

func NewLibrary(loader *Loader, reg *body.Registry, environmentMap string, logger *slog.Logger) *Library {
	lib := &Library{
		loader:      loader,
		logger:      logger.With("component", "asset_library"),
		textures:    make(map[uuid.UUID]*Handle[Resource]),
		environment: NewHandle("environment", Placeholder(colorful.Color{})),
		envPath:     environmentMap,
	}
	for _, b := range reg.Celestial() {
		if b.Texture == "" {
			continue
		}
		lib.textures[b.ID] = NewHandle(b.Texture, Placeholder(b.Color))
	}
	return lib
}

// Start kicks off every load. Each handle swaps its resource in as soon as
// its own load completes.
func (l *Library) Start(ctx context.Context) {
	l.logger.Info("Loading assets", "textures", len(l.textures), "environment", l.envPath)

	for _, h := range l.textures {
		name := h.Name()
		f := Go(ctx, func(ctx context.Context) (Resource, error) {
			return l.loader.Texture(ctx, name)
		})
		l.resolve(ctx, h, f)
	}

	if l.envPath != "" {
		f := Go(ctx, func(ctx context.Context) (Resource, error) {
			return l.loader.Environment(ctx, l.envPath)
		})
		l.resolve(ctx, l.environment, f)
	}
}

func (l *Library) resolve(ctx context.Context, h *Handle[Resource], f *Future[Resource]) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		h.Resolve(ctx, f, l.logger)
	}()
}

// Wait blocks until every load started by Start has settled
func (l *Library) Wait() {
	l.wg.Wait()
}

// Texture returns the handle of a body, ok=false if the body has no texture
// configured
func (l *Library) Texture(id uuid.UUID) (*Handle[Resource], bool) {
	h, ok := l.textures[id]
	return h, ok
}

func (l *Library) Environment() *Handle[Resource] {
	return l.environment
}
