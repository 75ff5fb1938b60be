package settings

import (
	"context"
	"log/slog"
	"sync"

	"orrery-server/internal/shared/errors"
)

// Service owns the current settings. Writers race freely and the last one
// wins; the frame loop reads a consistent copy once per frame.
type Service struct {
	mu      sync.RWMutex
	current Settings
	store   Store
	logger  *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	logger.Debug("Initializing settings service")
	return &Service{
		current: Defaults(),
		store:   store,
		logger:  logger,
	}
}

// Init restores previously saved settings. Invalid or missing documents leave
// the defaults in place.
func (s *Service) Init(ctx context.Context) error {
	logger := s.logger.With("component", "settings_service", "operation", "init")

	saved, ok, err := s.store.Load(ctx)
	if err != nil {
		return errors.WrapExternal("failed to load saved settings", err)
	}
	if !ok {
		logger.Info("No saved settings, using defaults")
		return nil
	}
	if err := saved.Validate(); err != nil {
		logger.Warn("Ignoring invalid saved settings", "error", err)
		return nil
	}

	s.mu.Lock()
	s.current = saved
	s.mu.Unlock()

	logger.Info("Settings restored", "speed", saved.Speed, "sun_scale", saved.SunScale, "planet_scale", saved.PlanetScale)
	return nil
}

func (s *Service) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies patch, validates the result and persists it
func (s *Service) Update(ctx context.Context, patch Patch) (Settings, error) {
	if patch.Empty() {
		return Settings{}, errors.Validation("at least one setting is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := patch.Apply(s.current)
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return Settings{}, errors.WrapExternal("failed to save settings", err)
	}

	s.current = next
	s.logger.Debug("Settings updated",
		"component", "settings_service",
		"speed", next.Speed,
		"sun_scale", next.SunScale,
		"planet_scale", next.PlanetScale,
	)
	return next, nil
}
