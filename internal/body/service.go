package body

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"

	"orrery-server/internal/shared/database"
	apperrors "orrery-server/internal/shared/errors"
)

type Service struct {
	db     *database.DB
	repo   *Repository
	logger *slog.Logger
}

// NewService creates the catalog service. A nil db selects the built-in catalog.
func NewService(db *database.DB, logger *slog.Logger) *Service {
	logger.Debug("Initializing body service")

	s := &Service{
		db:     db,
		logger: logger,
	}
	if db != nil {
		s.repo = NewRepository(db, logger)
	}
	return s
}

// LoadDefinitions returns the catalog to simulate. Without a database it is
// the built-in catalog; an empty table is seeded with it first.
func (s *Service) LoadDefinitions(ctx context.Context) ([]Definition, error) {
	logger := s.logger.With("component", "body_service", "operation", "load_definitions")

	if s.repo == nil {
		logger.Debug("No database configured, using built-in catalog")
		return DefaultCatalog(), nil
	}

	count, err := s.repo.CountDefinitions(ctx)
	if err != nil {
		return nil, apperrors.WrapExternal("failed to count stored bodies", err)
	}

	if count == 0 {
		logger.Info("Body table is empty, seeding built-in catalog")
		if err := s.seed(ctx, DefaultCatalog()); err != nil {
			return nil, err
		}
	}

	defs, err := s.repo.GetDefinitions(ctx)
	if err != nil {
		return nil, apperrors.WrapExternal("failed to load stored bodies", err)
	}

	logger.Info("Catalog loaded from database", "count", len(defs))
	return defs, nil
}

func (s *Service) seed(ctx context.Context, defs []Definition) error {
	tx, err := s.db.BeginTxContext(ctx)
	if err != nil {
		return apperrors.WrapExternal("failed to begin seed transaction", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.Error("Failed to rollback seed transaction", "error", err)
		}
	}()

	if _, err := s.repo.CreateDefinitionsBatch(ctx, defs, tx); err != nil {
		return apperrors.WrapExternal("failed to seed catalog", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.WrapExternal("failed to commit seed transaction", err)
	}
	return nil
}

// BuildRegistry loads the catalog and builds the session's bodies
func (s *Service) BuildRegistry(ctx context.Context, belt BeltConfig, rng *rand.Rand) (*Registry, error) {
	defs, err := s.LoadDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	reg, err := NewRegistry(defs, belt, rng)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Body registry built",
		"star", reg.Star.Name,
		"primaries", len(reg.Primaries),
		"secondaries", len(reg.Secondaries),
		"rings", len(reg.Rings),
		"asteroids", len(reg.Asteroids),
	)
	return reg, nil
}
