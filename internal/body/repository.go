package body

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"orrery-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing body repository")
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *Repository) CountDefinitions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bodies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bodies: %w", err)
	}
	return count, nil
}

// CreateDefinitionsBatch inserts the whole catalog in one statement by
// expanding a JSON array server side
func (r *Repository) CreateDefinitionsBatch(ctx context.Context, defs []Definition, tx *database.Tx) (int, error) {
	if len(defs) == 0 {
		return 0, nil
	}

	exec := r.getExecutor(tx)

	logger := r.logger.With(
		"component", "body_repository",
		"operation", "create_definitions_batch",
		"count", len(defs),
	)
	logger.Debug("Creating body definitions in batch")

	defsJSON, err := json.Marshal(defs)
	if err != nil {
		logger.Error("Failed to marshal definitions to JSON", "error", err)
		return 0, fmt.Errorf("failed to marshal definitions: %w", err)
	}

	query := `
		INSERT INTO bodies (position, name, kind, parent_name, radius, inner_radius, color, texture,
			spin_rate, axial_tilt, period, semi_major_axis, eccentricity, distance)
		SELECT
			ord,
			data->>'name',
			data->>'kind',
			COALESCE(data->>'parent_name', ''),
			(data->>'radius')::double precision,
			COALESCE((data->>'inner_radius')::double precision, 0),
			data->>'color',
			COALESCE(data->>'texture', ''),
			COALESCE((data->>'spin_rate')::double precision, 0),
			COALESCE((data->>'axial_tilt')::double precision, 0),
			COALESCE((data->>'period')::double precision, 0),
			COALESCE((data->>'semi_major_axis')::double precision, 0),
			COALESCE((data->>'eccentricity')::double precision, 0),
			COALESCE((data->>'distance')::double precision, 0)
		FROM json_array_elements($1::json) WITH ORDINALITY AS t(data, ord)`

	result, err := exec.ExecContext(ctx, query, string(defsJSON))
	if err != nil {
		logger.Error("Failed to batch create body definitions", "error", err)
		return 0, fmt.Errorf("failed to batch create bodies: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted row count: %w", err)
	}

	logger.Info("Body definitions batch created successfully", "count", inserted)
	return int(inserted), nil
}

// GetDefinitions returns the stored catalog in insertion order
func (r *Repository) GetDefinitions(ctx context.Context) ([]Definition, error) {
	logger := r.logger.With("component", "body_repository", "operation", "get_definitions")

	query := `
		SELECT name, kind, parent_name, radius, inner_radius, color, texture,
			spin_rate, axial_tilt, period, semi_major_axis, eccentricity, distance
		FROM bodies
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query bodies", "error", err)
		return nil, fmt.Errorf("failed to query bodies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var defs []Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			logger.Error("Failed to scan body row", "error", err)
			return nil, fmt.Errorf("failed to scan body: %w", err)
		}
		defs = append(defs, def)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating bodies: %w", err)
	}

	logger.Debug("Body definitions retrieved", "count", len(defs))
	return defs, nil
}

func scanDefinition(rows *sql.Rows) (Definition, error) {
	var def Definition
	err := rows.Scan(
		&def.Name,
		&def.Kind,
		&def.ParentName,
		&def.Radius,
		&def.InnerRadius,
		&def.Color,
		&def.Texture,
		&def.SpinRate,
		&def.AxialTilt,
		&def.Period,
		&def.SemiMajorAxis,
		&def.Eccentricity,
		&def.Distance,
	)
	return def, err
}
