package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/pkg/database"
)

type rosterRepositoryImpl struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.Repository {
	return &rosterRepositoryImpl{db: db}
}

// Probe implements roster.Repository. A missing rosters relation surfaces as
// the raw pg error (SQLSTATE 42P01) so the store can treat it as non-fatal.
func (r *rosterRepositoryImpl) Probe(ctx context.Context) error {
	var one int
	err := r.db.QueryRow(ctx, `SELECT 1 FROM rosters LIMIT 1`).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Empty table still proves the relation exists.
			return nil
		}
		return err
	}
	return nil
}

// UpsertWeek implements roster.Repository.
func (r *rosterRepositoryImpl) UpsertWeek(ctx context.Context, locationID, weekKey string, grid roster.WeekGrid) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to encode week grid: %w", err)
	}

	query := `
		INSERT INTO rosters (location_id, week_key, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (location_id, week_key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, locationID, weekKey, data); err != nil {
		return fmt.Errorf("failed to upsert roster week: %w", err)
	}
	return nil
}

// GetWeek implements roster.Repository.
func (r *rosterRepositoryImpl) GetWeek(ctx context.Context, locationID, weekKey string) (roster.WeekGrid, bool, error) {
	var data []byte
	query := `SELECT data FROM rosters WHERE location_id = $1 AND week_key = $2`
	err := r.db.QueryRow(ctx, query, locationID, weekKey).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get roster week: %w", err)
	}

	var grid roster.WeekGrid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, false, fmt.Errorf("failed to decode week grid: %w", err)
	}
	return grid, true, nil
}
