package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shriajj/roster-backend-go/internal/domain/directory"
	"github.com/shriajj/roster-backend-go/internal/pkg/database"
)

type directoryRepositoryImpl struct {
	db *database.DB
}

func NewDirectoryRepository(db *database.DB) directory.Repository {
	return &directoryRepositoryImpl{db: db}
}

// UpsertEmployees implements directory.Repository.
func (r *directoryRepositoryImpl) UpsertEmployees(ctx context.Context, locationID string, names []string) error {
	return r.upsertNames(ctx, "employees", "employees", locationID, names)
}

// GetEmployees implements directory.Repository.
func (r *directoryRepositoryImpl) GetEmployees(ctx context.Context, locationID string) ([]string, bool, error) {
	return r.getNames(ctx, "employees", "employees", locationID)
}

// UpsertLocations implements directory.Repository.
func (r *directoryRepositoryImpl) UpsertLocations(ctx context.Context, locationID string, names []string) error {
	return r.upsertNames(ctx, "locations", "locations", locationID, names)
}

// GetLocations implements directory.Repository.
func (r *directoryRepositoryImpl) GetLocations(ctx context.Context, locationID string) ([]string, bool, error) {
	return r.getNames(ctx, "locations", "locations", locationID)
}

// upsertNames writes the whole name list as one JSON array row, unique on
// location_id. table and column are fixed identifiers, never user input.
func (r *directoryRepositoryImpl) upsertNames(ctx context.Context, table, column, locationID string, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", table, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (location_id, %s, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (location_id)
		DO UPDATE SET %s = EXCLUDED.%s, updated_at = NOW()
	`, table, column, column, column)
	if _, err := r.db.Exec(ctx, query, locationID, data); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", table, err)
	}
	return nil
}

func (r *directoryRepositoryImpl) getNames(ctx context.Context, table, column, locationID string) ([]string, bool, error) {
	var data []byte
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE location_id = $1`, column, table)
	err := r.db.QueryRow(ctx, query, locationID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", table, err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", table, err)
	}
	return names, true, nil
}
