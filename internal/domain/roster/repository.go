package roster

import "context"

// Repository - interface for the rosters table. Weeks are stored as opaque
// JSON documents upserted by their (location_id, week_key) unique key.
type Repository interface {
	// Probe issues a single existence check against the rosters table. A
	// missing relation is reported as the underlying database error so the
	// caller can decide whether it is fatal.
	Probe(ctx context.Context) error

	// UpsertWeek writes the grid for (locationID, weekKey), replacing any
	// previous document.
	UpsertWeek(ctx context.Context, locationID, weekKey string, grid WeekGrid) error

	// GetWeek point-looks-up the grid for (locationID, weekKey). Absence is
	// not an error: found is false and err is nil for an unpopulated week.
	GetWeek(ctx context.Context, locationID, weekKey string) (grid WeekGrid, found bool, err error)
}
