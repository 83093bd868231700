package directory

import "context"

// Repository - interface for the employees and locations tables. Each site
// stores its whole name list as one JSON array row, unique on location_id.
type Repository interface {
	UpsertEmployees(ctx context.Context, locationID string, names []string) error
	GetEmployees(ctx context.Context, locationID string) (names []string, found bool, err error)

	UpsertLocations(ctx context.Context, locationID string, names []string) error
	GetLocations(ctx context.Context, locationID string) (names []string, found bool, err error)
}
