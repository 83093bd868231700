package directory

import "context"

// Service owns the session's employee and location sets and persists them
// with the same remote-first, cache-mirror policy as the roster store.
type Service interface {
	// LoadSets primes the session sets from the remote store or the local
	// cache, keeping the configured defaults when neither has data.
	LoadSets(ctx context.Context)

	// Employees returns the employee names in display order.
	Employees() []string

	// Locations returns the location names in display order.
	Locations() []string

	// SaveEmployees replaces the employee set. success=false means the set
	// was saved locally only.
	SaveEmployees(ctx context.Context, names []string) (success bool, err error)

	// SaveLocations replaces the location set. success has SaveEmployees
	// semantics.
	SaveLocations(ctx context.Context, names []string) (success bool, err error)
}
