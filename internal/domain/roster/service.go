package roster

import "context"

// Store is the roster session store: an in-memory weekly grid per WeekKey
// with an upsert-or-fallback persistence policy against the remote store,
// mirrored into a local cache and reconciled via a change-notification
// stream.
type Store interface {
	// Initialize connects to the remote store: one existence probe (a missing
	// rosters relation is non-fatal) and, on success, the change subscription.
	// Any other probe error leaves the store disconnected and usable in
	// local-only mode.
	Initialize(ctx context.Context) error

	// Connected reports whether the remote store is currently usable.
	Connected() bool

	// Load reads the grid for weekKey: remote first when connected, then the
	// local cache. found is false when neither layer has the week.
	Load(ctx context.Context, weekKey string) (grid WeekGrid, found bool)

	// Save persists the grid: remote write first, local cache mirror always,
	// change broadcast always. success=false means "saved locally only".
	Save(ctx context.Context, weekKey string, grid WeekGrid) (success bool)

	// Week returns the session grid for weekKey, loading or materializing an
	// empty grid (every configured location × day) on first access.
	Week(ctx context.Context, weekKey string) (WeekGrid, error)

	// UpsertShift replaces-or-adds the shift in the week's grid and persists
	// the week. success has Save semantics.
	UpsertShift(ctx context.Context, weekKey, location, day string, s Shift) (success bool, err error)

	// DeleteShift removes the employee's shift from the week's grid and
	// persists the week. success has Save semantics.
	DeleteShift(ctx context.Context, weekKey, location, day, employee string) (success bool, err error)

	// SetPublicHoliday marks or unmarks a day label as a public holiday.
	SetPublicHoliday(ctx context.Context, dayLabel string, holiday bool)

	// PublicHolidays returns a copy of the holiday set keyed by day label.
	PublicHolidays() map[string]bool

	// Snapshot returns a copy of every week grid currently held in session
	// state, keyed by WeekKey.
	Snapshot() map[string]WeekGrid

	// OnChange subscribes fn to mutation broadcasts. The returned function
	// unsubscribes and is safe to call from within fn itself.
	OnChange(fn Listener) (unsubscribe func())
}
