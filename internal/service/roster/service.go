package roster

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shriajj/roster-backend-go/internal/domain/directory"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/pkg/cache"
	"github.com/shriajj/roster-backend-go/internal/pkg/database"
	"github.com/shriajj/roster-backend-go/internal/pkg/week"
)

// remoteTimeout bounds every call to the remote store; expiry counts as a
// remote failure and falls back to the local cache.
const remoteTimeout = 5 * time.Second

// pgUndefinedTable is SQLSTATE 42P01, "relation does not exist". The probe
// treats it as non-fatal: the connection is usable, the schema just has not
// been applied yet.
const pgUndefinedTable = "42P01"

// Channel names the store listens on for remote-origin changes.
const (
	ChannelRosterChanges   = "roster_changes"
	ChannelEmployeeChanges = "employee_changes"
)

type rosterStoreImpl struct {
	repo        roster.Repository
	dir         directory.Service
	cache       *cache.FileCache
	listener    *database.ChangeListener
	broadcaster *Broadcaster
	locationID  string
	logger      *slog.Logger

	mu        sync.Mutex
	connected bool
	grids     map[string]roster.WeekGrid
	holidays  map[string]bool
}

// NewRosterStore builds the session store. listener may be nil for
// local-only deployments; dir provides the configured locations used to
// materialize empty weeks.
func NewRosterStore(
	repo roster.Repository,
	dir directory.Service,
	fileCache *cache.FileCache,
	listener *database.ChangeListener,
	broadcaster *Broadcaster,
	locationID string,
	logger *slog.Logger,
) roster.Store {
	s := &rosterStoreImpl{
		repo:        repo,
		dir:         dir,
		cache:       fileCache,
		listener:    listener,
		broadcaster: broadcaster,
		locationID:  locationID,
		logger:      logger,
		grids:       make(map[string]roster.WeekGrid),
		holidays:    make(map[string]bool),
	}
	// Holiday flags live only in the local mirror, so they are recovered
	// here rather than in Initialize: an offline restart keeps them too.
	s.cache.Get(s.holidaysKey(), &s.holidays)
	if s.holidays == nil {
		s.holidays = make(map[string]bool)
	}
	return s
}

// Initialize implements roster.Store.
func (s *rosterStoreImpl) Initialize(ctx context.Context) error {
	if s.repo == nil {
		return errors.New("no remote store configured")
	}

	probeCtx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	if err := s.repo.Probe(probeCtx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			s.logger.Warn("rosters relation missing, connection still usable", "error", err)
		} else {
			s.logger.Error("remote store probe failed, staying offline", "error", err)
			return err
		}
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()

	if s.listener != nil {
		go s.listener.Run(ctx, s.handleNotification)
	}
	s.logger.Info("remote store connected", "location_id", s.locationID)
	return nil
}

// Connected implements roster.Store.
func (s *rosterStoreImpl) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Load implements roster.Store: remote first when connected, then the local
// cache. A remote hit never touches the cache.
func (s *rosterStoreImpl) Load(ctx context.Context, weekKey string) (roster.WeekGrid, bool) {
	if s.Connected() {
		rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
		grid, found, err := s.repo.GetWeek(rctx, s.locationID, weekKey)
		cancel()
		if err != nil {
			s.logger.Warn("remote read failed, falling back to cache", "week_key", weekKey, "error", err)
		} else if found {
			return grid, true
		}
	}

	var grid roster.WeekGrid
	if s.cache.Get(s.weekCacheKey(weekKey), &grid) {
		return grid, true
	}
	return nil, false
}

// Save implements roster.Store. The session copy is replaced under the lock
// and a frozen snapshot goes to persistence, so no encoder ever sees a grid
// another request is still mutating.
func (s *rosterStoreImpl) Save(ctx context.Context, weekKey string, grid roster.WeekGrid) bool {
	s.mu.Lock()
	session := grid.Clone()
	s.grids[weekKey] = session
	frozen := session.Clone()
	s.mu.Unlock()

	return s.persist(ctx, weekKey, frozen)
}

// persist writes a frozen grid snapshot out. The cache mirror and the change
// broadcast run even when the remote write fails: no write is ever lost,
// success=false only means "saved locally only".
func (s *rosterStoreImpl) persist(ctx context.Context, weekKey string, frozen roster.WeekGrid) bool {
	success := false
	if s.Connected() {
		rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
		err := s.repo.UpsertWeek(rctx, s.locationID, weekKey, frozen)
		cancel()
		if err != nil {
			s.logger.Warn("remote write failed, saving locally only", "week_key", weekKey, "error", err)
		} else {
			success = true
		}
	}

	if err := s.cache.Put(s.weekCacheKey(weekKey), frozen); err != nil {
		s.logger.Error("cache mirror failed", "week_key", weekKey, "error", err)
	}

	s.broadcaster.Notify(roster.Change{
		Kind:       roster.ChangeRosterUpdated,
		LocationID: s.locationID,
		WeekKey:    weekKey,
	})
	return success
}

// Week implements roster.Store. The returned grid is a copy: callers may
// read or encode it without holding any store lock.
func (s *rosterStoreImpl) Week(ctx context.Context, weekKey string) (roster.WeekGrid, error) {
	if err := s.ensureWeek(ctx, weekKey); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grids[weekKey].Clone(), nil
}

// ensureWeek loads or materializes the session grid for weekKey.
func (s *rosterStoreImpl) ensureWeek(ctx context.Context, weekKey string) error {
	s.mu.Lock()
	_, ok := s.grids[weekKey]
	s.mu.Unlock()
	if ok {
		return nil
	}

	grid, found := s.Load(ctx, weekKey)
	if !found {
		start, err := week.ParseKey(weekKey)
		if err != nil {
			return roster.ErrInvalidWeekKey
		}
		grid = roster.NewWeekGrid(s.dir.Locations(), week.DayLabels(start))
	}

	s.mu.Lock()
	if _, ok := s.grids[weekKey]; !ok {
		s.grids[weekKey] = grid
	}
	s.mu.Unlock()
	return nil
}

// UpsertShift implements roster.Store. The session grid is mutated and
// snapshotted under one critical section.
func (s *rosterStoreImpl) UpsertShift(ctx context.Context, weekKey, location, day string, shift roster.Shift) (bool, error) {
	if err := s.ensureWeek(ctx, weekKey); err != nil {
		return false, err
	}

	s.mu.Lock()
	grid := s.grids[weekKey]
	grid.UpsertShift(location, day, shift)
	frozen := grid.Clone()
	s.mu.Unlock()

	return s.persist(ctx, weekKey, frozen), nil
}

// DeleteShift implements roster.Store.
func (s *rosterStoreImpl) DeleteShift(ctx context.Context, weekKey, location, day, employee string) (bool, error) {
	if err := s.ensureWeek(ctx, weekKey); err != nil {
		return false, err
	}

	s.mu.Lock()
	grid := s.grids[weekKey]
	grid.DeleteShift(location, day, employee)
	frozen := grid.Clone()
	s.mu.Unlock()

	return s.persist(ctx, weekKey, frozen), nil
}

// SetPublicHoliday implements roster.Store.
func (s *rosterStoreImpl) SetPublicHoliday(ctx context.Context, dayLabel string, holiday bool) {
	s.mu.Lock()
	if holiday {
		s.holidays[dayLabel] = true
	} else {
		delete(s.holidays, dayLabel)
	}
	snapshot := s.copyHolidaysLocked()
	s.mu.Unlock()

	if err := s.cache.Put(s.holidaysKey(), snapshot); err != nil {
		s.logger.Error("cache mirror failed", "key", s.holidaysKey(), "error", err)
	}
	s.broadcaster.Notify(roster.Change{
		Kind:       roster.ChangeRosterUpdated,
		LocationID: s.locationID,
	})
}

// PublicHolidays implements roster.Store.
func (s *rosterStoreImpl) PublicHolidays() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyHolidaysLocked()
}

// Snapshot implements roster.Store. Grids are deep-copied so the caller can
// encode them while requests keep mutating the session state.
func (s *rosterStoreImpl) Snapshot() map[string]roster.WeekGrid {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]roster.WeekGrid, len(s.grids))
	for k, v := range s.grids {
		out[k] = v.Clone()
	}
	return out
}

// OnChange implements roster.Store.
func (s *rosterStoreImpl) OnChange(fn roster.Listener) func() {
	return s.broadcaster.Subscribe(fn)
}

// handleNotification translates a LISTEN/NOTIFY payload from another session
// into the same broadcast path local writes use, dropping any stale
// in-memory copy of the affected week.
func (s *rosterStoreImpl) handleNotification(channel, payload string) {
	var event struct {
		LocationID string   `json:"location_id"`
		WeekKey    string   `json:"week_key"`
		Employees  []string `json:"employees"`
	}
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		s.logger.Warn("unparseable change notification", "channel", channel, "error", err)
		return
	}

	switch channel {
	case ChannelRosterChanges:
		s.mu.Lock()
		delete(s.grids, event.WeekKey)
		s.mu.Unlock()
		s.broadcaster.Notify(roster.Change{
			Kind:       roster.ChangeRosterUpdated,
			LocationID: event.LocationID,
			WeekKey:    event.WeekKey,
		})
	case ChannelEmployeeChanges:
		s.broadcaster.Notify(roster.Change{
			Kind:       roster.ChangeEmployeesUpdated,
			LocationID: event.LocationID,
			Employees:  event.Employees,
		})
	default:
		s.logger.Warn("notification on unknown channel", "channel", channel)
	}
}

func (s *rosterStoreImpl) weekCacheKey(weekKey string) string {
	return s.locationID + "-" + weekKey
}

func (s *rosterStoreImpl) holidaysKey() string {
	return s.locationID + "-holidays"
}

func (s *rosterStoreImpl) copyHolidaysLocked() map[string]bool {
	out := make(map[string]bool, len(s.holidays))
	for k, v := range s.holidays {
		out[k] = v
	}
	return out
}
