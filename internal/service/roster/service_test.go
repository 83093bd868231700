package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRosterRepo is an in-memory roster.Repository whose remote can be
// switched off to exercise the fallback path.
type fakeRosterRepo struct {
	mu       sync.Mutex
	weeks    map[string]roster.WeekGrid
	probeErr error
	failing  bool
	upserts  int
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{weeks: make(map[string]roster.WeekGrid)}
}

func (f *fakeRosterRepo) Probe(ctx context.Context) error {
	return f.probeErr
}

func (f *fakeRosterRepo) UpsertWeek(ctx context.Context, locationID, weekKey string, grid roster.WeekGrid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("connection refused")
	}
	f.upserts++
	f.weeks[locationID+"/"+weekKey] = grid
	return nil
}

func (f *fakeRosterRepo) GetWeek(ctx context.Context, locationID, weekKey string) (roster.WeekGrid, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, false, errors.New("connection refused")
	}
	grid, ok := f.weeks[locationID+"/"+weekKey]
	return grid, ok, nil
}

func (f *fakeRosterRepo) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

// fakeDirectory serves a fixed location set.
type fakeDirectory struct {
	locations []string
}

func (f *fakeDirectory) LoadSets(ctx context.Context)   {}
func (f *fakeDirectory) Employees() []string            { return []string{"Bhanush", "Girish"} }
func (f *fakeDirectory) Locations() []string            { return f.locations }
func (f *fakeDirectory) SaveEmployees(ctx context.Context, names []string) (bool, error) {
	return true, nil
}
func (f *fakeDirectory) SaveLocations(ctx context.Context, names []string) (bool, error) {
	return true, nil
}

const testWeekKey = "Aug-4-2025"

func newTestStore(t *testing.T, repo *fakeRosterRepo) roster.Store {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	fileCache, err := cache.NewFileCache(filepath.Join(t.TempDir(), "roster-cache.json"), logger)
	require.NoError(t, err)

	dir := &fakeDirectory{locations: []string{"Caroline Springs", "Werribee Plaza"}}
	return NewRosterStore(repo, dir, fileCache, nil, NewBroadcaster(), "main", logger)
}

func TestInitializeConnects(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)

	require.NoError(t, store.Initialize(context.Background()))
	assert.True(t, store.Connected())
}

func TestInitializeMissingRelationIsNonFatal(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.probeErr = &pgconn.PgError{Code: "42P01", Message: `relation "rosters" does not exist`}
	store := newTestStore(t, repo)

	require.NoError(t, store.Initialize(context.Background()))
	assert.True(t, store.Connected())
}

func TestInitializeOtherProbeErrorIsFatal(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.probeErr = &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	store := newTestStore(t, repo)

	assert.Error(t, store.Initialize(context.Background()))
	assert.False(t, store.Connected())
}

func TestSaveMirrorsAndBroadcasts(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	var changes []roster.Change
	store.OnChange(func(c roster.Change) { changes = append(changes, c) })

	grid := roster.NewWeekGrid([]string{"Caroline Springs"}, []string{"Mon 4-Aug"})
	grid.UpsertShift("Caroline Springs", "Mon 4-Aug", roster.DefaultShift("Bhanush"))

	assert.True(t, store.Save(context.Background(), testWeekKey, grid))
	require.Len(t, changes, 1)
	assert.Equal(t, roster.ChangeRosterUpdated, changes[0].Kind)
	assert.Equal(t, testWeekKey, changes[0].WeekKey)
	assert.Equal(t, "main", changes[0].LocationID)
}

func TestSaveRemoteFailureStillCachesAndBroadcasts(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))
	repo.setFailing(true)

	broadcasts := 0
	store.OnChange(func(roster.Change) { broadcasts++ })

	grid := roster.NewWeekGrid([]string{"Caroline Springs"}, []string{"Mon 4-Aug"})
	grid.UpsertShift("Caroline Springs", "Mon 4-Aug", roster.DefaultShift("Girish"))

	// success=false means "saved locally only", never a lost write.
	assert.False(t, store.Save(context.Background(), testWeekKey, grid))
	assert.Equal(t, 1, broadcasts)

	// With the remote still down, Load serves the cached mirror.
	loaded, found := store.Load(context.Background(), testWeekKey)
	require.True(t, found)
	assert.Equal(t, "Girish", loaded["Caroline Springs"]["Mon 4-Aug"][0].Employee)
}

func TestLoadPrefersRemote(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	remote := roster.NewWeekGrid([]string{"Caroline Springs"}, []string{"Mon 4-Aug"})
	remote.UpsertShift("Caroline Springs", "Mon 4-Aug", roster.DefaultShift("Aravind"))
	repo.weeks["main/"+testWeekKey] = remote

	loaded, found := store.Load(context.Background(), testWeekKey)
	require.True(t, found)
	assert.Equal(t, "Aravind", loaded["Caroline Springs"]["Mon 4-Aug"][0].Employee)
}

func TestLoadAbsentEverywhere(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	_, found := store.Load(context.Background(), "Jan-5-2026")
	assert.False(t, found, "absence is not an error in either layer")
}

func TestWeekMaterializesEmptyGrid(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	grid, err := store.Week(context.Background(), testWeekKey)
	require.NoError(t, err)
	require.Contains(t, grid, "Caroline Springs")
	require.Contains(t, grid, "Werribee Plaza")
	for _, cells := range grid {
		assert.Len(t, cells, 7)
		for _, shifts := range cells {
			assert.Empty(t, shifts)
		}
	}
}

func TestWeekRejectsInvalidKey(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)

	_, err := store.Week(context.Background(), "not-a-week")
	assert.ErrorIs(t, err, roster.ErrInvalidWeekKey)
}

func TestUpsertShiftRoundTripIsIdempotent(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	shift := roster.DefaultShift("Bhanush")
	for i := 0; i < 3; i++ {
		ok, err := store.UpsertShift(context.Background(), testWeekKey, "Caroline Springs", "Mon 4-Aug", shift)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	loaded, found := store.Load(context.Background(), testWeekKey)
	require.True(t, found)
	require.Len(t, loaded["Caroline Springs"]["Mon 4-Aug"], 1, "idempotent replace, never duplicate")
}

func TestDeleteShift(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	_, err := store.UpsertShift(context.Background(), testWeekKey, "Caroline Springs", "Mon 4-Aug", roster.DefaultShift("Bhanush"))
	require.NoError(t, err)

	ok, err := store.DeleteShift(context.Background(), testWeekKey, "Caroline Springs", "Mon 4-Aug", "Bhanush")
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, _ := store.Load(context.Background(), testWeekKey)
	assert.Empty(t, loaded["Caroline Springs"]["Mon 4-Aug"])
}

func TestDisconnectedStoreSavesLocallyOnly(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	// Initialize never called: local-only mode.

	grid := roster.NewWeekGrid([]string{"Caroline Springs"}, []string{"Mon 4-Aug"})
	assert.False(t, store.Save(context.Background(), testWeekKey, grid))
	assert.Equal(t, 0, repo.upserts, "disconnected store must not reach the remote")

	_, found := store.Load(context.Background(), testWeekKey)
	assert.True(t, found)
}

func TestConcurrentShiftWritesSameWeek(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	const writers = 8
	const writesPerWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			employee := fmt.Sprintf("Employee-%d", worker)
			for j := 0; j < writesPerWorker; j++ {
				_, err := store.UpsertShift(context.Background(), testWeekKey, "Caroline Springs", "Mon 4-Aug", roster.DefaultShift(employee))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	grid, err := store.Week(context.Background(), testWeekKey)
	require.NoError(t, err)
	assert.Len(t, grid["Caroline Springs"]["Mon 4-Aug"], writers, "one shift per employee survives")
}

func TestWeekReturnsIndependentCopy(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	grid, err := store.Week(context.Background(), testWeekKey)
	require.NoError(t, err)
	grid.UpsertShift("Caroline Springs", "Mon 4-Aug", roster.DefaultShift("Bhanush"))

	fresh, err := store.Week(context.Background(), testWeekKey)
	require.NoError(t, err)
	assert.Empty(t, fresh["Caroline Springs"]["Mon 4-Aug"], "callers mutate a copy, never session state")
}

func TestPublicHolidays(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	store.SetPublicHoliday(context.Background(), "Mon 4-Aug", true)
	assert.True(t, store.PublicHolidays()["Mon 4-Aug"])

	store.SetPublicHoliday(context.Background(), "Mon 4-Aug", false)
	assert.False(t, store.PublicHolidays()["Mon 4-Aug"])
}

func TestHolidaysSurviveOfflineRestart(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	cachePath := filepath.Join(t.TempDir(), "roster-cache.json")
	fileCache, err := cache.NewFileCache(cachePath, logger)
	require.NoError(t, err)

	dir := &fakeDirectory{locations: []string{"Caroline Springs"}}
	store := NewRosterStore(newFakeRosterRepo(), dir, fileCache, nil, NewBroadcaster(), "main", logger)
	require.NoError(t, store.Initialize(context.Background()))
	store.SetPublicHoliday(context.Background(), "Mon 4-Aug", true)

	// A restart with the database down never calls Initialize; cached
	// holiday flags must come back regardless.
	fileCache2, err := cache.NewFileCache(cachePath, logger)
	require.NoError(t, err)
	restarted := NewRosterStore(newFakeRosterRepo(), dir, fileCache2, nil, NewBroadcaster(), "main", logger)

	assert.True(t, restarted.PublicHolidays()["Mon 4-Aug"])
	assert.False(t, restarted.Connected())
}

func TestSnapshotCopiesSessionGrids(t *testing.T) {
	repo := newFakeRosterRepo()
	store := newTestStore(t, repo)
	require.NoError(t, store.Initialize(context.Background()))

	_, err := store.UpsertShift(context.Background(), testWeekKey, "Caroline Springs", "Mon 4-Aug", roster.DefaultShift("Bhanush"))
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Contains(t, snap, testWeekKey)

	delete(snap, testWeekKey)
	assert.Contains(t, store.Snapshot(), testWeekKey, "snapshot must be a copy")
}
