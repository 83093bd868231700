package directory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shriajj/roster-backend-go/internal/domain/directory"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/pkg/cache"
	rosterservice "github.com/shriajj/roster-backend-go/internal/service/roster"
)

const remoteTimeout = 5 * time.Second

// DefaultEmployees seeds a brand-new deployment so the roster grid is usable
// before anyone edits the directory.
var DefaultEmployees = []string{
	"Bhanush", "Girish", "Aravind", "Vansh", "Kashish",
	"Sonam", "Tejal", "Anshul", "Matt", "Aswin",
}

// DefaultLocations seeds a brand-new deployment.
var DefaultLocations = []string{
	"Caroline Springs", "Werribee Plaza", "Point Cook", "Geelong", "Woodgrove",
}

type directoryServiceImpl struct {
	repo        directory.Repository
	cache       *cache.FileCache
	broadcaster *rosterservice.Broadcaster
	locationID  string
	logger      *slog.Logger

	mu        sync.Mutex
	employees *directory.NameSet
	locations *directory.NameSet
}

// NewDirectoryService builds the session directory. The sets start from the
// package defaults until LoadSets replaces them.
func NewDirectoryService(
	repo directory.Repository,
	fileCache *cache.FileCache,
	broadcaster *rosterservice.Broadcaster,
	locationID string,
	logger *slog.Logger,
) directory.Service {
	return &directoryServiceImpl{
		repo:        repo,
		cache:       fileCache,
		broadcaster: broadcaster,
		locationID:  locationID,
		logger:      logger,
		employees:   directory.NewNameSet(DefaultEmployees),
		locations:   directory.NewNameSet(DefaultLocations),
	}
}

// LoadSets implements directory.Service: remote store first, local cache
// second, configured defaults last. Remote misses are quiet; remote errors
// log and fall through.
func (s *directoryServiceImpl) LoadSets(ctx context.Context) {
	employees := s.loadSet(ctx, s.employeesKey(), s.getRemoteEmployees, DefaultEmployees)
	locations := s.loadSet(ctx, s.locationsKey(), s.getRemoteLocations, DefaultLocations)

	s.mu.Lock()
	s.employees = directory.NewNameSet(employees)
	s.locations = directory.NewNameSet(locations)
	s.mu.Unlock()
}

func (s *directoryServiceImpl) getRemoteEmployees(ctx context.Context) ([]string, bool, error) {
	return s.repo.GetEmployees(ctx, s.locationID)
}

func (s *directoryServiceImpl) getRemoteLocations(ctx context.Context) ([]string, bool, error) {
	return s.repo.GetLocations(ctx, s.locationID)
}

func (s *directoryServiceImpl) loadSet(
	ctx context.Context,
	cacheKey string,
	remote func(context.Context) ([]string, bool, error),
	defaults []string,
) []string {
	if s.repo != nil {
		rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
		names, found, err := remote(rctx)
		cancel()
		if err != nil {
			s.logger.Warn("remote directory read failed, falling back to cache", "key", cacheKey, "error", err)
		} else if found {
			return names
		}
	}

	var cached []string
	if s.cache.Get(cacheKey, &cached) && len(cached) > 0 {
		return cached
	}
	return defaults
}

// Employees implements directory.Service.
func (s *directoryServiceImpl) Employees() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees.Names()
}

// Locations implements directory.Service.
func (s *directoryServiceImpl) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locations.Names()
}

// SaveEmployees implements directory.Service. The cache mirror and the
// change broadcast run regardless of the remote outcome.
func (s *directoryServiceImpl) SaveEmployees(ctx context.Context, names []string) (bool, error) {
	set := directory.NewNameSet(names)

	success := s.saveRemote(ctx, set.Names(), s.repoUpsertEmployees)
	if err := s.cache.Put(s.employeesKey(), set.Names()); err != nil {
		s.logger.Error("cache mirror failed", "key", s.employeesKey(), "error", err)
	}

	s.mu.Lock()
	s.employees = set
	s.mu.Unlock()

	s.broadcaster.Notify(roster.Change{
		Kind:       roster.ChangeEmployeesUpdated,
		LocationID: s.locationID,
		Employees:  set.Names(),
	})
	return success, nil
}

// SaveLocations implements directory.Service. Location changes reshape every
// week grid, so they broadcast as a roster update.
func (s *directoryServiceImpl) SaveLocations(ctx context.Context, names []string) (bool, error) {
	set := directory.NewNameSet(names)

	success := s.saveRemote(ctx, set.Names(), s.repoUpsertLocations)
	if err := s.cache.Put(s.locationsKey(), set.Names()); err != nil {
		s.logger.Error("cache mirror failed", "key", s.locationsKey(), "error", err)
	}

	s.mu.Lock()
	s.locations = set
	s.mu.Unlock()

	s.broadcaster.Notify(roster.Change{
		Kind:       roster.ChangeRosterUpdated,
		LocationID: s.locationID,
	})
	return success, nil
}

func (s *directoryServiceImpl) repoUpsertEmployees(ctx context.Context, names []string) error {
	return s.repo.UpsertEmployees(ctx, s.locationID, names)
}

func (s *directoryServiceImpl) repoUpsertLocations(ctx context.Context, names []string) error {
	return s.repo.UpsertLocations(ctx, s.locationID, names)
}

func (s *directoryServiceImpl) saveRemote(
	ctx context.Context,
	names []string,
	upsert func(context.Context, []string) error,
) bool {
	if s.repo == nil {
		return false
	}
	rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	if err := upsert(rctx, names); err != nil {
		s.logger.Warn("remote directory write failed, saving locally only", "error", err)
		return false
	}
	return true
}

func (s *directoryServiceImpl) employeesKey() string {
	return s.locationID + "-employees"
}

func (s *directoryServiceImpl) locationsKey() string {
	return s.locationID + "-locations"
}
