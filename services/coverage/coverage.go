package coverage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	coverageRepo "mountify/database/repository/coverage"
	"mountify/events"
	"mountify/metrics"
	"mountify/models"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// CoverageService answers whether a ZIP code is inside the service area.
type CoverageService interface {
	Check(ctx context.Context, zip string) (*models.ZipCoverage, error)
	RegisterWorker(ctx context.Context, workerID string, zips []string) error
	HealthCheck(ctx context.Context) map[string]interface{}
}

// DefaultCoverageService implements CoverageService with a TTL cache in
// front of the coverage store. The cache is constructed once at startup and
// passed by reference; there is no shared module-level state.
type DefaultCoverageService struct {
	Repo   coverageRepo.CoverageRepository
	Hub    *events.Hub
	Logger *zap.Logger
	cache  *coverageCache
}

// NewDefaultCoverageService builds the service. The now func may be nil,
// in which case the wall clock is used.
func NewDefaultCoverageService(repo coverageRepo.CoverageRepository, hub *events.Hub, logger *zap.Logger, ttl time.Duration, now func() time.Time) *DefaultCoverageService {
	svc := &DefaultCoverageService{
		Repo:   repo,
		Hub:    hub,
		Logger: logger,
		cache:  newCoverageCache(ttl, now),
	}
	if hub != nil {
		// Coverage edits elsewhere invalidate the cached entry; the next
		// lookup refetches from the store.
		hub.Subscribe(events.TopicCoverage, func(e events.Event) {
			svc.cache.invalidate(e.RecordID)
		})
	}
	return svc
}

// Check validates the ZIP format and returns the coverage answer, serving
// repeated lookups from the cache until the TTL lapses.
func (svc *DefaultCoverageService) Check(ctx context.Context, zip string) (*models.ZipCoverage, error) {
	if !zipPattern.MatchString(zip) {
		return nil, fmt.Errorf("invalid zip code %q: must be 5 digits", zip)
	}

	if cov, ok := svc.cache.get(zip); ok {
		metrics.IncCoverageLookup("hit")
		return &cov, nil
	}
	metrics.IncCoverageLookup("miss")

	workerIDs, err := svc.Repo.WorkersForZip(ctx, zip)
	if err != nil {
		return nil, fmt.Errorf("coverage lookup failed for %s: %w", zip, err)
	}

	cov := models.ZipCoverage{
		Zip:         zip,
		Covered:     len(workerIDs) > 0,
		WorkerCount: len(workerIDs),
		WorkerIDs:   workerIDs,
	}
	if info, err := svc.Repo.GetZipInfo(ctx, zip); err == nil {
		cov.City = info.City
		cov.State = info.State
	} else {
		svc.Logger.Debug("zip info unavailable", zap.String("zip", zip), zap.Error(err))
	}

	svc.cache.set(zip, cov)
	return &cov, nil
}

// RegisterWorker records the ZIP codes a worker serves and invalidates
// affected cache entries.
func (svc *DefaultCoverageService) RegisterWorker(ctx context.Context, workerID string, zips []string) error {
	for _, z := range zips {
		if !zipPattern.MatchString(z) {
			return fmt.Errorf("invalid zip code %q: must be 5 digits", z)
		}
	}
	if err := svc.Repo.AddWorkerZips(workerID, zips); err != nil {
		return err
	}
	for _, z := range zips {
		svc.cache.invalidate(z)
		if svc.Hub != nil {
			svc.Hub.Publish(events.Event{Topic: events.TopicCoverage, Action: "updated", RecordID: z})
		}
	}
	return nil
}

// HealthCheck reports reachability of the coverage store and cache size.
func (svc *DefaultCoverageService) HealthCheck(ctx context.Context) map[string]interface{} {
	storeOK := svc.Repo.Ping(ctx) == nil
	return map[string]interface{}{
		"store":         storeOK,
		"cached_zips":   svc.cache.len(),
		"cache_ttl_sec": int(svc.cache.ttl / time.Second),
	}
}
