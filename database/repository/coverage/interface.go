package coverageRepo

import (
	"context"

	"mountify/models"
)

// CoverageRepository answers ZIP service-area lookups.
type CoverageRepository interface {
	WorkersForZip(ctx context.Context, zip string) ([]string, error)
	GetZipInfo(ctx context.Context, zip string) (*models.ZipInfo, error)
	AddWorkerZips(workerID string, zips []string) error
	RemoveWorkerZips(workerID string) error
	Ping(ctx context.Context) error
}
