package services

import (
	"context"
	"fmt"
	"time"

	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/repository"
	"cropyield-platform/pkg/logging"
	"cropyield-platform/pkg/metrics"
)

// ArchiveService persists cleaned crop records to the Postgres archive.
type ArchiveService struct {
	repo    repository.CropRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// ArchiveResult contains archive run statistics
type ArchiveResult struct {
	TotalRecords    int
	ArchivedRecords int
	Batches         int
	Duration        time.Duration
}

// NewArchiveService creates a new archive service
func NewArchiveService(repo repository.CropRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ArchiveService {
	return &ArchiveService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// ArchiveDataset writes every record of a cleaned dataset to the archive in
// batches.
func (s *ArchiveService) ArchiveDataset(ctx context.Context, ds *dataset.Dataset, batchSize int) (*ArchiveResult, error) {
	if batchSize <= 0 {
		batchSize = 1000
	}

	startTime := time.Now()

	s.logger.Info(ctx, "[ARCHIVE_START] Starting dataset archive", logging.Fields{
		"records":    ds.Len(),
		"batch_size": batchSize,
	})

	result := &ArchiveResult{TotalRecords: ds.Len()}

	for start := 0; start < len(ds.Records); start += batchSize {
		end := start + batchSize
		if end > len(ds.Records) {
			end = len(ds.Records)
		}

		batch := ds.Records[start:end]
		if err := s.repo.UpsertRecordsBatch(ctx, batch); err != nil {
			s.metrics.RecordArchiveError("batch_error")
			return nil, fmt.Errorf("failed to archive batch starting at %d: %w", start, err)
		}

		result.ArchivedRecords += len(batch)
		result.Batches++
	}

	result.Duration = time.Since(startTime)
	s.metrics.ArchiveDuration.Observe(result.Duration.Seconds())

	s.logger.Info(ctx, "[ARCHIVE_COMPLETE] Dataset archive completed", logging.Fields{
		"total_records":    result.TotalRecords,
		"archived_records": result.ArchivedRecords,
		"batches":          result.Batches,
		"duration_seconds": result.Duration.Seconds(),
	})

	return result, nil
}
