package services

import (
	"context"
	"time"

	"cropyield-platform/internal/dataset"
	"cropyield-platform/pkg/logging"
	"cropyield-platform/pkg/metrics"
)

// DatasetService owns the loaded-and-cleaned dataset. The dataset is loaded
// once and read-only afterwards, so it is shared across requests without
// synchronization.
type DatasetService struct {
	path    string
	logger  *logging.StructuredLogger
	metrics *metrics.Collector

	ds      *dataset.Dataset
	removed int
}

// NewDatasetService creates a new dataset service
func NewDatasetService(path string, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *DatasetService {
	return &DatasetService{
		path:    path,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Load reads the CSV source, cleans it, and caches the result. Must be
// called once before Dataset.
func (s *DatasetService) Load(ctx context.Context) error {
	startTime := time.Now()

	s.logger.Info(ctx, "[DATASET_LOAD_START] Loading crop yield dataset", logging.Fields{
		"path": s.path,
	})

	raw, err := dataset.Load(s.path)
	if err != nil {
		s.logger.Error(ctx, "[DATASET_LOAD_ERROR] Failed to load dataset", logging.Fields{
			"path": s.path,
		}, err)
		return err
	}

	cleaned, err := dataset.Clean(raw)
	if err != nil {
		s.logger.Error(ctx, "[DATASET_CLEAN_ERROR] Failed to clean dataset", logging.Fields{
			"path": s.path,
		}, err)
		return err
	}

	s.ds = cleaned.Dataset
	s.removed = cleaned.RemovedOutliers

	duration := time.Since(startTime)
	s.metrics.DatasetLoadDuration.Observe(duration.Seconds())
	s.metrics.DatasetRowsLoaded.Set(float64(s.ds.Len()))
	s.metrics.DatasetRowsRemoved.Set(float64(s.removed))

	s.logger.Info(ctx, "[DATASET_LOAD_COMPLETE] Dataset loaded and cleaned", logging.Fields{
		"path":             s.path,
		"rows_raw":         raw.Len(),
		"rows_clean":       s.ds.Len(),
		"removed_outliers": s.removed,
		"year_column":      s.ds.Schema.SourceYearColumn,
		"extra_numeric":    s.ds.Schema.ExtraNumeric,
		"duration_seconds": duration.Seconds(),
	})

	return nil
}

// Dataset returns the cached cleaned dataset.
func (s *DatasetService) Dataset() *dataset.Dataset {
	return s.ds
}

// RemovedOutliers returns how many zero-production rows cleaning removed.
func (s *DatasetService) RemovedOutliers() int {
	return s.removed
}
