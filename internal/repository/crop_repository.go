package repository

import (
	"context"
	"fmt"
	"time"

	"cropyield-platform/internal/models"
	"cropyield-platform/pkg/database"
	"cropyield-platform/pkg/logging"
	"cropyield-platform/pkg/metrics"
)

// CropRepository provides data access for the crop record archive
type CropRepository interface {
	// Record operations
	UpsertRecordsBatch(ctx context.Context, records []models.CropRecord) error
	CountRecords(ctx context.Context) (int, error)

	// Summary operations
	StateYearlySummary(ctx context.Context, state string) ([]*StateYearSummary, error)

	// Utility operations
	HealthCheck(ctx context.Context) error
}

// StateYearSummary is a per-state, per-year rollup computed by the archive.
type StateYearSummary struct {
	State           string   `json:"state" db:"state"`
	Year            int      `json:"year" db:"year"`
	RecordCount     int      `json:"record_count" db:"record_count"`
	AvgYield        *float64 `json:"avg_yield,omitempty" db:"avg_yield"`
	TotalProduction *float64 `json:"total_production,omitempty" db:"total_production"`
	TotalArea       *float64 `json:"total_area,omitempty" db:"total_area"`
}

// cropRepository implements CropRepository
type cropRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewCropRepository creates a new crop repository
func NewCropRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) CropRepository {
	return &cropRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// UpsertRecordsBatch inserts or updates a batch of cleaned crop records in a
// single transaction.
func (r *cropRepository) UpsertRecordsBatch(ctx context.Context, records []models.CropRecord) error {
	if len(records) == 0 {
		return nil
	}

	timer := time.Now()
	defer func() {
		duration := time.Since(timer)
		r.metrics.ArchiveBatchSize.Observe(float64(len(records)))
		r.logger.Debug(ctx, "[REPO_BATCH_UPSERT] Batch upsert completed", logging.Fields{
			"count":       len(records),
			"duration_ms": duration.Milliseconds(),
		})
	}()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO crop_records (
			state, crop, season, year,
			area, production, yield, annual_rainfall
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (state, crop, season, year) DO UPDATE SET
			area = EXCLUDED.area,
			production = EXCLUDED.production,
			yield = EXCLUDED.yield,
			annual_rainfall = EXCLUDED.annual_rainfall
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		_, err := stmt.ExecContext(ctx,
			rec.State,
			rec.Crop,
			rec.Season,
			rec.Year,
			rec.Area,
			rec.Production,
			rec.Yield,
			rec.AnnualRainfall,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.ArchiveRecordsTotal.Add(float64(len(records)))

	return nil
}

// CountRecords returns the number of archived crop records
func (r *cropRepository) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, "count_records", &count, "SELECT COUNT(*) FROM crop_records")
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// StateYearlySummary computes a per-year rollup for one state from the
// archive. AVG and SUM ignore NULL measures, matching the in-memory
// aggregator's missing-value treatment.
func (r *cropRepository) StateYearlySummary(ctx context.Context, state string) ([]*StateYearSummary, error) {
	query := `
		SELECT state, year,
		       COUNT(*) AS record_count,
		       AVG(yield) AS avg_yield,
		       SUM(production) AS total_production,
		       SUM(area) AS total_area
		FROM crop_records
		WHERE state = $1
		GROUP BY state, year
		ORDER BY year
	`

	var summaries []*StateYearSummary
	err := r.db.SelectContext(ctx, "state_yearly_summary", &summaries, query, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get state yearly summary: %w", err)
	}

	return summaries, nil
}

// HealthCheck performs a repository health check
func (r *cropRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
