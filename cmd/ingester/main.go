package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"cropyield-platform/internal/config"
	"cropyield-platform/internal/repository"
	"cropyield-platform/internal/services"
	"cropyield-platform/pkg/database"
	"cropyield-platform/pkg/logging"
	"cropyield-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	dataPath := flag.String("data", "", "Path to the crop yield CSV file (defaults to DATASET_PATH)")
	batchSize := flag.Int("batch-size", 1000, "Number of records to archive in each batch")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	path := cfg.Dataset.Path
	if *dataPath != "" {
		path = *dataPath
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("cropyield-ingester", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[INGESTER_START] Starting crop data archive", logging.Fields{
		"version":    "1.0.0",
		"data_path":  path,
		"batch_size": *batchSize,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("cropyield_ingester")

	// Initialize database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[INGESTER_ERROR] Failed to connect to database", logging.Fields{}, err)
	}
	defer db.Close()

	// Load and clean the dataset
	datasetService := services.NewDatasetService(path, logger, metricsCollector)
	if err := datasetService.Load(ctx); err != nil {
		logger.Fatal(ctx, "[INGESTER_ERROR] Failed to load dataset", logging.Fields{
			"path": path,
		}, err)
	}

	// Archive cleaned records
	cropRepo := repository.NewCropRepository(db, logger, metricsCollector)
	archiveService := services.NewArchiveService(cropRepo, logger, metricsCollector)

	result, err := archiveService.ArchiveDataset(ctx, datasetService.Dataset(), *batchSize)
	if err != nil {
		logger.Fatal(ctx, "[ARCHIVE_ERROR] Archive failed", logging.Fields{
			"error": err.Error(),
		}, err)
	}

	// Print results
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("ARCHIVE COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total Records:      %d\n", result.TotalRecords)
	fmt.Printf("Archived Records:   %d\n", result.ArchivedRecords)
	fmt.Printf("Removed Outliers:   %d\n", datasetService.RemovedOutliers())
	fmt.Printf("Batches:            %d\n", result.Batches)
	fmt.Printf("Duration:           %v\n", result.Duration)
	if result.Duration.Seconds() > 0 {
		fmt.Printf("Records/Second:     %.2f\n", float64(result.ArchivedRecords)/result.Duration.Seconds())
	}

	logger.Info(ctx, "[INGESTER_COMPLETE] Archive completed successfully", logging.Fields{
		"total_records":    result.TotalRecords,
		"archived_records": result.ArchivedRecords,
		"duration_seconds": result.Duration.Seconds(),
	})
}
