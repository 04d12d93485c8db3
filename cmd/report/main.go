package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cropyield-platform/internal/config"
	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/report"
	"cropyield-platform/pkg/logging"
)

func main() {
	// Parse command-line flags
	dataPath := flag.String("data", "", "Path to the crop yield CSV file (defaults to DATASET_PATH)")
	topStates := flag.Int("top", 10, "Number of states in the ranking view")
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
	logger := logging.NewStructuredLogger("cropyield-report", "1.0.0", logging.ParseLevel(cfg.Logging.Level))
	logger.SetOutput(os.Stderr)

	ctx := context.Background()
	logger.Info(ctx, "[REPORT_START] Starting batch report", logging.Fields{
		"path":       path,
		"top_states": *topStates,
	})

	// Load and clean. Any failure is terminal for the batch report.
	raw, err := dataset.Load(path)
	if err != nil {
		logger.Error(ctx, "[REPORT_LOAD_ERROR] Failed to load dataset", logging.Fields{
			"path": path,
		}, err)
		fmt.Fprintf(os.Stderr, "Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	cleaned, err := dataset.Clean(raw)
	if err != nil {
		logger.Error(ctx, "[REPORT_CLEAN_ERROR] Failed to clean dataset", logging.Fields{
			"path": path,
		}, err)
		fmt.Fprintf(os.Stderr, "Failed to clean dataset: %v\n", err)
		os.Exit(1)
	}

	rep, err := report.Build(cleaned.Dataset, cleaned.RemovedOutliers, *topStates)
	if err != nil {
		logger.Error(ctx, "[REPORT_BUILD_ERROR] Failed to build report", logging.Fields{
			"path": path,
		}, err)
		fmt.Fprintf(os.Stderr, "Failed to build report: %v\n", err)
		os.Exit(1)
	}

	rep.Render(os.Stdout)

	logger.Info(ctx, "[REPORT_COMPLETE] Batch report completed", logging.Fields{
		"rows_clean":       cleaned.Dataset.Len(),
		"removed_outliers": cleaned.RemovedOutliers,
	})
}
