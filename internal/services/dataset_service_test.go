package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cropyield-platform/internal/models"
)

func TestDatasetService_Load(t *testing.T) {
	csv := `State,Crop,Season,Crop_Year,Area,Production,Yield,Annual_Rainfall
Assam,Rice,Kharif,1997,1000,2500,2.5,2051.4
Bihar,Maize,Kharif,1997,800,0,0,1100.0
`
	path := filepath.Join(t.TempDir(), "crops.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewDatasetService(path, testLogger(), svcCollector())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if svc.Dataset().Len() != 1 {
		t.Errorf("Len() = %d, want 1 after outlier removal", svc.Dataset().Len())
	}
	if svc.RemovedOutliers() != 1 {
		t.Errorf("RemovedOutliers() = %d, want 1", svc.RemovedOutliers())
	}
}

func TestDatasetService_Load_MissingFile(t *testing.T) {
	svc := NewDatasetService(filepath.Join(t.TempDir(), "missing.csv"), testLogger(), svcCollector())

	err := svc.Load(context.Background())
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}

	var loadErr *models.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %T, want *models.LoadError", err)
	}
}
