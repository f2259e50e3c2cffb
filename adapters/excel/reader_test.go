package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"inferkit/domain/core"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestDataReader_CSV(t *testing.T) {
	path := writeTempCSV(t, "wait_minutes,label,defect_rate\n48,a,1.1\n52,b,1.9\n,c,\n45,d,not-a-number\n")
	reader := NewDataReader(path)
	ctx := context.Background()

	columns, err := reader.Columns(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d: %v", len(columns), columns)
	}

	wait, err := reader.ReadColumn(ctx, "wait_minutes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Blank cell skipped.
	if len(wait) != 3 {
		t.Errorf("expected 3 values, got %v", wait)
	}

	defects, err := reader.ReadColumn(ctx, "defect_rate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Blank and non-numeric cells skipped.
	if len(defects) != 2 {
		t.Errorf("expected 2 values, got %v", defects)
	}
}

func TestDataReader_MissingColumn(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n")
	reader := NewDataReader(path)

	if _, err := reader.ReadColumn(context.Background(), "c"); !errors.Is(err, core.ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestDataReader_MissingFile(t *testing.T) {
	reader := NewDataReader(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := reader.Columns(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}
