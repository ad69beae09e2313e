package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := WriteCSV(path, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open written CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV back: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	header := records[0]
	if header[0] != "geo" || header[1] != "kwA" || header[2] != "kwB" {
		t.Errorf("unexpected header: %v", header)
	}
	if records[1][0] != "WW" || records[1][1] != "75.3" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][0] != "US" || records[2][2] != "40" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "summary.csv"), sampleResult())
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
