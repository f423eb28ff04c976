package cli

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kochwerk/kochwerk/pkg/measure"
)

func measureRows(t *testing.T, maxLevel int) []measure.Summary {
	t.Helper()
	rows, err := measure.Series(maxLevel)
	if err != nil {
		t.Fatalf("Series(%d) error: %v", maxLevel, err)
	}
	return rows
}

func TestWriteMeasureCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")

	if err := writeMeasureCSV(measureRows(t, 2), path); err != nil {
		t.Fatalf("writeMeasureCSV() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("record count = %d, want header + 3 rows", len(records))
	}
	if records[0][0] != "level" || records[0][3] != "perimeter" {
		t.Errorf("header = %v, want level..perimeter columns", records[0])
	}
	if records[3][1] != "49" {
		t.Errorf("level 2 vertices = %s, want 49", records[3][1])
	}
}

func TestWriteMeasureJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")

	if err := writeMeasureJSON(measureRows(t, 1), path); err != nil {
		t.Fatalf("writeMeasureJSON() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}

	var rows []measure.Summary
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	if rows[1].Level != 1 || rows[1].Edges != 12 {
		t.Errorf("row 1 = %+v, want level 1 with 12 edges", rows[1])
	}
}
