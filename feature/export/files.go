package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"arcade-catalog/core/catalog"
	"arcade-catalog/core/model"

	"github.com/goccy/go-json"
)

// ManifestFile is the name of the manifest written next to the flat files.
const ManifestFile = "manifest.json"

// Manifest describes one export.
type Manifest struct {
	RunID     string         `json:"run_id"`
	CreatedAt time.Time      `json:"created_at"`
	Releases  []string       `json:"releases"`
	Skipped   []string       `json:"skipped,omitempty"`
	Totals    catalog.Counts `json:"totals"`
	Rows      map[string]int `json:"rows"`
}

// RowCounts returns the number of rows per table.
func RowCounts(tables *model.Tables) map[string]int {
	counts := make(map[string]int)
	for _, flat := range tables.Flatten() {
		counts[flat.Name] = len(flat.Records)
	}
	return counts
}

// WriteManifest writes m as indented JSON into dir and returns the file path.
func WriteManifest(dir string, m Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// WriteCSV writes one <table>.csv per table into dir and returns the file paths in table order.
func WriteCSV(dir string, tables *model.Tables) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	var paths []string
	for _, flat := range tables.Flatten() {
		path := filepath.Join(dir, flat.Name+".csv")
		if err := writeFlat(path, flat); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFlat(path string, flat model.Flat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(flat.Columns); err != nil {
		return fmt.Errorf("failed to write %s header: %w", flat.Name, err)
	}
	if err := w.WriteAll(flat.Records); err != nil {
		return fmt.Errorf("failed to write %s: %w", flat.Name, err)
	}
	return f.Close()
}
