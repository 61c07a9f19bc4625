package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rocklog/internal/geomech"
)

// WriteCSV serializes the derived samples to w, one row per sample, in
// the canonical column order.
func WriteCSV(w io.Writer, samples []geomech.DerivedSample) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(geomech.ColumnNames); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(geomech.ColumnNames))
	for i, sample := range samples {
		for j, v := range sample.Columns() {
			row[j] = formatValue(v)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

// ExportCSV writes the derived samples to a CSV file, creating parent
// directories as needed. A UTF-8 BOM is prefixed so Excel opens the
// file correctly.
func ExportCSV(path string, samples []geomech.DerivedSample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	return WriteCSV(file, samples)
}
