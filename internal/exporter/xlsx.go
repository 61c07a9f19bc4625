package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rocklog/internal/geomech"
)

// sheetName is the single sheet derived workbooks carry.
const sheetName = "Derived"

// WriteXLSX serializes the derived samples to w as a workbook with one
// sheet. Undefined values leave their cell empty.
func WriteXLSX(w io.Writer, samples []geomech.DerivedSample) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(geomech.ColumnNames))
	for i, name := range geomech.ColumnNames {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, sample := range samples {
		row := make([]any, len(geomech.ColumnNames))
		for j, v := range sample.Columns() {
			if geomech.IsDefined(v) {
				row[j] = v
			} else {
				row[j] = nil
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportXLSX writes the derived samples to an XLSX file, creating
// parent directories as needed.
func ExportXLSX(path string, samples []geomech.DerivedSample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create XLSX file: %w", err)
	}
	defer file.Close()
	return WriteXLSX(file, samples)
}
