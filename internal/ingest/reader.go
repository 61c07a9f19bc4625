// Package ingest decodes CSV and XLSX well-log files into the generic
// row form the pipeline consumes. Decoding is tolerant: it finds a
// plausible header row and hands everything after it to the validator,
// which owns the decision of what is usable.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"rocklog/internal/geomech"
)

// Table is a decoded input file: the header labels in file order plus
// one RawRow per record. Rows only carry cells that exist in the file;
// absent cells are simply missing keys.
type Table struct {
	Headers []string
	Rows    []geomech.RawRow
}

// DecodeError marks input bytes that could not be decoded into a
// table. It distinguishes a bad upload from a pipeline failure.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode dispatches on the file extension of name and decodes r.
// Supported extensions are .csv, .xlsx and .xls.
func Decode(r io.Reader, name string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return DecodeCSV(r)
	case ".xlsx", ".xls":
		return DecodeXLSX(r)
	default:
		return nil, &DecodeError{Err: fmt.Errorf("unsupported file type: %s", filepath.Ext(name))}
	}
}

// DecodeFile opens and decodes a well-log file from disk.
func DecodeFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return Decode(f, path)
}

// DecodeCSV decodes a CSV stream. The first record is the header row; a
// UTF-8 BOM on the first cell is stripped. Records with a different
// cell count than the header are kept, aligned by position.
func DecodeCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("read CSV records: %w", err)}
	}
	if len(records) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty CSV file")}
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	return buildTable(headers, records[1:]), nil
}

// DecodeXLSX decodes the first sheet of a workbook that contains a
// plausible header row. Sheets are scanned in workbook order, the same
// way analysts see them.
func DecodeXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		headerIdx := findHeaderRow(rows)
		if headerIdx < 0 {
			continue
		}
		return buildTable(rows[headerIdx], rows[headerIdx+1:]), nil
	}

	return nil, &DecodeError{Err: fmt.Errorf("no sheet with a usable header row")}
}

// findHeaderRow returns the index of the first row that looks like a
// header: at least two non-empty cells. Returns -1 if none exists.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		filled := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
		if filled >= 2 {
			return i
		}
	}
	return -1
}

func buildTable(headers []string, records [][]string) *Table {
	table := &Table{Headers: headers}
	for _, record := range records {
		row := make(geomech.RawRow, len(headers))
		empty := true
		for j, header := range headers {
			if j >= len(record) {
				break
			}
			if strings.TrimSpace(record[j]) != "" {
				empty = false
			}
			row[header] = record[j]
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
