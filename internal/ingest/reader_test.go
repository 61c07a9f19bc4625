package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecodeCSV(t *testing.T) {
	input := "Depth (m),Density g/cc,Vp_Km/s,Vs_Km/s\n" +
		"0,2.50,3.0,1.5\n" +
		"10,2.60,3.2,1.6\n"

	table, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Depth (m)", "Density g/cc", "Vp_Km/s", "Vs_Km/s"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2.50", table.Rows[0]["Density g/cc"])
	assert.Equal(t, "10", table.Rows[1]["Depth (m)"])
}

func TestDecodeCSVStripsBOM(t *testing.T) {
	input := "\uFEFFDepth,Density,Vp,Vs\n100,2500,3000,1500\n"

	table, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Depth", table.Headers[0])
	assert.Equal(t, "100", table.Rows[0]["Depth"])
}

func TestDecodeCSVSkipsEmptyRows(t *testing.T) {
	input := "Depth,Density,Vp,Vs\n0,2500,3000,1500\n,,,\n10,2600,3200,1600\n"

	table, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestDecodeCSVRaggedRows(t *testing.T) {
	input := "Depth,Density,Vp,Vs\n0,2500\n10,2600,3200,1600\n"

	table, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	_, hasVp := table.Rows[0]["Vp"]
	assert.False(t, hasVp, "short rows only carry the cells they have")
	assert.Equal(t, "3200", table.Rows[1]["Vp"])
}

func TestDecodeCSVEmptyFile(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Depth", "Density", "Vp", "Vs"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{0, 2500, 3000, 1500}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{10, 2600, 3200, 1600}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := DecodeXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Depth", "Density", "Vp", "Vs"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2500", table.Rows[0]["Density"])
}

func TestDecodeXLSXSkipsPreamble(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	// Title rows above the header are common in exported logs.
	require.NoError(t, f.SetCellValue(sheet, "A1", "Well A-12 sonic survey"))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Depth", "Density", "Vp", "Vs"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{0, 2500, 3000, 1500}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := DecodeXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Depth", table.Headers[0])
	assert.Len(t, table.Rows, 1)
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	_, err := Decode(strings.NewReader("x"), "log.txt")
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.xlsx", "~$a.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.xlsx"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.csv"), files[1])
}
