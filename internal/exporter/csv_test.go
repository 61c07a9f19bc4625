package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocklog/internal/geomech"
)

func sampleSequence(t *testing.T) []geomech.DerivedSample {
	t.Helper()
	return geomech.Derive([]geomech.PreparedSample{
		{Depth: 0, Density: 2500, Vp: 3000, Vs: 1500},
		{Depth: 10, Density: 2600, Vp: 3200, Vs: 1600},
	})
}

func TestWriteCSVCanonicalHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSequence(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, geomech.ColumnNames, records[0])
	assert.Equal(t, "2500", records[1][1])
	assert.Equal(t, "22500000000", records[1][12], "p_modulus keeps full precision")
}

func TestWriteCSVRendersSentinelAsEmptyCell(t *testing.T) {
	// vp == vs forces Poisson, Young's and brittleness sentinels.
	derived := geomech.Derive([]geomech.PreparedSample{
		{Depth: 0, Density: 2500, Vp: 2000, Vs: 2000},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, derived))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	byName := make(map[string]string, len(records[0]))
	for i, name := range records[0] {
		byName[name] = records[1][i]
	}
	assert.Empty(t, byName["poisson_ratio"])
	assert.Empty(t, byName["youngs_modulus"])
	assert.Empty(t, byName["impedance_gradient"])
	assert.NotEmpty(t, byName["shear_modulus"])
}

func TestExportCSVWritesBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "well.csv")
	require.NoError(t, ExportCSV(path, sampleSequence(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	assert.True(t, strings.Contains(string(data), "vertical_stress"))
}
