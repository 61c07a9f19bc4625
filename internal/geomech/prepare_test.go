package geomech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMapping() ColumnMapping {
	return ColumnMapping{
		FieldDepth:   "Depth",
		FieldDensity: "Density",
		FieldVp:      "Vp",
		FieldVs:      "Vs",
	}
}

func TestPrepareSamplesMissingColumns(t *testing.T) {
	tests := []struct {
		name     string
		mapping  ColumnMapping
		expected []Field
	}{
		{
			name: "density missing",
			mapping: ColumnMapping{
				FieldDepth: "Depth",
				FieldVp:    "Vp",
				FieldVs:    "Vs",
			},
			expected: []Field{FieldDensity},
		},
		{
			name:     "everything missing",
			mapping:  ColumnMapping{},
			expected: []Field{FieldDepth, FieldDensity, FieldVp, FieldVs},
		},
		{
			name: "two missing, reported in canonical order",
			mapping: ColumnMapping{
				FieldDensity: "Density",
				FieldVp:      "Vp",
			},
			expected: []Field{FieldDepth, FieldVs},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []RawRow{{"Depth": "0", "Density": "2500", "Vp": "3000", "Vs": "1500"}}
			samples, err := PrepareSamples(rows, tt.mapping)
			require.Error(t, err)
			assert.Nil(t, samples)

			var missingErr *MissingColumnsError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.expected, missingErr.Fields)
			for _, f := range tt.expected {
				assert.Contains(t, err.Error(), string(f))
			}
		})
	}
}

func TestPrepareSamplesNoValidRows(t *testing.T) {
	rows := []RawRow{
		{"Depth": "abc", "Density": "2500", "Vp": "3000", "Vs": "1500"},
		{"Depth": "10", "Density": nil, "Vp": "3000", "Vs": "1500"},
		{"Depth": "20", "Density": "2500", "Vp": "", "Vs": "1500"},
	}

	samples, err := PrepareSamples(rows, fullMapping())
	require.Error(t, err)
	assert.Nil(t, samples)

	var noRowsErr *NoValidRowsError
	require.ErrorAs(t, err, &noRowsErr)
	assert.Equal(t, 3, noRowsErr.RowsSeen)
}

func TestPrepareSamplesDropsBadRowsSilently(t *testing.T) {
	rows := []RawRow{
		{"Depth": "0", "Density": "2500", "Vp": "3000", "Vs": "1500"},
		{"Depth": "5", "Density": "n/a", "Vp": "3000", "Vs": "1500"},
		{"Depth": "10", "Density": "2600", "Vp": "3200", "Vs": "1600"},
	}

	samples, err := PrepareSamples(rows, fullMapping())
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 0.0, samples[0].Depth)
	assert.Equal(t, 10.0, samples[1].Depth)
}

func TestPrepareSamplesAppliesUnitConversion(t *testing.T) {
	mapping := ColumnMapping{
		FieldDepth:   "Depth (km)",
		FieldDensity: "Density (g/cc)",
		FieldVp:      "Vp_Km/s",
		FieldVs:      "Vs (m/s)",
	}
	rows := []RawRow{
		{"Depth (km)": "1.2", "Density (g/cc)": "2.5", "Vp_Km/s": "3.0", "Vs (m/s)": "1500"},
	}

	samples, err := PrepareSamples(rows, mapping)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.InDelta(t, 1200, samples[0].Depth, 1e-9)
	assert.InDelta(t, 2500, samples[0].Density, 1e-9)
	assert.InDelta(t, 3000, samples[0].Vp, 1e-9)
	assert.InDelta(t, 1500, samples[0].Vs, 1e-9)
}

func TestPrepareSamplesSortsByDepthStable(t *testing.T) {
	rows := []RawRow{
		{"Depth": "30", "Density": "2700", "Vp": "3400", "Vs": "1700"},
		{"Depth": "10", "Density": "2500", "Vp": "3000", "Vs": "1500"},
		{"Depth": "10", "Density": "2510", "Vp": "3010", "Vs": "1510"},
		{"Depth": "20", "Density": "2600", "Vp": "3200", "Vs": "1600"},
	}

	samples, err := PrepareSamples(rows, fullMapping())
	require.NoError(t, err)
	require.Len(t, samples, 4)

	for i := 1; i < len(samples); i++ {
		assert.GreaterOrEqual(t, samples[i].Depth, samples[i-1].Depth,
			"depths must be non-decreasing end to end")
	}
	// Equal depths keep their relative input order.
	assert.Equal(t, 2500.0, samples[0].Density)
	assert.Equal(t, 2510.0, samples[1].Density)
}

func TestPrepareSamplesCoercesMixedScalarTypes(t *testing.T) {
	rows := []RawRow{
		{"Depth": 0.0, "Density": 2500, "Vp": "3,000", "Vs": int64(1500)},
	}

	samples, err := PrepareSamples(rows, fullMapping())
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 2500.0, samples[0].Density)
	assert.Equal(t, 3000.0, samples[0].Vp)
	assert.Equal(t, 1500.0, samples[0].Vs)
}
