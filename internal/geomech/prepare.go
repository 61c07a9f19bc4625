package geomech

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MissingColumnsError reports the canonical fields that have no mapped
// source column. It is computed up front, before any row is touched.
type MissingColumnsError struct {
	Fields []Field
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("missing required columns: %s", strings.Join(names, ", "))
}

// NoValidRowsError reports that every input row was discarded during
// coercion and unit conversion.
type NoValidRowsError struct {
	RowsSeen int
}

func (e *NoValidRowsError) Error() string {
	return fmt.Sprintf("no valid rows after coercion (%d rows scanned)", e.RowsSeen)
}

// PrepareSamples coerces raw rows to SI samples using the confirmed
// column mapping. Rows where any of the four values fails to coerce to
// a finite number are discarded silently. The surviving samples are
// returned in stable ascending depth order: rows with equal depth keep
// their relative input order.
func PrepareSamples(rows []RawRow, mapping ColumnMapping) ([]PreparedSample, error) {
	var missing []Field
	for _, field := range CanonicalFields {
		if mapping[field] == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Fields: missing}
	}

	// Per-column scale factors are fixed for the whole file.
	scale := make(map[Field]float64, len(CanonicalFields))
	for _, field := range CanonicalFields {
		scale[field] = UnitScale(mapping[field], unitKindFor(field))
	}

	samples := make([]PreparedSample, 0, len(rows))
	for _, row := range rows {
		s := PreparedSample{
			Depth:   coerceScalar(row[mapping[FieldDepth]]) * scale[FieldDepth],
			Density: coerceScalar(row[mapping[FieldDensity]]) * scale[FieldDensity],
			Vp:      coerceScalar(row[mapping[FieldVp]]) * scale[FieldVp],
			Vs:      coerceScalar(row[mapping[FieldVs]]) * scale[FieldVs],
		}
		if !IsDefined(s.Depth) || !IsDefined(s.Density) || !IsDefined(s.Vp) || !IsDefined(s.Vs) {
			continue
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, &NoValidRowsError{RowsSeen: len(rows)}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Depth < samples[j].Depth
	})
	return samples, nil
}

// coerceScalar converts a decoded cell value to a float64, returning
// NaN for anything that is not a usable number. Numeric strings may
// carry thousands separators.
func coerceScalar(v any) float64 {
	switch val := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		trimmed := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if trimmed == "" {
			return math.NaN()
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return parsed
	default:
		return math.NaN()
	}
}
