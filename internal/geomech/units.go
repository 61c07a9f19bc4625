package geomech

import "regexp"

// Unit token patterns, tested against normalized labels (see
// NormalizeLabel). "km/s" normalizes to "km s", so a plain km token
// covers every spelling; the g/cc family covers the common
// gram-per-cubic-centimeter variants.
var (
	kmToken        = regexp.MustCompile(`\bkm\b`)
	mPerSToken     = regexp.MustCompile(`\bm s\b`)
	gramPerCCToken = regexp.MustCompile(`\bg cc\b|\bg cm3\b|\bgcm3\b`)
)

// UnitScale returns the multiplier converting a raw value from the
// column labeled label to SI, for the given field kind. An empty label
// means the column is assumed to be SI already. Pure and total: every
// label yields a multiplier.
func UnitScale(label string, kind UnitKind) float64 {
	if label == "" {
		return 1
	}
	normalized := NormalizeLabel(label)
	switch kind {
	case UnitVelocity:
		if kmToken.MatchString(normalized) {
			return 1000
		}
		if mPerSToken.MatchString(normalized) {
			return 1
		}
	case UnitDepth:
		if kmToken.MatchString(normalized) {
			return 1000
		}
	case UnitDensity:
		if gramPerCCToken.MatchString(normalized) {
			return 1000
		}
	}
	return 1
}

// unitKindFor maps a canonical field to its unit-conversion rule set.
func unitKindFor(field Field) UnitKind {
	switch field {
	case FieldDepth:
		return UnitDepth
	case FieldDensity:
		return UnitDensity
	default:
		return UnitVelocity
	}
}
