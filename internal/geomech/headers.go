package geomech

import (
	"regexp"
	"strings"
)

// headerRule binds a canonical field to one tolerant matching rule,
// tested against the normalized header label. Either pattern (a
// word-boundary regexp) or prefix is set, never both. Rules form an
// ordered table so the matching policy stays auditable on its own.
type headerRule struct {
	field   Field
	pattern *regexp.Regexp
	prefix  string
}

func (r headerRule) matches(normalized string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(normalized)
	}
	return strings.HasPrefix(normalized, r.prefix)
}

// headerRules is the declarative matching table. Word-boundary patterns
// come first; the bare vp*/vs* prefixes are fallbacks for labels like
// "VpCorr" that carry no separator.
var headerRules = []headerRule{
	{field: FieldDepth, pattern: regexp.MustCompile(`\bdepth\b`)},
	{field: FieldDensity, pattern: regexp.MustCompile(`\bdens|\brho|\bkg m`)},
	{field: FieldVp, pattern: regexp.MustCompile(`\bvp\b|\bp vel|\bpwave\b|\bp wave\b`)},
	{field: FieldVs, pattern: regexp.MustCompile(`\bvs\b|\bs vel|\bshear`)},
	{field: FieldVp, prefix: "vp"},
	{field: FieldVs, prefix: "vs"},
}

// MapColumns scans the header labels in input order and proposes a
// column mapping for the canonical fields. A later matching header
// overwrites an earlier assignment for the same field, so the mapping
// reflects the last match. No field is required: absent fields are
// reported by PrepareSamples, not here.
func MapColumns(headers []string) ColumnMapping {
	mapping := make(ColumnMapping, len(CanonicalFields))
	for _, header := range headers {
		normalized := NormalizeLabel(header)
		if normalized == "" {
			continue
		}
		for _, rule := range headerRules {
			if rule.matches(normalized) {
				mapping[rule.field] = header
			}
		}
	}
	return mapping
}

// NormalizeLabel lowercases a header label and collapses every run of
// non-alphanumeric characters to a single space, so "Vp_Km/s" and
// "vp (km/s)" compare equal as "vp km s".
func NormalizeLabel(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	var b strings.Builder
	b.Grow(len(lower))
	pendingSpace := false
	for _, r := range lower {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
