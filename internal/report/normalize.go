package report

import (
	"fmt"
	"strings"

	"github.com/netopsio/maintreport/internal/domain"
)

// SecondaryPrefix namespaces every column that originates from the secondary
// maintenance data set, keeping it apart from the canonical Cisco schema.
const SecondaryPrefix = "tss_"

// CanonicalName rewrites a free-form column label into the canonical
// snake_case schema: lower-cased, spaces and hyphens replaced with
// underscores. Applying it to an already-canonical name is a no-op.
func CanonicalName(label string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// NormalizeSecondary rewrites the keys of a secondary-source record into the
// canonical schema and applies the namespace prefix. Keys that already carry
// the prefix pass through unchanged, so the function is idempotent. Two
// distinct input labels that normalize to the same canonical name are a
// configuration error, never a silent merge.
func NormalizeSecondary(rec domain.Record) (domain.Record, error) {
	out := make(domain.Record, len(rec))
	source := make(map[string]string, len(rec))

	for label, value := range rec {
		name := CanonicalName(label)
		if !strings.HasPrefix(name, SecondaryPrefix) {
			name = SecondaryPrefix + name
		}
		if prev, ok := source[name]; ok {
			return nil, fmt.Errorf("%w: secondary columns %q and %q both normalize to %q",
				domain.ErrConfig, prev, label, name)
		}
		source[name] = label
		out[name] = value
	}
	return out, nil
}

// MergeSecondary merges a normalized secondary record into a primary record.
// The primary record is not modified. A secondary column whose normalized
// name collides with an existing canonical column outside the secondary
// namespace is a configuration error.
func MergeSecondary(primary, secondary domain.Record) (domain.Record, error) {
	normalized, err := NormalizeSecondary(secondary)
	if err != nil {
		return nil, err
	}

	merged := make(domain.Record, len(primary)+len(normalized))
	for k, v := range primary {
		merged[k] = v
	}
	for k, v := range normalized {
		if _, exists := merged[k]; exists {
			return nil, fmt.Errorf("%w: secondary column %q collides with an existing canonical column",
				domain.ErrConfig, k)
		}
		merged[k] = v
	}
	return merged, nil
}
