package domain

import "fmt"

// ==================== REPORT INPUT ====================

// Record is one raw report row: canonical column name -> scalar value.
// Records in a single run need not share identical key sets; an absent key
// is treated as null during projection.
type Record map[string]any

// Cell is one projected cell. Present distinguishes a column that is absent
// from the source record from a column that holds an empty string.
type Cell struct {
	Column  string
	Value   any
	Present bool
}

// Row is a projected record. All rows produced by one projection share the
// same width and column order.
type Row []Cell

// Columns returns the column names of the row in order.
func (r Row) Columns() []string {
	cols := make([]string, len(r))
	for i, c := range r {
		cols[i] = c.Column
	}
	return cols
}

// Get returns the cell for the named column.
func (r Row) Get(column string) (Cell, bool) {
	for _, c := range r {
		if c.Column == column {
			return c, true
		}
	}
	return Cell{}, false
}

// ==================== REPORT MODE ====================

// ReportMode selects which column order and title text apply to one render.
// It is fixed for the lifetime of a render.
type ReportMode string

const (
	// ModeDynamic renders records collected live from devices.
	ModeDynamic ReportMode = "dynamic"
	// ModeDynamicTSS is ModeDynamic with the IBM TSS maintenance data merged in.
	ModeDynamicTSS ReportMode = "dynamic_tss"
	// ModeStatic renders records loaded from a static input file.
	ModeStatic ReportMode = "static"
	// ModeStaticTSS is ModeStatic with the IBM TSS maintenance data merged in.
	ModeStaticTSS ReportMode = "static_tss"
)

// ParseReportMode converts a user-supplied mode string. An unknown mode is a
// configuration error.
func ParseReportMode(s string) (ReportMode, error) {
	switch ReportMode(s) {
	case ModeDynamic, ModeDynamicTSS, ModeStatic, ModeStaticTSS:
		return ReportMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown report mode %q", ErrConfig, s)
}

// IncludesSecondary reports whether the mode carries the secondary
// maintenance data set.
func (m ReportMode) IncludesSecondary() bool {
	return m == ModeDynamicTSS || m == ModeStaticTSS
}

// ==================== URGENCY TIER ====================

// Tier is the urgency classification of a single date cell relative to the
// report date and the grace window. It is derived at render time and never
// persisted.
type Tier int

const (
	TierNormal Tier = iota
	TierWarning
	TierExpired
)

func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierExpired:
		return "expired"
	default:
		return "normal"
	}
}
