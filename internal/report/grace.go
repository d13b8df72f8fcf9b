package report

import (
	"time"

	"github.com/netopsio/maintreport/internal/domain"
)

// DateLayout is the canonical date format of the report. The upstream EOX
// and coverage attributes all arrive as YYYY-MM-DD strings.
const DateLayout = "2006-01-02"

// GracePolicy names the date columns subject to urgency tiering and the
// grace window in days. An empty column list disables tiering.
type GracePolicy struct {
	Columns []string
	Days    int
}

// ParseDate extracts a calendar date from a cell value. It accepts time.Time
// values and YYYY-MM-DD strings (a longer string is matched on its date
// prefix). The boolean reports whether the value carried a usable date.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return truncateDate(d), true
	case string:
		s := d
		if len(s) > len(DateLayout) {
			s = s[:len(DateLayout)]
		}
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// Classify computes the urgency tier of a single date cell relative to today
// and the grace window:
//
//	value < today                        -> expired
//	today <= value < today+graceDays     -> warning
//	value >= today+graceDays             -> normal
//
// Today itself is warning, not expired, and exactly today+graceDays is
// normal, not warning. A null or unparseable value carries no signal and is
// normal. Classification is per cell; one cell never affects another.
func Classify(v any, today time.Time, graceDays int) domain.Tier {
	date, ok := ParseDate(v)
	if !ok {
		return domain.TierNormal
	}

	day := truncateDate(today)
	switch {
	case date.Before(day):
		return domain.TierExpired
	case date.Before(day.AddDate(0, 0, graceDays)):
		return domain.TierWarning
	default:
		return domain.TierNormal
	}
}

// ClassifyRows annotates every policy date cell that actually parses as a
// date. Cells without a parseable date get no annotation, so the renderer
// leaves them on the base table style.
func ClassifyRows(rows []domain.Row, policy GracePolicy, today time.Time) []map[string]domain.Tier {
	dateCols := make(map[string]bool, len(policy.Columns))
	for _, c := range policy.Columns {
		dateCols[c] = true
	}

	annotations := make([]map[string]domain.Tier, len(rows))
	for i, row := range rows {
		tiers := make(map[string]domain.Tier)
		for _, cell := range row {
			if !dateCols[cell.Column] || !cell.Present {
				continue
			}
			if _, ok := ParseDate(cell.Value); !ok {
				continue
			}
			tiers[cell.Column] = Classify(cell.Value, today, policy.Days)
		}
		annotations[i] = tiers
	}
	return annotations
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
