package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/netopsio/maintreport/internal/domain"
	"github.com/netopsio/maintreport/internal/logger"
	"github.com/netopsio/maintreport/internal/render"
	"github.com/netopsio/maintreport/internal/report"
)

// SerialColumn joins a secondary maintenance row to its primary record.
const SerialColumn = "sr_no"

// ReportService runs the report pipeline: merge the optional secondary data
// set, project onto the mode's column spec, classify date cells and render
// the workbook. The pipeline is single-pass and synchronous; the shared
// profile is read-only, so concurrent BuildReport calls are safe as long as
// each call gets its own record set and output target.
type ReportService struct {
	profile  *report.Profile
	renderer *render.Renderer
	now      func() time.Time
}

func NewReportService(profile *report.Profile) *ReportService {
	return &ReportService{
		profile:  profile,
		renderer: render.New(profile),
		now:      time.Now,
	}
}

// WithClock pins the report date, for tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// prepared is the shaped, annotated data of one render.
type prepared struct {
	columns []string
	rows    []domain.Row
	tiers   []map[string]domain.Tier
}

func (s *ReportService) prepare(ctx context.Context, records, secondary []domain.Record, mode domain.ReportMode) (*prepared, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"run_id": uuid.NewString(),
		"mode":   string(mode),
	})

	if mode.IncludesSecondary() && len(secondary) > 0 {
		merged, err := s.mergeSecondary(records, secondary)
		if err != nil {
			return nil, err
		}
		records = merged
	}

	spec := s.profile.ColumnOrder(mode)
	rows := report.Project(records, spec)
	logger.Info(ctx, "projected %d records onto %d columns", len(records), rowWidth(rows, spec))

	policy := s.profile.GracePolicy()
	tiers := report.ClassifyRows(rows, policy, s.now())
	if n := unparseableDates(rows, tiers, policy); n > 0 {
		logger.Debug(ctx, "%d date cells did not parse and keep the base style", n)
	}

	columns := spec
	if len(columns) == 0 && len(rows) > 0 {
		columns = rows[0].Columns()
	}
	return &prepared{columns: columns, rows: rows, tiers: tiers}, nil
}

// BuildReport renders one report document to the given path.
func (s *ReportService) BuildReport(ctx context.Context, records, secondary []domain.Record, mode domain.ReportMode, path string) error {
	prep, err := s.prepare(ctx, records, secondary, mode)
	if err != nil {
		return err
	}
	if err := s.renderer.RenderToFile(path, mode, prep.columns, prep.rows, prep.tiers); err != nil {
		return err
	}
	logger.Info(ctx, "saved report for %d records to %s", len(prep.rows), path)
	return nil
}

// WriteReport renders one report document to the writer, for HTTP delivery.
func (s *ReportService) WriteReport(ctx context.Context, w io.Writer, records, secondary []domain.Record, mode domain.ReportMode) error {
	prep, err := s.prepare(ctx, records, secondary, mode)
	if err != nil {
		return err
	}
	return s.renderer.RenderTo(w, mode, prep.columns, prep.rows, prep.tiers)
}

// mergeSecondary joins each secondary maintenance row onto the primary
// record with the matching serial number. Secondary rows without a primary
// match are dropped; primary records without maintenance data stay as-is.
func (s *ReportService) mergeSecondary(records, secondary []domain.Record) ([]domain.Record, error) {
	bySerial := make(map[string]domain.Record, len(secondary))
	for _, sec := range secondary {
		serial := serialOf(sec)
		if serial == "" {
			continue
		}
		bySerial[serial] = sec
	}

	merged := make([]domain.Record, len(records))
	for i, rec := range records {
		sec, ok := bySerial[serialOf(rec)]
		if !ok {
			merged[i] = rec
			continue
		}
		m, err := report.MergeSecondary(rec, sec)
		if err != nil {
			return nil, err
		}
		merged[i] = m
	}
	return merged, nil
}

// serialOf reads the join key from a record, tolerating the secondary
// source's own labeling of the serial column.
func serialOf(rec domain.Record) string {
	candidates := map[string]string{}
	for key, v := range rec {
		switch report.CanonicalName(key) {
		case SerialColumn, "serial", "tss_serial":
			candidates[report.CanonicalName(key)] = fmt.Sprint(v)
		}
	}
	for _, name := range []string{SerialColumn, "tss_serial", "serial"} {
		if v, ok := candidates[name]; ok {
			return v
		}
	}
	return ""
}

// unparseableDates counts cells in the policy's date columns that carried a
// value but received no tier annotation.
func unparseableDates(rows []domain.Row, tiers []map[string]domain.Tier, policy report.GracePolicy) int {
	dateCols := make(map[string]bool, len(policy.Columns))
	for _, c := range policy.Columns {
		dateCols[c] = true
	}

	n := 0
	for i, row := range rows {
		for _, c := range row {
			if !dateCols[c.Column] || !c.Present {
				continue
			}
			if _, ok := tiers[i][c.Column]; !ok {
				n++
			}
		}
	}
	return n
}

func rowWidth(rows []domain.Row, spec []string) int {
	if len(spec) > 0 {
		return len(spec)
	}
	if len(rows) > 0 {
		return len(rows[0])
	}
	return 0
}
