package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/netopsio/maintreport/internal/domain"
)

// FileSource reads a finished record set from disk, picking the decoder by
// file extension. Sheet is only consulted for xlsx inputs.
type FileSource struct {
	Path  string
	Sheet string
}

var _ domain.RecordSource = FileSource{}

func (s FileSource) Records(ctx context.Context) ([]domain.Record, error) {
	switch filepath.Ext(s.Path) {
	case ".xlsx":
		return ReadRecordsXLSX(s.Path, s.Sheet)
	case ".json":
		return ReadRecordsJSON(s.Path)
	}
	return nil, fmt.Errorf("%w: unsupported input format %q", domain.ErrConfig, filepath.Ext(s.Path))
}

// ReadRecordsXLSX reads flat records from a report-shaped workbook: row 1 is
// the title band and is skipped, row 2 holds the column names, data follows.
// Empty cells become absent keys, never empty strings, so a re-imported
// report keeps the same missing-value semantics as a live collection.
func ReadRecordsXLSX(path, sheet string) ([]domain.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open input %s: %v", domain.ErrResource, path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); sheet == "" || err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q of %s: %v", domain.ErrResource, sheet, path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[1]
	records := make([]domain.Record, 0, len(rows)-2)
	for _, row := range rows[2:] {
		rec := make(domain.Record, len(header))
		for i, col := range header {
			if col == "" || i >= len(row) || row[i] == "" {
				continue
			}
			rec[col] = row[i]
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ReadRecordsJSON reads a flat JSON array of records.
func ReadRecordsJSON(path string) ([]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open input %s: %v", domain.ErrResource, path, err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse input %s: %v", domain.ErrConfig, path, err)
	}
	return records, nil
}
