package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/netopsio/maintreport/internal/domain"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReadRecordsXLSX(t *testing.T) {
	path := writeWorkbook(t, "Cisco_Maintenance_Report", [][]interface{}{
		{"Cisco Maintenance Report"},
		{"host", "sr_no", "coverage_end_date"},
		{"sw-01", "FDO1", "2024-02-01"},
		{"sw-02", "FDO2", nil},
	})

	records, err := ReadRecordsXLSX(path, "Cisco_Maintenance_Report")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.Record{"host": "sw-01", "sr_no": "FDO1", "coverage_end_date": "2024-02-01"}, records[0])

	// The blank cell must be an absent key, not an empty string.
	_, ok := records[1]["coverage_end_date"]
	assert.False(t, ok)
}

func TestReadRecordsXLSXFallsBackToFirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Inventory", [][]interface{}{
		{"title"},
		{"host"},
		{"sw-01"},
	})

	records, err := ReadRecordsXLSX(path, "No_Such_Sheet")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "sw-01", records[0]["host"])
}

func TestReadRecordsXLSXMissingFile(t *testing.T) {
	_, err := ReadRecordsXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResource))
}

func TestReadRecordsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"host":"sw-01","sr_no":"FDO1"}]`), 0o644))

	records, err := ReadRecordsJSON(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "FDO1", records[0]["sr_no"])
}

func TestFileSourcePicksDecoderByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"host":"sw-01"}]`), 0o644))

	records, err := FileSource{Path: path}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, err = FileSource{Path: "records.csv"}.Records(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfig))
}

func TestReadRecordsJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	_, err := ReadRecordsJSON(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfig))
}
