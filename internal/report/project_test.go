package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netopsio/maintreport/internal/domain"
)

func TestProjectOrdersAndFilters(t *testing.T) {
	spec := []string{"host", "sr_no", "coverage_end_date"}
	records := []domain.Record{
		// Key order in the source never matters, only the spec order.
		{"coverage_end_date": "2024-02-01", "host": "sw-01", "sr_no": "FDO1", "switch_num": 4},
		{"sr_no": "FDO2", "host": "sw-02"},
	}

	rows := Project(records, spec)
	require.Len(t, rows, 2)

	for _, row := range rows {
		require.Len(t, row, len(spec))
		assert.Equal(t, spec, row.Columns())
	}

	// Unlisted columns are dropped.
	_, ok := rows[0].Get("switch_num")
	assert.False(t, ok)

	// An absent column yields an explicit missing marker, not an empty string.
	cell, ok := rows[1].Get("coverage_end_date")
	require.True(t, ok)
	assert.False(t, cell.Present)
	assert.Nil(t, cell.Value)
}

func TestProjectMissingIsNotEmptyString(t *testing.T) {
	spec := []string{"a", "b"}
	rows := Project([]domain.Record{{"a": ""}}, spec)
	require.Len(t, rows, 1)

	empty, _ := rows[0].Get("a")
	missing, _ := rows[0].Get("b")
	assert.True(t, empty.Present)
	assert.Equal(t, "", empty.Value)
	assert.False(t, missing.Present)
}

func TestProjectEmptySpecIsPassThrough(t *testing.T) {
	records := []domain.Record{
		{"host": "sw-01", "sr_no": "FDO1"},
		{"host": "sw-02", "item_type": "CHASSIS"},
	}

	rows := Project(records, nil)
	require.Len(t, rows, 2)

	// All rows share the union of keys, so the result is table-shaped.
	require.Len(t, rows[0], 3)
	assert.Equal(t, rows[0].Columns(), rows[1].Columns())

	cell, ok := rows[0].Get("item_type")
	require.True(t, ok)
	assert.False(t, cell.Present)
}

func TestProjectPreservesRowOrder(t *testing.T) {
	records := []domain.Record{
		{"host": "first"},
		{"host": "second"},
		{"host": "third"},
	}

	rows := Project(records, []string{"host"})
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[0][0].Value)
	assert.Equal(t, "second", rows[1][0].Value)
	assert.Equal(t, "third", rows[2][0].Value)
}
