package report

import "github.com/netopsio/maintreport/internal/domain"

// Project maps every record onto the ordered column spec. Output cell
// position equals the spec index; a column absent from a record yields a
// cell with Present=false, which is distinct from an empty string. Columns
// present in a record but not listed in the spec are dropped.
//
// An empty or nil spec disables filtering: the output columns are the union
// of all record keys in first-seen order, so rows still share one width and
// a worksheet table can be built directly from the result.
func Project(records []domain.Record, spec []string) []domain.Row {
	columns := spec
	if len(columns) == 0 {
		columns = unionColumns(records)
	}

	rows := make([]domain.Row, len(records))
	for i, rec := range records {
		row := make(domain.Row, len(columns))
		for j, col := range columns {
			value, ok := rec[col]
			row[j] = domain.Cell{Column: col, Value: value, Present: ok}
		}
		rows[i] = row
	}
	return rows
}

// unionColumns collects every key across the record set, in the order keys
// are first seen. Go maps carry no key order, so within one record the keys
// are visited in the record's iteration order; across records the order is
// stable for identical key sets.
func unionColumns(records []domain.Record) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}
