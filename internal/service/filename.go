package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/netopsio/maintreport/internal/domain"
)

// dateTokenLen is the length of the trailing date token in a report file
// stem, e.g. "_2024-01-01" or "_YYYY-mm-dd".
const dateTokenLen = 11

// ReportFilename rewrites a report file template so its stem ends with the
// given date. The template's stem must carry a trailing date token in one of
// the _dd-mm-yyyy, _yyyy-mm-dd, _dd_mm_yyyy or _yyyy_mm_dd shapes; it is
// sliced away and replaced. The destination directory is created if needed.
func ReportFilename(template string, today time.Time) (string, error) {
	dir, file := filepath.Split(template)
	ext := filepath.Ext(file)
	stem := file[:len(file)-len(ext)]

	if len(stem) <= dateTokenLen {
		return "", fmt.Errorf("%w: report filename %q has no date token to replace", domain.ErrConfig, template)
	}
	stem = stem[:len(stem)-dateTokenLen]

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%w: create report directory %s: %v", domain.ErrResource, dir, err)
		}
	}

	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, today.Format("2006-01-02"), ext)), nil
}
