package domain

import "errors"

// Error taxonomy for the report pipeline. Configuration and resource errors
// are fatal and propagate unchanged to the top-level caller; data-quality
// conditions (missing optional column, non-date text in a date column) are
// absorbed at the component boundary and never surface as errors.
var (
	// ErrConfig marks configuration errors: unknown mode, duplicate column
	// names, normalization collisions, malformed style values. Reported
	// before any rendering work begins.
	ErrConfig = errors.New("report config error")

	// ErrResource marks resource errors: unwritable output target or a
	// configured asset that is missing on disk.
	ErrResource = errors.New("report resource error")
)
