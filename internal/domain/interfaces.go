package domain

import "context"

// RecordSource is the boundary to the upstream data-collection layer. The
// pipeline consumes a finished record set and never performs collection,
// retries or network calls itself.
type RecordSource interface {
	// Records returns the complete record set for one render.
	Records(ctx context.Context) ([]Record, error)
}
