package repository

import (
	"context"

	"StockDash/internal/domain/models"
)

// TableSource yields the loaded, normalized metrics table. A load
// failure returns an empty table alongside the error; callers must
// treat an empty table as "no usable data".
type TableSource interface {
	Load(ctx context.Context) (models.Table, error)
}

type Metrics interface {
	RecordRowsLoaded(file string, rows int)
	RecordError(kind string)
	RecordCacheLookup(hit bool)
	RecordLatency(op string, seconds float64)
}
