package collector

import (
	"context"
	"time"

	"SignalSentinel/internal/model"
)

// Fetcher is the data provider contract. It returns the daily closes of
// symbol for [start, end). An empty series with a nil error means the
// provider had no data for the range; any failure is returned as an error.
type Fetcher interface {
	FetchCloses(ctx context.Context, symbol string, start, end time.Time) (model.PriceSeries, error)
	Name() string
}
