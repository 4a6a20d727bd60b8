package collector

import (
	"context"
	"sort"
	"sync"
	"time"

	"SignalSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Points []model.PricePoint
	Err    error

	mu    sync.Mutex
	Calls []MockCall
}

// MockCall records the arguments of one FetchCloses call.
type MockCall struct {
	Symbol     string
	Start, End time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCloses(_ context.Context, symbol string, start, end time.Time) (model.PriceSeries, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Symbol: symbol, Start: start, End: end})
	m.mu.Unlock()

	if m.Err != nil {
		return model.PriceSeries{}, m.Err
	}
	series := model.PriceSeries{Symbol: symbol, FetchedAt: time.Now()}
	if m.Points != nil {
		series.Points = m.Points
		return series, nil
	}
	series.Points = generateMockPoints(m.Price, start, end)
	return series, nil
}

// generateMockPoints emits one close per weekday in [start, end).
func generateMockPoints(basePrice float64, start, end time.Time) []model.PricePoint {
	if basePrice <= 0 {
		return nil
	}
	var points []model.PricePoint
	i := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		points = append(points, model.PricePoint{
			Time:  d,
			Close: basePrice * (1 + float64(i%20-10)*0.001),
		})
		i++
	}
	return points
}

// normalize sorts points by time, drops non-positive closes and keeps the
// last point of any duplicated timestamp.
func normalize(points []model.PricePoint) []model.PricePoint {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	out := points[:0]
	for _, p := range points {
		if p.Close <= 0 {
			continue // null bars (holidays, halted sessions)
		}
		if n := len(out); n > 0 && out[n-1].Time.Equal(p.Time) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
