package model

import (
	"fmt"
	"time"
)

// PricePoint is a single dated closing price.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// PriceSeries holds the closing prices fetched for one request.
// Points are ordered by strictly increasing time.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of points in the series.
func (s PriceSeries) Len() int { return len(s.Points) }

// Empty reports whether the provider returned no points.
func (s PriceSeries) Empty() bool { return len(s.Points) == 0 }

// Closes returns the closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Validate checks ordering, uniqueness and positivity of the points.
func (s PriceSeries) Validate() error {
	for i, p := range s.Points {
		if p.Close <= 0 {
			return fmt.Errorf("point %d (%s): non-positive close %v", i, p.Time.Format("2006-01-02"), p.Close)
		}
		if i > 0 && !p.Time.After(s.Points[i-1].Time) {
			return fmt.Errorf("point %d (%s): timestamp not after previous", i, p.Time.Format("2006-01-02"))
		}
	}
	return nil
}
