package recorder

import (
	"time"

	"SignalSentinel/internal/model"
)

// RunRecord holds one analysis run, successful or not.
type RunRecord struct {
	At          time.Time
	Source      string // "http", "telegram", "watchlist"
	Symbol      string
	RangeLabel  string
	Start       string
	End         string
	Outcome     string
	Status      string
	ShortWindow int
	LongWindow  int
	Points      int
	Buys        int
	Sells       int
	LastClose   float64
	Events      []model.CrossEvent
}

// AlertEvent records a watchlist alert that was pushed to a notifier.
type AlertEvent struct {
	Symbol string
	Side   model.Side
	Date   time.Time
	Close  float64
	Sent   bool
	Note   string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordAlert(evt *AlertEvent) error
	// AlertSent reports whether an alert for symbol/side/date was already delivered.
	AlertSent(symbol string, side model.Side, date time.Time) (bool, error)
	Close() error
}
