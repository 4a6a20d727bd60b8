package model

import "time"

// Side is the direction of a crossover event.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// SignalSeries holds parallel buy/sell flags aligned with a PriceSeries.
// At most one of Buy[i], Sell[i] is true.
type SignalSeries struct {
	Buy  []bool
	Sell []bool
}

// Len returns the length of the signal series.
func (s SignalSeries) Len() int { return len(s.Buy) }

// Counts returns the number of buy and sell flags set.
func (s SignalSeries) Counts() (buys, sells int) {
	for i := range s.Buy {
		if s.Buy[i] {
			buys++
		}
		if s.Sell[i] {
			sells++
		}
	}
	return buys, sells
}

// CrossEvent is one crossover located on the price series.
type CrossEvent struct {
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
	Side  Side      `json:"side"`
}

// Report is the artifact handed to a presentation surface. It is built in
// memory per request and owned by the caller once returned.
type Report struct {
	Symbol      string
	Start       string
	End         string
	ShortWindow int
	LongWindow  int
	Series      PriceSeries
	Short       MovingAverage
	Long        MovingAverage
	Signals     SignalSeries
	Events      []CrossEvent
	PeriodHigh  float64
	PeriodLow   float64
	LastClose   float64
	// Position of LastClose within [PeriodLow, PeriodHigh], 0.0~1.0.
	Position    float64
}

// LastEvent returns the most recent crossover, if any.
func (r *Report) LastEvent() (CrossEvent, bool) {
	if len(r.Events) == 0 {
		return CrossEvent{}, false
	}
	return r.Events[len(r.Events)-1], true
}

// LatestBarEvent returns the crossover on the newest bar, if there is one.
func (r *Report) LatestBarEvent() (CrossEvent, bool) {
	ev, ok := r.LastEvent()
	if !ok || ev.Index != r.Series.Len()-1 {
		return CrossEvent{}, false
	}
	return ev, true
}
