package strategy

import "SignalSentinel/internal/model"

// DetectCrossings flags where the short average crosses the long one.
//
// buy[i] is set when short moves from <= long at i-1 to > long at i, sell[i]
// when it moves from >= long to < long. Any undefined input at i-1 or i
// leaves both flags false, as does i == 0. Inputs of unequal length are
// compared over their common prefix.
func DetectCrossings(short, long model.MovingAverage) model.SignalSeries {
	n := short.Len()
	if long.Len() > n {
		n = long.Len()
	}
	sig := model.SignalSeries{
		Buy:  make([]bool, n),
		Sell: make([]bool, n),
	}
	for i := 1; i < n; i++ {
		prevS, ok1 := short.At(i - 1)
		prevL, ok2 := long.At(i - 1)
		curS, ok3 := short.At(i)
		curL, ok4 := long.At(i)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		sig.Buy[i] = curS > curL && prevS <= prevL
		sig.Sell[i] = curS < curL && prevS >= prevL
	}
	return sig
}

// Events lists the flagged positions of sig against the series they refer to.
func Events(series model.PriceSeries, sig model.SignalSeries) []model.CrossEvent {
	var events []model.CrossEvent
	for i := 0; i < sig.Len() && i < series.Len(); i++ {
		var side model.Side
		switch {
		case sig.Buy[i]:
			side = model.SideBuy
		case sig.Sell[i]:
			side = model.SideSell
		default:
			continue
		}
		p := series.Points[i]
		events = append(events, model.CrossEvent{Index: i, Time: p.Time, Close: p.Close, Side: side})
	}
	return events
}
