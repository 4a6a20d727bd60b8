package strategy

import (
	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

// Default windows for the short and long moving averages.
const (
	DefaultShortWindow = 20
	DefaultLongWindow  = 50
)

// Analyze runs the signal engine over series and assembles a Report.
// start and end are the requested range as given to the provider.
func Analyze(series model.PriceSeries, start, end string, shortWindow, longWindow int) *model.Report {
	short := calculator.MovingAverage(series, shortWindow)
	long := calculator.MovingAverage(series, longWindow)
	signals := DetectCrossings(short, long)

	report := &model.Report{
		Symbol:      series.Symbol,
		Start:       start,
		End:         end,
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
		Series:      series,
		Short:       short,
		Long:        long,
		Signals:     signals,
		Events:      Events(series, signals),
	}

	if h, l, err := calculator.PeriodRange(series); err == nil {
		report.PeriodHigh = h
		report.PeriodLow = l
		report.LastClose = series.Points[series.Len()-1].Close
		if pos, err := calculator.RangePosition(report.LastClose, h, l); err == nil {
			report.Position = pos
		}
	}
	return report
}
