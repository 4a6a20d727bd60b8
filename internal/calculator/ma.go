package calculator

import (
	"errors"

	"SignalSentinel/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// MovingAverage computes the trailing simple moving average for every
// position of the series. The first window-1 positions are undefined; if
// window exceeds the series length (or is below 1) nothing is defined.
func MovingAverage(series model.PriceSeries, window int) model.MovingAverage {
	return RollingMean(series.Closes(), window)
}

// RollingMean is MovingAverage over a raw price slice.
func RollingMean(prices []float64, window int) model.MovingAverage {
	n := len(prices)
	ma := model.MovingAverage{
		Window:  window,
		Values:  make([]float64, n),
		Defined: make([]bool, n),
	}
	if window < 1 {
		return ma
	}
	for i := window - 1; i < n; i++ {
		// Summing each window separately keeps flat stretches exactly equal,
		// which the crossover comparison depends on.
		v, _ := CalculateSMA(prices[:i+1], window)
		ma.Values[i] = v
		ma.Defined[i] = true
	}
	return ma
}
