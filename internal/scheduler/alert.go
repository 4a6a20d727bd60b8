package scheduler

import (
	"time"

	"SignalSentinel/internal/analysis"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/recorder"
)

func (s *Scheduler) alert(resp analysis.Response, side model.Side, date time.Time, price float64, text string) {
	symbol := resp.Report.Symbol
	if sent, err := s.Recorder.AlertSent(symbol, side, date); err != nil {
		s.Log.Errorf("check alert history for %s: %v", symbol, err)
	} else if sent {
		s.Log.Debugf("alert %s %s %s already sent", symbol, side, date.Format("2006-01-02"))
		return
	}

	evt := &recorder.AlertEvent{Symbol: symbol, Side: side, Date: date, Close: price}
	if s.Notifier == nil {
		evt.Note = "no notifier configured"
		s.Log.Infof("%s %s crossover on %s (no notifier configured)", symbol, side, date.Format("2006-01-02"))
	} else if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		evt.Note = err.Error()
		s.Log.Errorf("send alert for %s: %v", symbol, err)
	} else {
		evt.Sent = true
		metrics.AlertsTotal.WithLabelValues(symbol, string(side)).Inc()
	}
	if err := s.Recorder.RecordAlert(evt); err != nil {
		s.Log.Errorf("record alert: %v", err)
	}
}
