// Package analysis runs one analysis request end to end: range selection,
// validation, fetch, and the signal engine.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/daterange"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/strategy"
)

// Request is the input of a single run. Zero windows fall back to the
// service defaults.
type Request struct {
	Source      string
	Symbol      string
	Range       string
	Start       string
	End         string
	ShortWindow int
	LongWindow  int
}

// Response is what a presentation surface shows: a human-readable status
// and, on success, the report. Err classifies failures; it is never
// returned as a Go error past Run.
type Response struct {
	Status string
	Report *model.Report
	Err    error
}

// OK reports whether the run produced a report.
func (r Response) OK() bool { return r.Err == nil && r.Report != nil }

// Service holds the collaborators of a run. It keeps no per-request state
// and is safe for concurrent use if its Fetcher and Recorder are.
type Service struct {
	Fetcher     collector.Fetcher
	Recorder    recorder.Recorder
	Log         *zap.SugaredLogger
	Now         func() time.Time
	ShortWindow int
	LongWindow  int
}

// NewService creates a Service with the given default windows.
func NewService(fetcher collector.Fetcher, rec recorder.Recorder, log *zap.SugaredLogger, shortWindow, longWindow int) *Service {
	return &Service{
		Fetcher:     fetcher,
		Recorder:    rec,
		Log:         log,
		Now:         time.Now,
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
	}
}

// Run executes req and always returns a Response.
func (s *Service) Run(ctx context.Context, req Request) Response {
	rec := &recorder.RunRecord{
		At:         s.Now(),
		Source:     req.Source,
		Symbol:     normalizeSymbol(req.Symbol),
		RangeLabel: req.Range,
	}
	resp := s.run(ctx, req, rec)

	rec.Outcome = Outcome(resp.Err)
	rec.Status = resp.Status
	if resp.Report != nil {
		rec.Points = resp.Report.Series.Len()
		rec.Buys, rec.Sells = resp.Report.Signals.Counts()
		rec.LastClose = resp.Report.LastClose
		rec.Events = resp.Report.Events
		metrics.CrossoversTotal.WithLabelValues(string(model.SideBuy)).Add(float64(rec.Buys))
		metrics.CrossoversTotal.WithLabelValues(string(model.SideSell)).Add(float64(rec.Sells))
	}
	metrics.AnalysesTotal.WithLabelValues(sourceLabel(req.Source), rec.Outcome).Inc()

	if resp.Err != nil {
		s.Log.Warnf("analysis %s [%s]: %v", rec.Symbol, rec.Outcome, resp.Err)
	} else {
		s.Log.Infof("analysis %s %s..%s: %d points, %d buy / %d sell", rec.Symbol, rec.Start, rec.End, rec.Points, rec.Buys, rec.Sells)
	}
	if s.Recorder != nil {
		if err := s.Recorder.RecordRun(rec); err != nil {
			s.Log.Errorf("record run: %v", err)
		}
	}
	return resp
}

func (s *Service) run(ctx context.Context, req Request, rec *recorder.RunRecord) Response {
	label, err := daterange.ParseLabel(req.Range)
	if err != nil {
		return failure(err)
	}
	start, end, err := daterange.Select(label, req.Start, req.End, s.Now())
	if err != nil {
		return failure(err)
	}
	rec.Start, rec.End = start, end

	rng, err := daterange.Parse(start, end)
	if err != nil {
		return failure(err)
	}

	symbol := normalizeSymbol(req.Symbol)
	if symbol == "" {
		return failure(ErrEmptySymbol)
	}

	shortW, longW := req.ShortWindow, req.LongWindow
	if shortW == 0 {
		shortW = s.ShortWindow
	}
	if longW == 0 {
		longW = s.LongWindow
	}
	rec.ShortWindow, rec.LongWindow = shortW, longW
	if shortW < 1 || longW <= shortW {
		return failure(fmt.Errorf("%w: short=%d long=%d", ErrInvalidWindows, shortW, longW))
	}

	began := time.Now()
	series, err := s.Fetcher.FetchCloses(ctx, symbol, rng.Start, rng.End)
	metrics.FetchSeconds.WithLabelValues(s.Fetcher.Name()).Observe(time.Since(began).Seconds())
	if err != nil {
		return failure(fmt.Errorf("%w: %v", ErrProviderFailure, err))
	}
	if err := series.Validate(); err != nil {
		return failure(fmt.Errorf("%w: %v", ErrProviderFailure, err))
	}
	if series.Empty() {
		return failure(ErrNoData)
	}
	if series.Symbol == "" {
		series.Symbol = symbol
	}

	report := strategy.Analyze(series, start, end, shortW, longW)
	return Response{Status: successStatus(report), Report: report}
}

func failure(err error) Response {
	return Response{Status: StatusText(err), Err: err}
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func sourceLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// StatusText renders err as the message shown to the user.
func StatusText(err error) string {
	switch Outcome(err) {
	case OutcomeOK:
		return ""
	case OutcomeInvalidDateFormat:
		return "Please enter dates in YYYY-MM-DD format."
	case OutcomeInvertedRange:
		return "Start date cannot be after end date."
	case OutcomeUnknownRange:
		return fmt.Sprintf("Unknown time range. Choose one of: %s.", strings.Join(daterange.LabelStrings(), ", "))
	case OutcomeEmptySymbol:
		return "Please enter a valid ticker symbol."
	case OutcomeInvalidWindows:
		return "Short window must be at least 1 and smaller than the long window."
	case OutcomeProviderFailure:
		return "Error while fetching data: " + strings.TrimPrefix(err.Error(), ErrProviderFailure.Error()+": ")
	case OutcomeNoData:
		return "No data found for the given date range."
	}
	return fmt.Sprintf("Analysis failed: %v", err)
}

func successStatus(r *model.Report) string {
	buys, sells := r.Signals.Counts()
	status := fmt.Sprintf("Start date: %s\nEnd date: %s\n%s: %d closes, MA%d/MA%d, %d buy / %d sell signals",
		r.Start, r.End, r.Symbol, r.Series.Len(), r.ShortWindow, r.LongWindow, buys, sells)
	if ev, ok := r.LastEvent(); ok {
		status += fmt.Sprintf("\nLast signal: %s on %s at %.2f", ev.Side, ev.Time.Format(daterange.Layout), ev.Close)
	}
	return status
}
