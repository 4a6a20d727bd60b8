package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"SignalSentinel/internal/analysis"
	"SignalSentinel/internal/daterange"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
)

// Sender delivers a text message, retrying on failure.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the watchlist scan on a cron schedule and answers bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *analysis.Service
	Notifier Sender
	Recorder recorder.Recorder
	Log      *zap.SugaredLogger
	Ctx      context.Context
	Symbols  []string
	Range    daterange.Label

	// DefaultRange is used by /analyze when no range is given.
	DefaultRange daterange.Label

	// scan serialises watchlist runs so a slow scan never overlaps the next tick.
	scan sync.Mutex
}

// NewScheduler creates a new Scheduler. sender may be nil when no notifier is configured.
func NewScheduler(ctx context.Context, svc *analysis.Service, sender Sender, rec recorder.Recorder, log *zap.SugaredLogger, symbols []string, rng daterange.Label) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Service:  svc,
		Notifier: sender,
		Recorder: rec,
		Log:      log,
		Ctx:      ctx,
		Symbols:  symbols,
		Range:    rng,

		DefaultRange: daterange.SixMonths,
	}
}

// Register adds the watchlist scan. It is a no-op for an empty watchlist.
func (s *Scheduler) Register(spec string) error {
	if len(s.Symbols) == 0 {
		s.Log.Info("watchlist empty, scan not scheduled")
		return nil
	}
	if _, err := s.Cron.AddFunc(spec, s.ScanWatchlist); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	s.Log.Infof("watchlist scan scheduled (%s) for %s", spec, strings.Join(s.Symbols, ","))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// ScanWatchlist analyses every watchlist symbol and alerts on crossovers
// found on the newest bar.
func (s *Scheduler) ScanWatchlist() {
	s.scan.Lock()
	defer s.scan.Unlock()

	s.Log.Infof("running watchlist scan (%d symbols)", len(s.Symbols))
	for _, sym := range s.Symbols {
		if s.Ctx.Err() != nil {
			return
		}
		resp := s.Service.Run(s.Ctx, analysis.Request{Source: "watchlist", Symbol: sym, Range: string(s.Range)})
		if !resp.OK() {
			s.Log.Warnf("watchlist %s: %s", sym, resp.Status)
			continue
		}
		ev, ok := resp.Report.LatestBarEvent()
		if !ok {
			continue
		}
		s.alert(resp, ev.Side, ev.Time, ev.Close, notifier.FormatAlert(resp.Report, ev))
	}
}
