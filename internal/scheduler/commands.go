package scheduler

import (
	"context"
	"strings"

	"SignalSentinel/internal/analysis"
	"SignalSentinel/internal/daterange"
	"SignalSentinel/internal/notifier"
)

// HandleCommand processes a user command and returns a reply.
//
//	/analyze SYMBOL [range]
//	/analyze SYMBOL manual START END
//	/watchlist
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp(daterange.LabelStrings())
	}
	switch strings.ToLower(fields[0]) {
	case "/analyze", "/a":
		req := analysis.Request{Source: "telegram", Range: string(s.DefaultRange)}
		if len(fields) > 1 {
			req.Symbol = fields[1]
		}
		if len(fields) > 2 {
			req.Range = fields[2]
		}
		if len(fields) > 3 {
			req.Start = fields[3]
		}
		if len(fields) > 4 {
			req.End = fields[4]
		}
		resp := s.Service.Run(ctx, req)
		return notifier.FormatReport(resp.Status, resp.Report)
	case "/watchlist":
		if len(s.Symbols) == 0 {
			return "Watchlist is empty."
		}
		return "Watchlist (" + string(s.Range) + "): " + strings.Join(s.Symbols, ", ")
	default:
		return notifier.FormatHelp(daterange.LabelStrings())
	}
}
