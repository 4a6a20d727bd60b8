package notifier

import (
	"fmt"
	"html"
	"strings"

	"SignalSentinel/internal/model"
)

// FormatReport formats an analysis result into a Telegram message.
func FormatReport(status string, r *model.Report) string {
	var b strings.Builder
	if r == nil {
		b.WriteString("❌ ")
		b.WriteString(html.EscapeString(status))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s → %s\n\n", html.EscapeString(r.Symbol), r.Start, r.End))
	b.WriteString(fmt.Sprintf("Last close: %.2f\n", r.LastClose))
	if v, ok := r.Short.At(r.Short.Len() - 1); ok {
		b.WriteString(fmt.Sprintf("MA%d: %.2f\n", r.ShortWindow, v))
	} else {
		b.WriteString(fmt.Sprintf("MA%d: n/a\n", r.ShortWindow))
	}
	if v, ok := r.Long.At(r.Long.Len() - 1); ok {
		b.WriteString(fmt.Sprintf("MA%d: %.2f\n", r.LongWindow, v))
	} else {
		b.WriteString(fmt.Sprintf("MA%d: n/a (need %d closes, have %d)\n", r.LongWindow, r.LongWindow, r.Series.Len()))
	}
	b.WriteString(fmt.Sprintf("Range: %.2f – %.2f (position %.0f%%)\n\n", r.PeriodLow, r.PeriodHigh, r.Position*100))

	buys, sells := r.Signals.Counts()
	b.WriteString(fmt.Sprintf("📈 <b>Signals:</b> %d buy / %d sell\n", buys, sells))
	events := r.Events
	if len(events) > 5 {
		events = events[len(events)-5:]
		b.WriteString("  (last 5)\n")
	}
	for _, ev := range events {
		b.WriteString(fmt.Sprintf("  %s %s @ %.2f\n", sideIcon(ev.Side), ev.Time.Format("2006-01-02"), ev.Close))
	}
	return b.String()
}

// FormatAlert formats a crossover on the newest bar of a watchlist symbol.
func FormatAlert(r *model.Report, ev model.CrossEvent) string {
	verb := "crossed above"
	if ev.Side == model.SideSell {
		verb = "crossed below"
	}
	return fmt.Sprintf("%s <b>%s signal: %s</b>\n\nMA%d %s MA%d on %s\nClose: %.2f",
		sideIcon(ev.Side), ev.Side, html.EscapeString(r.Symbol),
		r.ShortWindow, verb, r.LongWindow, ev.Time.Format("2006-01-02"), ev.Close)
}

// FormatHelp lists the bot commands.
func FormatHelp(ranges []string) string {
	return "Commands:\n" +
		"• /analyze SYMBOL [range]\n" +
		"• /analyze SYMBOL manual YYYY-MM-DD YYYY-MM-DD\n" +
		"• /watchlist\n" +
		"Ranges: " + strings.Join(ranges, ", ")
}

func sideIcon(s model.Side) string {
	if s == model.SideBuy {
		return "🟢"
	}
	return "🔴"
}
