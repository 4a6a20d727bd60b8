package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"SignalSentinel/internal/logging"
	"SignalSentinel/internal/model"
)

type fakeTelegram struct {
	mu       sync.Mutex
	sent     []map[string]string
	failSend bool
	updates  int
}

func (f *fakeTelegram) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/botTOKEN/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failSend {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		f.sent = append(f.sent, payload)
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/botTOKEN/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.updates++
		first := f.updates == 1
		f.mu.Unlock()
		if first {
			w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /help "}},{"update_id":8}]}`))
			return
		}
		if r.URL.Query().Get("offset") != "9" {
			w.Write([]byte(`{"ok":false}`))
			return
		}
		w.Write([]byte(`{"ok":true,"result":[]}`))
	})
	return mux
}

func (f *fakeTelegram) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.sent {
		out = append(out, p["text"])
	}
	return out
}

func newTestNotifier(t *testing.T, fake *fakeTelegram) *TelegramNotifier {
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("TOKEN", "42", "", logging.Nop())
	n.APIBase = srv.URL
	return n
}

func TestSend(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)
	if err := n.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(fake.sent) != 1 || fake.sent[0]["chat_id"] != "42" || fake.sent[0]["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %+v", fake.sent)
	}
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	fake := &fakeTelegram{failSend: true}
	n := newTestNotifier(t, fake)
	err := n.SendWithRetry(context.Background(), "hello", 0)
	if err == nil || !strings.Contains(err.Error(), "retries exhausted") {
		t.Errorf("expected exhausted error, got %v", err)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	fake := &fakeTelegram{failSend: true}
	n := newTestNotifier(t, fake)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := n.SendWithRetry(ctx, "hello", 3); err == nil {
		t.Error("expected error after cancellation")
	}
}

func TestStartPolling(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var got []string
	go func() {
		defer close(done)
		n.StartPolling(ctx, func(_ context.Context, cmd string) string {
			got = append(got, cmd)
			cancel()
			return "reply to " + cmd
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("polling did not stop")
	}
	if len(got) != 1 || got[0] != "/help" {
		t.Errorf("expected one trimmed /help command, got %v", got)
	}
}

func testReport() *model.Report {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	return &model.Report{
		Symbol: "AAPL", Start: "2023-07-03", End: "2024-01-01",
		ShortWindow: 20, LongWindow: 50,
		Series:     model.PriceSeries{Points: []model.PricePoint{{Time: day, Close: 190}}},
		Short:      model.MovingAverage{Values: []float64{188}, Defined: []bool{true}},
		Long:       model.MovingAverage{Values: []float64{0}, Defined: []bool{false}},
		Signals:    model.SignalSeries{Buy: []bool{false}, Sell: []bool{false}},
		Events:     []model.CrossEvent{{Index: 0, Time: day, Close: 190, Side: model.SideBuy}},
		PeriodHigh: 190, PeriodLow: 150, LastClose: 190, Position: 1,
	}
}

func TestFormatReport(t *testing.T) {
	msg := FormatReport("ok", testReport())
	for _, want := range []string{"AAPL", "2023-07-03", "MA20: 188.00", "MA50: n/a", "🟢 2024-01-05 @ 190.00"} {
		if !strings.Contains(msg, want) {
			t.Errorf("report message missing %q:\n%s", want, msg)
		}
	}
	fail := FormatReport("Start date cannot be after end date.", nil)
	if !strings.HasPrefix(fail, "❌") {
		t.Errorf("unexpected failure message %q", fail)
	}
}

func TestFormatAlert(t *testing.T) {
	r := testReport()
	msg := FormatAlert(r, model.CrossEvent{Time: r.Series.Points[0].Time, Close: 190, Side: model.SideSell})
	if !strings.Contains(msg, "SELL signal: AAPL") || !strings.Contains(msg, "MA20 crossed below MA50") {
		t.Errorf("unexpected alert %q", msg)
	}
}
