package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SignalSentinel/internal/model"
)

var (
	jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan8 = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
)

func TestYahooFetcher_FetchCloses(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		// second bar is null, fourth is out of order
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1704153600,1704240000,1704326400,1704067200],
			"indicators":{"quote":[{"close":[101.5,null,103.25,100]}]}}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	series, err := f.FetchCloses(context.Background(), "SPX", jan1, jan8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v8/finance/chart/^GSPC" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotQuery, "period1=1704067200") || !strings.Contains(gotQuery, "period2=1704672000") {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if series.Symbol != "SPX" {
		t.Errorf("expected symbol SPX, got %s", series.Symbol)
	}
	want := []float64{100, 101.5, 103.25}
	closes := series.Closes()
	if len(closes) != len(want) {
		t.Fatalf("expected %d closes, got %v", len(want), closes)
	}
	for i := range want {
		if closes[i] != want[i] {
			t.Errorf("close %d: expected %v, got %v", i, want[i], closes[i])
		}
	}
	if err := series.Validate(); err != nil {
		t.Errorf("series should be valid: %v", err)
	}
}

func TestYahooFetcher_EmptyRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{}]}}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	series, err := f.FetchCloses(context.Background(), "MSFT", jan1, jan8)
	if err != nil {
		t.Fatalf("empty range must not be an error, got %v", err)
	}
	if !series.Empty() {
		t.Errorf("expected empty series, got %d points", series.Len())
	}
}

func TestYahooFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchCloses(context.Background(), "NOPE", jan1, jan8)
	if err == nil {
		t.Fatal("expected error for unknown symbol")
	}
	if !strings.Contains(err.Error(), "delisted") {
		t.Errorf("expected provider description in error, got %v", err)
	}
}

func TestYahooFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	if _, err := f.FetchCloses(context.Background(), "MSFT", jan1, jan8); err == nil {
		t.Fatal("expected error for 502")
	}
}

func TestVsTraderFetcher_FetchCloses(t *testing.T) {
	var auth, symbol string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		symbol = r.URL.Query().Get("symbol")
		// last bar falls on the exclusive end date
		w.Write([]byte(`[{"timestamp":1704153600,"close":11},{"timestamp":1704067200,"close":10},{"timestamp":1704672000,"close":12}]`))
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "secret", "")
	series, err := f.FetchCloses(context.Background(), "AAPL", jan1, jan8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("unexpected auth header %q", auth)
	}
	if symbol != "AAPL" {
		t.Errorf("unexpected symbol %q", symbol)
	}
	closes := series.Closes()
	if len(closes) != 2 || closes[0] != 10 || closes[1] != 11 {
		t.Errorf("unexpected closes %v", closes)
	}
}

func TestNormalize(t *testing.T) {
	points := []model.PricePoint{
		{Time: jan8, Close: 3},
		{Time: jan1, Close: 1},
		{Time: jan1, Close: 2},
		{Time: jan1.AddDate(0, 0, 2), Close: 0},
	}
	got := normalize(points)
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %+v", got)
	}
	if got[0].Close != 2 || got[1].Close != 3 {
		t.Errorf("unexpected points %+v", got)
	}
}

func TestMockFetcher(t *testing.T) {
	m := &MockFetcher{Price: 100}
	series, err := m.FetchCloses(context.Background(), "X", jan1, jan8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Jan 1-5 2024 are weekdays, Jan 6-7 weekend
	if series.Len() != 5 {
		t.Errorf("expected 5 weekday points, got %d", series.Len())
	}
	if len(m.Calls) != 1 || m.Calls[0].Symbol != "X" {
		t.Errorf("unexpected calls %+v", m.Calls)
	}

	boom := errors.New("boom")
	m = &MockFetcher{Err: boom}
	if _, err := m.FetchCloses(context.Background(), "X", jan1, jan8); !errors.Is(err, boom) {
		t.Errorf("expected configured error, got %v", err)
	}
}
