package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesCollectors(t *testing.T) {
	AnalysesTotal.WithLabelValues("test", "ok").Inc()
	CrossoversTotal.WithLabelValues("BUY").Add(2)
	FetchSeconds.WithLabelValues("mock").Observe(0.1)
	AlertsTotal.WithLabelValues("AAPL", "BUY").Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, name := range []string{"sentinel_analyses_total", "sentinel_crossovers_total", "sentinel_fetch_seconds", "sentinel_alerts_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("expected %s in scrape output", name)
		}
	}
}
