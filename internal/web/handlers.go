// Package web is the HTTP presentation surface of the analysis service.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"SignalSentinel/internal/analysis"
	"SignalSentinel/internal/daterange"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
)

// Handler serves analysis requests over HTTP.
type Handler struct {
	service      *analysis.Service
	log          *zap.SugaredLogger
	defaultRange daterange.Label
}

func NewHandler(svc *analysis.Service, log *zap.SugaredLogger, defaultRange daterange.Label) *Handler {
	return &Handler{service: svc, log: log, defaultRange: defaultRange}
}

// Routes returns the mux with every endpoint registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/analysis", h.GetAnalysis)
	mux.HandleFunc("GET /api/ranges", h.GetRanges)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

type pointView struct {
	Time  string   `json:"time"`
	Close float64  `json:"close"`
	Short *float64 `json:"short"`
	Long  *float64 `json:"long"`
	Buy   bool     `json:"buy"`
	Sell  bool     `json:"sell"`
}

type eventView struct {
	Time  string  `json:"time"`
	Close float64 `json:"close"`
	Side  string  `json:"side"`
}

type reportView struct {
	Symbol      string      `json:"symbol"`
	Start       string      `json:"start"`
	End         string      `json:"end"`
	ShortWindow int         `json:"short_window"`
	LongWindow  int         `json:"long_window"`
	Points      []pointView `json:"points"`
	Events      []eventView `json:"events"`
	PeriodHigh  float64     `json:"period_high"`
	PeriodLow   float64     `json:"period_low"`
	LastClose   float64     `json:"last_close"`
	Position    float64     `json:"position"`
}

type analysisResponse struct {
	OK      bool        `json:"ok"`
	Status  string      `json:"status"`
	Outcome string      `json:"outcome"`
	Report  *reportView `json:"report,omitempty"`
}

// GetAnalysis runs one analysis:
// /api/analysis?symbol=MSFT&range=1-year
// /api/analysis?symbol=MSFT&range=manual&start=2024-01-01&end=2024-06-01&short=10&long=30
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := analysis.Request{
		Source: "http",
		Symbol: q.Get("symbol"),
		Range:  q.Get("range"),
		Start:  q.Get("start"),
		End:    q.Get("end"),
	}
	if req.Range == "" {
		req.Range = string(h.defaultRange)
	}
	var err error
	if req.ShortWindow, err = optionalInt(q.Get("short")); err != nil {
		h.badWindow(w, "short", err)
		return
	}
	if req.LongWindow, err = optionalInt(q.Get("long")); err != nil {
		h.badWindow(w, "long", err)
		return
	}

	resp := h.service.Run(r.Context(), req)
	out := analysisResponse{OK: resp.OK(), Status: resp.Status, Outcome: analysis.Outcome(resp.Err)}
	if resp.Report != nil {
		out.Report = toView(resp.Report)
	}
	sendJSON(w, statusCode(out.Outcome), out)
}

// GetRanges lists the accepted range labels.
func (h *Handler) GetRanges(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]any{
		"ranges":  daterange.LabelStrings(),
		"default": string(h.defaultRange),
	})
}

func (h *Handler) badWindow(w http.ResponseWriter, name string, err error) {
	status := fmt.Sprintf("Window %q must be an integer: %v", name, err)
	sendJSON(w, http.StatusBadRequest, analysisResponse{Status: status, Outcome: analysis.OutcomeInvalidWindows})
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func statusCode(outcome string) int {
	switch outcome {
	case analysis.OutcomeOK:
		return http.StatusOK
	case analysis.OutcomeNoData:
		return http.StatusNotFound
	case analysis.OutcomeProviderFailure:
		return http.StatusBadGateway
	case analysis.OutcomeError:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func toView(r *model.Report) *reportView {
	v := &reportView{
		Symbol:      r.Symbol,
		Start:       r.Start,
		End:         r.End,
		ShortWindow: r.ShortWindow,
		LongWindow:  r.LongWindow,
		Points:      make([]pointView, r.Series.Len()),
		Events:      make([]eventView, 0, len(r.Events)),
		PeriodHigh:  r.PeriodHigh,
		PeriodLow:   r.PeriodLow,
		LastClose:   r.LastClose,
		Position:    r.Position,
	}
	short := r.Short.Nullable()
	long := r.Long.Nullable()
	for i, p := range r.Series.Points {
		v.Points[i] = pointView{
			Time:  p.Time.Format(time.DateOnly),
			Close: p.Close,
			Short: short[i],
			Long:  long[i],
			Buy:   r.Signals.Buy[i],
			Sell:  r.Signals.Sell[i],
		}
	}
	for _, ev := range r.Events {
		v.Events = append(v.Events, eventView{Time: ev.Time.Format(time.DateOnly), Close: ev.Close, Side: string(ev.Side)})
	}
	return v
}

func sendJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
