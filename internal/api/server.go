// Package api serves repayment plans over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/config"
	"github.com/Veraticus/snowball/internal/metrics"
	"github.com/Veraticus/snowball/internal/model"
	"github.com/Veraticus/snowball/internal/payoff"
)

// Routes served by the handler.
const (
	RouteSchedule = "/v1/schedule"
	RouteRank     = "/v1/rank"
	RouteHealth   = "/healthz"
	RouteMetrics  = "/metrics"
)

const maxBodyBytes = 1 << 20

// ScheduleRequest is the body of POST /v1/schedule. A zero horizon means
// config.DefaultHorizon.
type ScheduleRequest struct {
	CashFlow decimal.Decimal   `json:"cash_flow"`
	Debts    []model.DebtInput `json:"debts"`
	Horizon  int               `json:"horizon"`
}

// RankRequest is the body of POST /v1/rank.
type RankRequest struct {
	Debts []model.DebtInput `json:"debts"`
}

// RankResponse lists debts in payoff priority order.
type RankResponse struct {
	Ranked []model.Debt `json:"ranked"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errMethodNotAllowed = errors.New("method not allowed")

// Server holds the dependencies shared by every request.
type Server struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewServer constructs a server. A nil logger uses slog.Default.
func NewServer(m *metrics.Metrics, logger *slog.Logger) (*Server, error) {
	if m == nil {
		return nil, errors.New("api server: nil metrics")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{metrics: m, logger: logger}, nil
}

// Handler returns the routed handler with logging and metrics applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(RouteSchedule, s.instrument(RouteSchedule, s.handleSchedule))
	mux.Handle(RouteRank, s.instrument(RouteRank, s.handleRank))
	mux.Handle(RouteHealth, s.instrument(RouteHealth, s.handleHealth))
	mux.Handle(RouteMetrics, s.metrics.Handler())
	return mux
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}

	var req ScheduleRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Horizon == 0 {
		req.Horizon = config.DefaultHorizon
	}

	debts, err := buildDebts(req.Debts)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	plan, err := payoff.BuildPlan(debts, req.CashFlow, req.Horizon)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.ObservePlan(len(debts), plan.PayoffMonths, plan.PaidOff())

	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}

	var req RankRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	debts, err := buildDebts(req.Debts)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	respondJSON(w, http.StatusOK, RankResponse{Ranked: payoff.Rank(debts)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// buildDebts validates inputs. An empty list is a valid, already paid off plan.
func buildDebts(inputs []model.DebtInput) ([]model.Debt, error) {
	if len(inputs) == 0 {
		return []model.Debt{}, nil
	}
	return model.BuildDebts(inputs)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, ErrorResponse{Error: err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := time.Since(start)
		result := resultFor(rec.status)
		s.metrics.ObserveRequest(route, result, elapsed)

		level := slog.LevelInfo
		if result == metrics.ResultError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "Handled request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", elapsed)
	})
}

func resultFor(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return metrics.ResultError
	case status >= http.StatusBadRequest:
		return metrics.ResultInvalid
	default:
		return metrics.ResultSuccess
	}
}
