package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/snowball/internal/metrics"
)

func newTestServer(t *testing.T) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	s, err := NewServer(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, m
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestNewServer_NilMetrics(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)
}

func TestSchedule(t *testing.T) {
	ts, m := newTestServer(t)

	resp, body := post(t, ts.URL+RouteSchedule, `{
		"cash_flow": 0,
		"horizon": 12,
		"debts": [
			{"creditor": "D2", "balance": 1000, "limit": 0, "min_payment": 20},
			{"creditor": "D1", "balance": 500, "limit": 1000, "min_payment": 50}
		]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var plan struct {
		Schedule struct {
			Entries []struct {
				Creditor string `json:"creditor"`
				Payment  string `json:"payment"`
				Month    int    `json:"month"`
			} `json:"entries"`
			MonthsElapsed int  `json:"months_elapsed"`
			PaidOff       bool `json:"paid_off"`
		} `json:"schedule"`
		Ranked []struct {
			Creditor string `json:"creditor"`
		} `json:"ranked"`
		PayoffMonths int `json:"payoff_months"`
	}
	require.NoError(t, json.Unmarshal(body, &plan))

	assert.Equal(t, 12, plan.Schedule.MonthsElapsed)
	assert.False(t, plan.Schedule.PaidOff)
	assert.Equal(t, 22, plan.PayoffMonths)
	require.Len(t, plan.Ranked, 2)
	assert.Equal(t, "D1", plan.Ranked[0].Creditor)
	require.Len(t, plan.Schedule.Entries, 24)
	assert.Equal(t, "D2", plan.Schedule.Entries[21].Creditor)
	assert.Equal(t, "70", plan.Schedule.Entries[21].Payment)

	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(RouteSchedule, metrics.ResultSuccess)), 0)
}

func TestSchedule_DefaultHorizonAndEmptyDebts(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := post(t, ts.URL+RouteSchedule, `{"cash_flow": "250", "debts": []}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var plan struct {
		Horizon      int `json:"horizon"`
		PayoffMonths int `json:"payoff_months"`
	}
	require.NoError(t, json.Unmarshal(body, &plan))
	assert.Equal(t, 60, plan.Horizon)
	assert.Zero(t, plan.PayoffMonths)
}

func TestSchedule_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "malformed json",
			body:    `{"cash_flow":`,
			wantErr: "invalid json",
		},
		{
			name:    "unknown field",
			body:    `{"cashflow": 10}`,
			wantErr: "invalid json",
		},
		{
			name:    "negative cash flow",
			body:    `{"cash_flow": -5, "debts": [{"creditor": "A", "balance": 10, "min_payment": 1}]}`,
			wantErr: "cash flow cannot be negative",
		},
		{
			name:    "horizon too long",
			body:    `{"cash_flow": 5, "horizon": 5000, "debts": [{"creditor": "A", "balance": 10, "min_payment": 1}]}`,
			wantErr: "horizon must be between 1 and 1200 months",
		},
		{
			name:    "invalid debt",
			body:    `{"cash_flow": 5, "debts": [{"creditor": "", "balance": 10, "min_payment": 1}]}`,
			wantErr: "debt 1: invalid input: creditor name cannot be empty",
		},
	}

	ts, m := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts.URL+RouteSchedule, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.Contains(t, errResp.Error, tt.wantErr)
		})
	}
	assert.InDelta(t, len(tests), testutil.ToFloat64(m.RequestsTotal.WithLabelValues(RouteSchedule, metrics.ResultInvalid)), 0)
}

func TestRank(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := post(t, ts.URL+RouteRank, `{"debts": [
		{"creditor": "Low", "balance": 1000, "min_payment": 10},
		{"creditor": "High", "balance": 100, "min_payment": 50},
		{"creditor": "Paid", "balance": 0, "min_payment": 0}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var ranked struct {
		Ranked []struct {
			Creditor string `json:"creditor"`
		} `json:"ranked"`
	}
	require.NoError(t, json.Unmarshal(body, &ranked))
	require.Len(t, ranked.Ranked, 3)
	assert.Equal(t, "High", ranked.Ranked[0].Creditor)
	assert.Equal(t, "Low", ranked.Ranked[1].Creditor)
	assert.Equal(t, "Paid", ranked.Ranked[2].Creditor)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, route := range []string{RouteSchedule, RouteRank} {
		resp, err := http.Get(ts.URL + route)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, route)
	}

	resp, _ := post(t, ts.URL+RouteHealth, "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + RouteHealth)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + RouteMetrics)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `snowball_api_requests_total{result="success",route="/healthz"} 1`)
}
