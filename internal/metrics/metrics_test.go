package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("/v1/schedule", ResultSuccess, 10*time.Millisecond)
	m.ObserveRequest("/v1/schedule", ResultSuccess, 20*time.Millisecond)
	m.ObserveRequest("/v1/schedule", ResultInvalid, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/v1/schedule", ResultSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/v1/schedule", ResultInvalid)), 0)
}

func TestObservePlan(t *testing.T) {
	m := New()
	m.ObservePlan(2, 22, true)
	m.ObservePlan(1, 0, false)

	assert.InDelta(t, 1, testutil.ToFloat64(m.UnpayablePlans), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ScheduleMonths))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("/v1/rank", ResultSuccess, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `snowball_api_requests_total{result="success",route="/v1/rank"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveRequest("/healthz", ResultSuccess, 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.RequestsTotal.WithLabelValues("/healthz", ResultSuccess)), 0)
}
