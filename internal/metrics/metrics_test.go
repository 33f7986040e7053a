package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	t.Parallel()
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/projects", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/projects", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/tasks", http.StatusBadRequest, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/projects", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/tasks", "400")))
}

func TestCounters(t *testing.T) {
	t.Parallel()
	m := New()

	m.AddCounterRepairs(0)
	m.AddCounterRepairs(3)
	m.IncStoreUnavailable()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.counterRepairs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeFailures))
}

func TestHandler_ServesRegistry(t *testing.T) {
	t.Parallel()
	m := New()
	m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "flowboard_http_requests_total"), "missing request counter")
	assert.True(t, strings.Contains(body, "go_goroutines"), "missing runtime collector")
}
