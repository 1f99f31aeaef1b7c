package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diillson/retail-admin-api/internal/infra/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIMetrics_IndependentRegistries(t *testing.T) {
	// registros separados: criar duas instâncias não pode entrar em pânico
	first := metrics.NewAPIMetrics()
	second := metrics.NewAPIMetrics()

	first.RequestStarted("/brands", http.MethodGet)
	first.RequestCompleted("/brands", http.MethodGet, "200", 10*time.Millisecond, 0, 128)
	first.AuthRejected("expired")

	count, err := testutil.GatherAndCount(first.Registry(), "retail_admin_requests_total", "retail_admin_auth_rejections_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(second.Registry(), "retail_admin_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAPIMetrics_Handler(t *testing.T) {
	m := metrics.NewAPIMetrics()
	m.RequestError("/users", http.MethodGet, "client_error")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `retail_admin_errors_total{error_type="client_error",method="GET",path="/users"} 1`)
}
