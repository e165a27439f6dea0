package metric_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-storefront/pkg/metric"
)

func TestPrometheus_Increment(t *testing.T) {
	metrics := metric.NewPrometheus("storefront")

	metrics.WithLabel("result", "success").Increment("session_refresh_total")
	metrics.WithLabel("result", "success").Increment("session_refresh_total")
	metrics.WithLabel("result", "failure").Increment("session_refresh_total")

	count, err := testutil.GatherAndCount(metrics.Registry(), "storefront_session_refresh_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	var total float64
	for _, m := range families[0].GetMetric() {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), total)
}

func TestPrometheus_DropsInconsistentLabels(t *testing.T) {
	metrics := metric.NewPrometheus("storefront")

	metrics.WithLabel("code", "200").Duration("http_client_request_duration_seconds", time.Millisecond)
	metrics.With(metric.Labels{"code": "200", "extra": "x"}).Duration("http_client_request_duration_seconds", time.Millisecond)

	count, err := testutil.GatherAndCount(metrics.Registry(), "storefront_http_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheus_Handler(t *testing.T) {
	metrics := metric.NewPrometheus("storefront")
	metrics.WithLabel("result", "success").Increment("session_refresh_total")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_session_refresh_total{result="success"} 1`)
}
