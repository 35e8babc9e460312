package metric_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/deskbooking/pkg/metric"
)

func TestPrometheusMetrics_Increment(t *testing.T) {
	registry := metric.NewPrometheusRegistry("test")
	metrics := registry.Metrics()

	metrics.WithLabel("reason", "revoked").Increment("rejections_total")
	metrics.WithLabel("reason", "revoked").Increment("rejections_total")
	metrics.WithLabel("reason", "invalid").Increment("rejections_total")

	expected := `
# HELP test_rejections_total rejections_total
# TYPE test_rejections_total counter
test_rejections_total{reason="invalid"} 1
test_rejections_total{reason="revoked"} 2
`
	err := testutil.GatherAndCompare(registry.Gatherer(), strings.NewReader(expected), "test_rejections_total")
	require.NoError(t, err)
}

func TestPrometheusMetrics_UnknownLabelsAreDropped(t *testing.T) {
	registry := metric.NewPrometheusRegistry("test")
	metrics := registry.Metrics()

	metrics.WithLabel("code", "200").Duration("request_duration_seconds", time.Millisecond)
	assert.NotPanics(t, func() {
		metrics.With(metric.Labels{"code": "500", "path": "/users"}).Duration("request_duration_seconds", time.Second)
	})

	count, err := testutil.GatherAndCount(registry.Gatherer(), "test_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
