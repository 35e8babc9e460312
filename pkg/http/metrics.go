package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/klwxsrx/deskbooking/pkg/metric"
)

func WithMetrics(metrics metric.Metrics) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			handler.ServeHTTP(w, r)
			result := getHandlerMetadata(r.Context())
			route := currentRouteName(r)

			if result.Panic != nil {
				metrics.With(metric.Labels{
					"route": route,
				}).Increment("http_api_request_panics_total")
			}

			metrics.With(metric.Labels{
				"route": route,
				"code":  strconv.Itoa(result.Code),
			}).Duration("http_api_request_duration_seconds", time.Since(started))
		})
	})
}

func WithMetricsHandler(path string, handler http.Handler) ServerOption {
	return WithPlainHandler(http.MethodGet, path, handler)
}
