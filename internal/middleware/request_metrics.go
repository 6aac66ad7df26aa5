package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/liftlog/liftlog/internal/telemetry/metrics"
)

// statusRecorder remembers the status code written by the handler chain.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func RequestMetrics(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			metricsManager.GaugeRequests.Inc()
			start := time.Now()

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			metricsManager.GaugeRequests.Dec()

			statusCode := strconv.Itoa(recorder.statusCode)
			metricsManager.HistogramRequestDuration.
				With(prometheus.Labels{
					"method":      r.Method,
					"status_code": statusCode,
				}).
				Observe(duration.Seconds())
			metricsManager.CounterRequests.
				With(prometheus.Labels{
					"method": r.Method,
					"status": statusCode,
				}).
				Inc()
		})
	}
}
