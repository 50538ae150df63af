// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SwapTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillswap",
		Name:      "swap_transitions_total",
		Help:      "Swap records entering each status.",
	}, []string{"status"})

	HelpPointsTransferred = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skillswap",
		Name:      "helppoints_transferred_total",
		Help:      "HelpPoints moved from receivers to providers.",
	})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillswap",
		Name:      "notifications_total",
		Help:      "Meeting notifications by outcome.",
	}, []string{"result"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skillswap",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request latency labelled by the chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		httpDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
