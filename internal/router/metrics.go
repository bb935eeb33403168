package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routerMetrics contains Prometheus metrics for route tables.
type routerMetrics struct {
	matches *prometheus.CounterVec
	misses  prometheus.Counter
	routes  prometheus.Gauge
}

var (
	routerMetricsInstance *routerMetrics
	routerMetricsOnce     sync.Once
)

// getRouterMetrics returns the singleton router metrics instance.
func getRouterMetrics() *routerMetrics {
	routerMetricsOnce.Do(func() {
		routerMetricsInstance = &routerMetrics{
			matches: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "httpmsg",
					Subsystem: "router",
					Name:      "matches_total",
					Help:      "Total number of requests matched, by route name",
				},
				[]string{"route"},
			),
			misses: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "httpmsg",
					Subsystem: "router",
					Name:      "misses_total",
					Help:      "Total number of requests that matched no route",
				},
			),
			routes: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "httpmsg",
					Subsystem: "router",
					Name:      "routes",
					Help:      "Number of routes in the most recently modified table",
				},
			),
		}
	})
	return routerMetricsInstance
}
