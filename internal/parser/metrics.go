package parser

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// parserMetrics contains Prometheus metrics for the parser.
type parserMetrics struct {
	messages  *prometheus.CounterVec
	errors    *prometheus.CounterVec
	bodyBytes *prometheus.HistogramVec
}

var (
	parserMetricsInstance *parserMetrics
	parserMetricsOnce     sync.Once
)

// getParserMetrics returns the singleton parser metrics instance.
func getParserMetrics() *parserMetrics {
	parserMetricsOnce.Do(func() {
		parserMetricsInstance = &parserMetrics{
			messages: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "httpmsg",
					Subsystem: "parser",
					Name:      "messages_total",
					Help:      "Total number of messages parsed to completion",
				},
				[]string{"kind"},
			),
			errors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "httpmsg",
					Subsystem: "parser",
					Name:      "errors_total",
					Help:      "Total number of parse failures by reason",
				},
				[]string{"reason"},
			),
			bodyBytes: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "httpmsg",
					Subsystem: "parser",
					Name:      "body_bytes",
					Help:      "Size of finalized message bodies in bytes",
					Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
				},
				[]string{"kind"},
			),
		}
	})
	return parserMetricsInstance
}
