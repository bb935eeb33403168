// Package observability provides logging, metrics export and tracing for
// the httpmsg tools.
//
// # Logging
//
// The Logger interface wraps zap:
//
//	logger, err := observability.NewLogger(observability.LogConfig{
//	    Level:  "debug",
//	    Format: "console",
//	    Output: "stderr",
//	})
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = logger.Sync() }()
//
//	logger.Debug("message parsed",
//	    observability.String("method", "GET"),
//	    observability.Int("body_bytes", 42),
//	)
//
// Library packages accept a Logger through functional options and fall
// back to NopLogger.
//
// # Metrics
//
// The parser and router register Prometheus collectors with the default
// registry. WriteMetrics dumps any gatherer in the text exposition format.
//
// # Tracing
//
// NewTracer configures an OpenTelemetry tracer provider. When an OTLP
// endpoint is set, spans are exported over gRPC; a disabled tracer hands
// out no-op spans.
package observability
