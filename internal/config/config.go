package config

import (
	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/observability"
)

// Config is the root configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Limits    LimitsConfig    `yaml:"limits"`
	Multipart MultipartConfig `yaml:"multipart"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Routes    []Route         `yaml:"routes"`
}

// LimitsConfig holds body size ceilings in bytes.
type LimitsConfig struct {
	MaxRequestSize  int64 `yaml:"maxRequestSize"`
	MaxResponseSize int64 `yaml:"maxResponseSize"`
}

// MultipartConfig selects the multipart boundary policy.
type MultipartConfig struct {
	Boundary       string `yaml:"boundary"`
	RandomBoundary bool   `yaml:"randomBoundary"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	ServiceName  string  `yaml:"serviceName"`
	OTLPEndpoint string  `yaml:"otlpEndpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}

// Route binds a pattern to a named handler.
type Route struct {
	Name    string `yaml:"name"`
	Method  string `yaml:"method"`
	Pattern string `yaml:"pattern"`
	Handler string `yaml:"handler"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	logCfg := observability.DefaultLogConfig()
	return &Config{
		Version: int(message.Version11),
		Limits: LimitsConfig{
			MaxRequestSize:  message.DefaultMaxRequestSize,
			MaxResponseSize: message.DefaultMaxResponseSize,
		},
		Multipart: MultipartConfig{
			Boundary: message.DefaultBoundary,
		},
		Logging: LoggingConfig{
			Level:  logCfg.Level,
			Format: logCfg.Format,
			Output: logCfg.Output,
		},
		Tracing: TracingConfig{
			ServiceName:  "httpmsg",
			SamplingRate: 1.0,
		},
	}
}

// MessageOptions returns the message options implied by c.
func (c *Config) MessageOptions() []message.Option {
	opts := []message.Option{
		message.WithVersion(message.Version(c.Version)),
		message.WithMaxRequestSize(c.Limits.MaxRequestSize),
		message.WithMaxResponseSize(c.Limits.MaxResponseSize),
	}
	if c.Multipart.RandomBoundary {
		opts = append(opts, message.WithRandomBoundary())
	} else if c.Multipart.Boundary != "" {
		opts = append(opts, message.WithBoundary(c.Multipart.Boundary))
	}
	return opts
}

// LogConfig converts the logging section.
func (c *Config) LogConfig() observability.LogConfig {
	return observability.LogConfig{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}

// TracerConfig converts the tracing section.
func (c *Config) TracerConfig() observability.TracerConfig {
	return observability.TracerConfig{
		Enabled:      c.Tracing.Enabled,
		ServiceName:  c.Tracing.ServiceName,
		OTLPEndpoint: c.Tracing.OTLPEndpoint,
		SamplingRate: c.Tracing.SamplingRate,
	}
}
