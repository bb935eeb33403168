package config

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// Validator collects configuration problems.
type Validator struct {
	err *util.ValidationError
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{err: util.NewValidationError("invalid configuration")}
}

// ValidateConfig validates cfg and returns a *util.ValidationError listing
// every problem, or nil.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates cfg.
func (v *Validator) Validate(cfg *Config) error {
	if cfg == nil {
		v.err.AddField("config", "configuration is nil")
		return v.err
	}

	v.validateMessage(cfg)
	v.validateLogging(&cfg.Logging)
	v.validateTracing(&cfg.Tracing)
	v.validateRoutes(cfg.Routes)

	if v.err.HasErrors() {
		return v.err
	}
	return nil
}

func (v *Validator) validateMessage(cfg *Config) {
	if !message.Version(cfg.Version).Valid() {
		v.err.AddField("version", fmt.Sprintf("must be 9, 10 or 11, got %d", cfg.Version))
	}
	if cfg.Limits.MaxRequestSize <= 0 {
		v.err.AddField("limits.maxRequestSize", "must be positive")
	}
	if cfg.Limits.MaxResponseSize <= 0 {
		v.err.AddField("limits.maxResponseSize", "must be positive")
	}
	if b := cfg.Multipart.Boundary; b != "" && strings.ContainsAny(b, " \t\r\n\"") {
		v.err.AddField("multipart.boundary", "must not contain whitespace or quotes")
	}
}

func (v *Validator) validateLogging(l *LoggingConfig) {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		v.err.AddField("logging.level", "must be debug, info, warn or error")
	}
	switch l.Format {
	case "", "json", "console":
	default:
		v.err.AddField("logging.format", "must be json or console")
	}
	switch l.Output {
	case "", "stdout", "stderr":
	default:
		v.err.AddField("logging.output", "must be stdout or stderr")
	}
}

func (v *Validator) validateTracing(t *TracingConfig) {
	if t.SamplingRate < 0 || t.SamplingRate > 1 {
		v.err.AddField("tracing.samplingRate", "must be between 0 and 1")
	}
	if t.Enabled {
		if err := util.ValidateNonEmpty(t.ServiceName, "serviceName"); err != nil {
			v.err.AddField("tracing.serviceName", err.Error())
		}
	}
}

func (v *Validator) validateRoutes(routes []Route) {
	names := make(map[string]bool, len(routes))
	for i, r := range routes {
		path := fmt.Sprintf("routes[%d]", i)

		if err := util.ValidateNonEmpty(r.Name, "name"); err != nil {
			v.err.AddField(path+".name", err.Error())
		} else if names[r.Name] {
			v.err.AddField(path+".name", "duplicate route name "+r.Name)
		}
		names[r.Name] = true

		if r.Method != "" {
			if err := util.ValidateHTTPMethod(r.Method); err != nil {
				v.err.AddField(path+".method", err.Error())
			}
		}
		if !strings.HasPrefix(r.Pattern, "/") {
			v.err.AddField(path+".pattern", "must start with /")
		}
		if err := util.ValidateNonEmpty(r.Handler, "handler"); err != nil {
			v.err.AddField(path+".handler", err.Error())
		}
	}
}
