package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// EnvPrefix prefixes the environment overrides.
const EnvPrefix = "HTTPMSG_"

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// envOverrides lists the settings that environment variables can override.
// Nil fields are left alone.
type envOverrides struct {
	MaxRequestSize  *int64   `env:"MAX_REQUEST_SIZE"`
	MaxResponseSize *int64   `env:"MAX_RESPONSE_SIZE"`
	Version         *int     `env:"VERSION"`
	RandomBoundary  *bool    `env:"RANDOM_BOUNDARY"`
	LogLevel        *string  `env:"LOG_LEVEL"`
	LogFormat       *string  `env:"LOG_FORMAT"`
	TracingEnabled  *bool    `env:"TRACING_ENABLED"`
	OTLPEndpoint    *string  `env:"OTLP_ENDPOINT"`
	SamplingRate    *float64 `env:"SAMPLING_RATE"`
}

// LoadConfig reads, parses, overrides and validates the file at path.
func LoadConfig(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return parseConfig(data)
}

// LoadConfigFromReader is LoadConfig for an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return parseConfig(data)
}

// parseConfig fills DefaultConfig from YAML data and environment
// overrides, then validates the result.
func parseConfig(data []byte) (*Config, error) {
	content := substituteEnvVars(string(data))

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(content)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, util.NewConfigErrorWithCause("", "failed to parse YAML", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return util.NewConfigErrorWithCause("env", "failed to parse environment overrides", err)
	}

	if o.MaxRequestSize != nil {
		cfg.Limits.MaxRequestSize = *o.MaxRequestSize
	}
	if o.MaxResponseSize != nil {
		cfg.Limits.MaxResponseSize = *o.MaxResponseSize
	}
	if o.Version != nil {
		cfg.Version = *o.Version
	}
	if o.RandomBoundary != nil {
		cfg.Multipart.RandomBoundary = *o.RandomBoundary
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		cfg.Logging.Format = *o.LogFormat
	}
	if o.TracingEnabled != nil {
		cfg.Tracing.Enabled = *o.TracingEnabled
	}
	if o.OTLPEndpoint != nil {
		cfg.Tracing.OTLPEndpoint = *o.OTLPEndpoint
	}
	if o.SamplingRate != nil {
		cfg.Tracing.SamplingRate = *o.SamplingRate
	}
	return nil
}

// substituteEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values. "$$" yields a literal "$".
func substituteEnvVars(content string) string {
	content = strings.ReplaceAll(content, "$$", "\x00ESCAPED_DOLLAR\x00")

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultValue := ""
		if len(submatches) >= 3 {
			defaultValue = submatches[2]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return defaultValue
	})

	return strings.ReplaceAll(result, "\x00ESCAPED_DOLLAR\x00", "$")
}
