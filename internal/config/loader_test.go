package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/httpmsg/internal/util"
)

const sampleConfig = `
version: 10
limits:
  maxRequestSize: 4096
  maxResponseSize: 8192
multipart:
  boundary: sep
logging:
  level: debug
  format: json
routes:
  - name: glob_get
    method: GET
    pattern: /glob/<*everything>
    handler: echo
  - name: object_attribute_format_get
    method: get
    pattern: /test/<id>/<attribute>.<format>
    handler: params
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "httpmsg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Version)
	assert.Equal(t, int64(4096), cfg.Limits.MaxRequestSize)
	assert.Equal(t, int64(8192), cfg.Limits.MaxResponseSize)
	assert.Equal(t, "sep", cfg.Multipart.Boundary)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Unset sections keep their defaults.
	assert.Equal(t, "httpmsg", cfg.Tracing.ServiceName)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, Route{Name: "glob_get", Method: "GET", Pattern: "/glob/<*everything>", Handler: "echo"}, cfg.Routes[0])
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed yaml", content: "limits: [", wantErr: util.ErrConfigInvalid},
		{name: "unknown field", content: "bogus: 1\n", wantErr: util.ErrConfigInvalid},
		{name: "bad version", content: "version: 12\n", wantErr: util.ErrConfigInvalid},
		{name: "negative limit", content: "limits:\n  maxRequestSize: -1\n", wantErr: util.ErrConfigInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadConfigFromReader_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Limits, cfg.Limits)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("HTTPMSG_TEST_HOST", "collector:4317")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "set variable", input: "endpoint: ${HTTPMSG_TEST_HOST}", want: "endpoint: collector:4317"},
		{name: "set variable ignores default", input: "${HTTPMSG_TEST_HOST:-x}", want: "collector:4317"},
		{name: "unset with default", input: "${HTTPMSG_TEST_UNSET:-fallback}", want: "fallback"},
		{name: "unset without default", input: "a${HTTPMSG_TEST_UNSET}b", want: "ab"},
		{name: "escaped dollar", input: "price: $$5", want: "price: $5"},
		{name: "no pattern", input: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, substituteEnvVars(tt.input))
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTPMSG_MAX_REQUEST_SIZE", "123")
	t.Setenv("HTTPMSG_LOG_LEVEL", "error")
	t.Setenv("HTTPMSG_TRACING_ENABLED", "true")
	t.Setenv("HTTPMSG_SAMPLING_RATE", "0.25")
	t.Setenv("HTTPMSG_TEST_LEVEL", "info")

	cfg, err := LoadConfig(writeConfig(t, "logging:\n  level: ${HTTPMSG_TEST_LEVEL}\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(123), cfg.Limits.MaxRequestSize)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.True(t, cfg.Tracing.Enabled)
	assert.InDelta(t, 0.25, cfg.Tracing.SamplingRate, 1e-9)
}

func TestLoadConfig_BadEnvOverride(t *testing.T) {
	t.Setenv("HTTPMSG_MAX_RESPONSE_SIZE", "lots")

	_, err := LoadConfigFromReader(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrConfigInvalid)
}

func TestLoadConfig_ShippedExample(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "httpmsg.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Routes, 5)
	assert.Equal(t, "root_path", cfg.Routes[4].Name)
}
