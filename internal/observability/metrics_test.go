package observability

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "httpmsg",
		Name:      "test_total",
		Help:      "Test counter",
	})
	reg.MustRegister(counter)
	counter.Add(3)

	var buf bytes.Buffer
	require.NoError(t, WriteMetrics(&buf, reg))

	out := buf.String()
	assert.Contains(t, out, "# HELP httpmsg_test_total Test counter")
	assert.Contains(t, out, "# TYPE httpmsg_test_total counter")
	assert.Contains(t, out, "httpmsg_test_total 3")
}

func TestWriteMetrics_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMetrics(&buf, prometheus.NewRegistry()))
	assert.Empty(t, buf.String())
}
