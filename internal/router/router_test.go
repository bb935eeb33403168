package router

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// hit records the name of the route whose handler ran.
type hit struct {
	names []string
}

func (h *hit) handler(ctx context.Context, req, resp *message.Message) error {
	h.names = append(h.names, req.RouteName)
	return nil
}

func newFixture(t *testing.T) (*Table, *hit) {
	t.Helper()

	h := &hit{}
	tbl := New(WithMetrics(false))
	require.NoError(t, tbl.Get("/glob/<*everything>", h.handler, "glob_get"))
	require.NoError(t, tbl.Get("/test/<object>/<attribute>.<format>", h.handler, "object_attribute_format_get"))
	require.NoError(t, tbl.Patch("/test/<object>/<attribute>.<format>", h.handler, "object_attribute_format_update"))
	require.NoError(t, tbl.Get("/test", h.handler, "test_index"))
	require.NoError(t, tbl.Get("/", h.handler, "root_path"))
	return tbl, h
}

func newRequest(t *testing.T, method, rawURL string) *message.Message {
	t.Helper()

	req := message.NewRequest()
	require.NoError(t, req.Setup(method, rawURL))
	return req
}

func TestTable_Route(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		url        string
		wantRoute  string
		wantParams message.Values
	}{
		{
			name:       "root",
			method:     "get",
			url:        "http://test.org/",
			wantRoute:  "root_path",
			wantParams: message.Values{},
		},
		{
			name:       "literal",
			method:     "GET",
			url:        "http://test.org/test",
			wantRoute:  "test_index",
			wantParams: message.Values{},
		},
		{
			name:      "object attribute format",
			method:    "get",
			url:       "http://test.org/test/1234/name.json",
			wantRoute: "object_attribute_format_get",
			wantParams: message.Values{
				"object":    "1234",
				"attribute": "name",
				"format":    "json",
			},
		},
		{
			name:      "dotted splits at last dot",
			method:    "GET",
			url:       "/test/1/archive.tar.gz",
			wantRoute: "object_attribute_format_get",
			wantParams: message.Values{
				"object":    "1",
				"attribute": "archive.tar",
				"format":    "gz",
			},
		},
		{
			name:      "method selects route",
			method:    "PATCH",
			url:       "http://test.org/test/1234/name.json",
			wantRoute: "object_attribute_format_update",
			wantParams: message.Values{
				"object":    "1234",
				"attribute": "name",
				"format":    "json",
			},
		},
		{
			name:       "glob with spaces",
			method:     "get",
			url:        "http://test.org/glob/truly and really/everything/there/is.json",
			wantRoute:  "glob_get",
			wantParams: message.Values{"everything": "truly and really/everything/there/is.json"},
		},
		{
			name:       "glob decodes escapes",
			method:     "GET",
			url:        "/glob/a%20b/c",
			wantRoute:  "glob_get",
			wantParams: message.Values{"everything": "a b/c"},
		},
		{
			name:       "named capture decodes escapes",
			method:     "GET",
			url:        "/test/12%2F34/x.json",
			wantRoute:  "object_attribute_format_get",
			wantParams: message.Values{"object": "12/34", "attribute": "x", "format": "json"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tbl, h := newFixture(t)
			req := newRequest(t, tt.method, tt.url)

			handler, ok := tbl.Route(req)
			require.True(t, ok)
			require.NotNil(t, handler)
			require.NoError(t, handler(context.Background(), req, message.NewReply(req)))

			assert.Equal(t, []string{tt.wantRoute}, h.names)
			assert.Equal(t, tt.wantRoute, req.RouteName)
			assert.Equal(t, tt.wantParams, req.Params)
		})
	}
}

func TestTable_RouteMiss(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		url    string
	}{
		{name: "missing route", method: "GET", url: "http://test.org/missing/route"},
		{name: "wrong method", method: "DELETE", url: "/test"},
		{name: "trailing slash", method: "GET", url: "/test/"},
		{name: "empty glob", method: "GET", url: "/glob/"},
		{name: "no glob segment", method: "GET", url: "/glob"},
		{name: "dotted without dot", method: "GET", url: "/test/1/name"},
		{name: "dotted leading dot", method: "GET", url: "/test/1/.json"},
		{name: "dotted trailing dot", method: "GET", url: "/test/1/name."},
		{name: "too many segments", method: "GET", url: "/test/1/name.json/extra"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tbl, h := newFixture(t)
			req := newRequest(t, tt.method, tt.url)
			req.Params = message.Values{"keep": "me"}

			handler, ok := tbl.Route(req)
			assert.False(t, ok)
			assert.Nil(t, handler)
			assert.Empty(t, h.names)
			assert.Empty(t, req.RouteName)
			assert.Equal(t, message.Values{"keep": "me"}, req.Params)
		})
	}
}

func TestTable_RouteFirstMatchWins(t *testing.T) {
	t.Parallel()

	h := &hit{}
	tbl := New(WithMetrics(false))
	require.NoError(t, tbl.Get("/items/<id>", h.handler, "by_id"))
	require.NoError(t, tbl.Get("/items/new", h.handler, "new_item"))

	req := newRequest(t, "GET", "/items/new")
	handler, ok := tbl.Route(req)
	require.True(t, ok)
	require.NoError(t, handler(context.Background(), req, message.NewReply(req)))

	assert.Equal(t, []string{"by_id"}, h.names)
	assert.Equal(t, "new", req.Params.Get("id"))
}

func TestTable_AnyMethod(t *testing.T) {
	t.Parallel()

	h := &hit{}
	tbl := New(WithMetrics(false))
	require.NoError(t, tbl.Any("/any", h.handler, "any"))
	require.NoError(t, tbl.Register("", "/empty", h.handler, "empty"))

	for _, method := range []string{"GET", "POST", "OPTIONS"} {
		_, ok := tbl.Route(newRequest(t, method, "/any"))
		assert.True(t, ok, method)
		_, ok = tbl.Route(newRequest(t, method, "/empty"))
		assert.True(t, ok, method)
	}

	routes := tbl.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, AnyMethod, routes[0].Method)
	assert.Equal(t, AnyMethod, routes[1].Method)
}

func TestTable_VerbHelpers(t *testing.T) {
	t.Parallel()

	h := &hit{}
	tbl := New(WithMetrics(false))
	require.NoError(t, tbl.Get("/r", h.handler, "get"))
	require.NoError(t, tbl.Post("/r", h.handler, "post"))
	require.NoError(t, tbl.Put("/r", h.handler, "put"))
	require.NoError(t, tbl.Patch("/r", h.handler, "patch"))
	require.NoError(t, tbl.Delete("/r", h.handler, "delete"))

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		req := newRequest(t, method, "/r")
		_, ok := tbl.Route(req)
		require.True(t, ok, method)
		assert.Equal(t, strings.ToLower(method), req.RouteName)
	}
}

func TestTable_URLFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		route      string
		params     map[string]string
		wantMethod string
		wantPath   string
	}{
		{
			name:       "dotted",
			route:      "object_attribute_format_get",
			params:     map[string]string{"object": "1234", "attribute": "name", "format": "json"},
			wantMethod: "GET",
			wantPath:   "/test/1234/name.json",
		},
		{
			name:       "patch route",
			route:      "object_attribute_format_update",
			params:     map[string]string{"object": "1", "attribute": "a", "format": "xml"},
			wantMethod: "PATCH",
			wantPath:   "/test/1/a.xml",
		},
		{
			name:       "glob keeps slashes",
			route:      "glob_get",
			params:     map[string]string{"everything": "truly and really/everything/there/is.json"},
			wantMethod: "GET",
			wantPath:   "/glob/truly%20and%20really/everything/there/is.json",
		},
		{
			name:       "glob short",
			route:      "glob_get",
			params:     map[string]string{"everything": "a b/c"},
			wantMethod: "GET",
			wantPath:   "/glob/a%20b/c",
		},
		{
			name:       "named capture escapes slash",
			route:      "object_attribute_format_get",
			params:     map[string]string{"object": "a/b", "attribute": "x", "format": "y"},
			wantMethod: "GET",
			wantPath:   "/test/a%2Fb/x.y",
		},
		{
			name:       "literal",
			route:      "test_index",
			wantMethod: "GET",
			wantPath:   "/test",
		},
		{
			name:       "root",
			route:      "root_path",
			wantMethod: "GET",
			wantPath:   "/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tbl, _ := newFixture(t)
			method, path, err := tbl.URLFor(tt.route, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, method)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestTable_URLForRoundTrip(t *testing.T) {
	t.Parallel()

	tbl, _ := newFixture(t)
	params := map[string]string{"everything": "x y/z%/w.json"}

	_, path, err := tbl.URLFor("glob_get", params)
	require.NoError(t, err)

	req := newRequest(t, "GET", path)
	_, ok := tbl.Route(req)
	require.True(t, ok)
	assert.Equal(t, params["everything"], req.Params.Get("everything"))
}

func TestTable_URLForErrors(t *testing.T) {
	t.Parallel()

	tbl, _ := newFixture(t)

	_, _, err := tbl.URLFor("object_attribute_format", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, _, err = tbl.URLFor("", nil)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, _, err = tbl.URLFor("object_attribute_format_get", map[string]string{"object": "1", "attribute": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrMissingParameter)

	var missing *util.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "format", missing.Param)
	assert.Equal(t, "object_attribute_format_get", missing.Route)
}

func TestTable_PrintRoutes(t *testing.T) {
	t.Parallel()

	tbl, _ := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, tbl.PrintRoutes(&buf))
	assert.Equal(t, "GET /glob/<*everything> glob_get\n"+
		"GET /test/<object>/<attribute>.<format> object_attribute_format_get\n"+
		"PATCH /test/<object>/<attribute>.<format> object_attribute_format_update\n"+
		"GET /test test_index\n"+
		"GET / root_path\n", buf.String())
}

func TestTable_RegisterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		pattern string
	}{
		{name: "bad method", method: "FETCH", pattern: "/a"},
		{name: "relative pattern", method: "GET", pattern: "a/b"},
		{name: "glob not last", method: "GET", pattern: "/<*a>/b"},
		{name: "unterminated placeholder", method: "GET", pattern: "/<id"},
		{name: "text around placeholder", method: "GET", pattern: "/x<id>"},
		{name: "empty placeholder", method: "GET", pattern: "/<>"},
		{name: "duplicate capture", method: "GET", pattern: "/<id>/<id>"},
		{name: "duplicate dotted capture", method: "GET", pattern: "/<a>.<a>"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tbl := New(WithMetrics(false))
			err := tbl.Register(tt.method, tt.pattern, nil, "r")
			require.Error(t, err)
			assert.Zero(t, tbl.Len())
		})
	}
}

func TestTable_DuplicateName(t *testing.T) {
	t.Parallel()

	tbl := New(WithMetrics(false))
	require.NoError(t, tbl.Get("/a", nil, "a"))

	err := tbl.Get("/b", nil, "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.Equal(t, 1, tbl.Len())

	// Unnamed routes never collide.
	require.NoError(t, tbl.Get("/c", nil, ""))
	require.NoError(t, tbl.Get("/d", nil, ""))
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_ClearAndRoutes(t *testing.T) {
	t.Parallel()

	tbl, _ := newFixture(t)
	assert.Equal(t, 5, tbl.Len())

	routes := tbl.Routes()
	require.Len(t, routes, 5)
	assert.Equal(t, "glob_get", routes[0].Name)
	assert.Equal(t, "/glob/<*everything>", routes[0].Pattern)

	// Mutating the snapshot does not touch the table.
	routes[0].Name = "changed"
	assert.Equal(t, "glob_get", tbl.Routes()[0].Name)

	tbl.Clear()
	assert.Zero(t, tbl.Len())
	_, ok := tbl.Route(newRequest(t, "GET", "/"))
	assert.False(t, ok)
	_, _, err := tbl.URLFor("root_path", nil)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	assert.Same(t, Default(), Default())
}

func TestTable_Metrics(t *testing.T) {
	m := getRouterMetrics()
	const name = "metrics_probe_route"

	tbl := New()
	require.NoError(t, tbl.Get("/metrics-probe", nil, name))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.routes))

	matchesBefore := testutil.ToFloat64(m.matches.WithLabelValues(name))
	missesBefore := testutil.ToFloat64(m.misses)

	_, ok := tbl.Route(newRequest(t, "GET", "/metrics-probe"))
	require.True(t, ok)
	_, ok = tbl.Route(newRequest(t, "GET", "/nowhere"))
	require.False(t, ok)

	assert.Equal(t, matchesBefore+1, testutil.ToFloat64(m.matches.WithLabelValues(name)))
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(m.misses))
}
