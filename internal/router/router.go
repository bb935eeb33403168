package router

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/observability"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// AnyMethod matches every request method.
const AnyMethod = "*"

// Handler handles a routed request by filling in resp.
type Handler func(ctx context.Context, req, resp *message.Message) error

// Route is a registered pattern.
type Route struct {
	Method   string
	Pattern  string
	Name     string
	Handler  Handler
	segments []segment
}

// Table is an ordered list of routes. The zero value is not usable; use New.
type Table struct {
	routes  []*Route
	byName  map[string]*Route
	logger  observability.Logger
	metrics *routerMetrics
	mu      sync.RWMutex
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger for registration and matching events.
func WithLogger(logger observability.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithMetrics enables or disables Prometheus metrics. Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(t *Table) {
		if enabled {
			t.metrics = getRouterMetrics()
		} else {
			t.metrics = nil
		}
	}
}

// New creates an empty route table.
func New(opts ...Option) *Table {
	t := &Table{
		byName:  make(map[string]*Route),
		logger:  observability.NopLogger(),
		metrics: getRouterMetrics(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// Default returns the process-wide route table.
func Default() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = New()
	})
	return defaultTable
}

// Register compiles pattern and appends a route. An empty method or "*"
// matches every method. Non-empty names must be unique.
func (t *Table) Register(method, pattern string, handler Handler, name string) error {
	method = strings.ToUpper(method)
	if method == "" {
		method = AnyMethod
	}
	if err := util.ValidateHTTPMethod(method); err != nil {
		return fmt.Errorf("route %s: %w", name, err)
	}

	segments, err := compilePattern(pattern)
	if err != nil {
		return fmt.Errorf("route %s: %w", name, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byName[name]; exists && name != "" {
		return fmt.Errorf("duplicate route name: %s: %w", name, util.ErrInvalidInput)
	}

	r := &Route{
		Method:   method,
		Pattern:  pattern,
		Name:     name,
		Handler:  handler,
		segments: segments,
	}
	t.routes = append(t.routes, r)
	if name != "" {
		t.byName[name] = r
	}

	t.logger.Debug("route registered",
		observability.String("method", method),
		observability.String("pattern", pattern),
		observability.String("name", name),
	)
	t.updateSize()
	return nil
}

// Get registers a GET route.
func (t *Table) Get(pattern string, handler Handler, name string) error {
	return t.Register("GET", pattern, handler, name)
}

// Post registers a POST route.
func (t *Table) Post(pattern string, handler Handler, name string) error {
	return t.Register("POST", pattern, handler, name)
}

// Put registers a PUT route.
func (t *Table) Put(pattern string, handler Handler, name string) error {
	return t.Register("PUT", pattern, handler, name)
}

// Patch registers a PATCH route.
func (t *Table) Patch(pattern string, handler Handler, name string) error {
	return t.Register("PATCH", pattern, handler, name)
}

// Delete registers a DELETE route.
func (t *Table) Delete(pattern string, handler Handler, name string) error {
	return t.Register("DELETE", pattern, handler, name)
}

// Any registers a route for every method.
func (t *Table) Any(pattern string, handler Handler, name string) error {
	return t.Register(AnyMethod, pattern, handler, name)
}

// Route finds the first route matching req's method and path. On a match
// req.Params is replaced by the captures and req.RouteName is set. A miss
// leaves req untouched.
func (t *Table) Route(req *message.Message) (Handler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, r := range t.routes {
		if r.Method != AnyMethod && !strings.EqualFold(r.Method, req.Method) {
			continue
		}
		params, ok := matchSegments(r.segments, req.URL.Path)
		if !ok {
			continue
		}

		req.Params = params
		req.RouteName = r.Name
		if t.metrics != nil {
			t.metrics.matches.WithLabelValues(r.Name).Inc()
		}
		t.logger.Debug("route matched",
			observability.String("name", r.Name),
			observability.String("path", req.URL.Path),
		)
		return r.Handler, true
	}

	if t.metrics != nil {
		t.metrics.misses.Inc()
	}
	t.logger.Debug("no route matched",
		observability.String("method", req.Method),
		observability.String("path", req.URL.Path),
	)
	return nil, false
}

// URLFor builds the method and path of the named route from params.
func (t *Table) URLFor(name string, params map[string]string) (method, path string, err error) {
	t.mu.RLock()
	r, ok := t.byName[name]
	t.mu.RUnlock()

	if !ok || name == "" {
		return "", "", util.NewRouteNotFoundError(name)
	}

	path, err = buildPath(name, r.segments, params)
	if err != nil {
		return "", "", err
	}
	return r.Method, path, nil
}

// PrintRoutes writes "METHOD PATTERN NAME" for each route in
// registration order.
func (t *Table) PrintRoutes(w io.Writer) error {
	for _, r := range t.Routes() {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", r.Method, r.Pattern, r.Name); err != nil {
			return err
		}
	}
	return nil
}

// Routes returns a snapshot of the routes in registration order.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Route, len(t.routes))
	for i, r := range t.routes {
		out[i] = *r
	}
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}

// Clear removes every route.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.routes = nil
	t.byName = make(map[string]*Route)
	t.updateSize()
}

// updateSize must be called with t.mu held.
func (t *Table) updateSize() {
	if t.metrics != nil {
		t.metrics.routes.Set(float64(len(t.routes)))
	}
}
