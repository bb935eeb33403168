package router

import (
	"fmt"

	"github.com/vyrodovalexey/httpmsg/internal/config"
	"github.com/vyrodovalexey/httpmsg/internal/observability"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// LoadRoutes replaces the table contents with routes, in order. Each
// route's Handler field names an entry of handlers. On error the table is
// left unchanged.
func (t *Table) LoadRoutes(routes []config.Route, handlers map[string]Handler) error {
	staged := New(WithMetrics(false))
	for _, rc := range routes {
		h, ok := handlers[rc.Handler]
		if !ok {
			return fmt.Errorf("route %s: unknown handler %q: %w", rc.Name, rc.Handler, util.ErrInvalidInput)
		}
		if err := staged.Register(rc.Method, rc.Pattern, h, rc.Name); err != nil {
			return err
		}
	}

	t.mu.Lock()
	t.routes = staged.routes
	t.byName = staged.byName
	t.updateSize()
	t.mu.Unlock()

	t.logger.Info("routes loaded", observability.Int("count", len(routes)))
	return nil
}
