// Package router maps request paths to handlers and builds paths back
// from route names.
//
// Patterns are "/"-separated. Besides literal segments they support:
//
//   - <name>         captures one path segment
//   - <a>.<b>        captures one segment split at its last "."
//   - <*name>        captures the rest of the path, slashes included
//     (last segment only)
//
// Routes are tried in registration order and the first match wins:
//
//	t := router.New()
//	_ = t.Get("/users/<id>", showUser, "user_show")
//	_ = t.Get("/files/<*path>", serveFile, "file")
//
//	if h, ok := t.Route(req); ok {
//	    err := h(ctx, req, resp)
//	}
//
//	method, path, err := t.URLFor("file", map[string]string{"path": "a b/c"})
//	// "GET", "/files/a%20b/c"
//
// A Table is safe for concurrent use. Default returns a process-wide
// table for callers that want a single shared instance.
package router
