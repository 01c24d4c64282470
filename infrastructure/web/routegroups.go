package web

import "strings"

// RouteGroup registers handlers under a shared path prefix. Middleware given
// to the group runs on every route registered through it, before any route
// specific middleware.
type RouteGroup struct {
	webHandler *WebHandler
	prefix     string
	middleware []Middleware
}

// Group creates a route group rooted at prefix. A trailing slash on the
// prefix is dropped so registered paths keep a single separator.
func (wh *WebHandler) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: wh,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

// Handle registers a HandlerFunc under the group prefix.
func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	g.webHandler.Handle(method, g.prefix+path, handler, g.combine(middleware)...)
}

// Group creates a nested group whose prefix and middleware extend this one.
func (g *RouteGroup) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: g.webHandler,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: g.combine(middleware),
	}
}

// combine copies the group middleware ahead of extra into a fresh slice so
// sibling groups and routes never share backing arrays.
func (g *RouteGroup) combine(extra []Middleware) []Middleware {
	combined := make([]Middleware, 0, len(g.middleware)+len(extra))
	combined = append(combined, g.middleware...)
	combined = append(combined, extra...)
	return combined
}
