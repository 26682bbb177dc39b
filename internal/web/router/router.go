// Package router maps explorer operations onto HTTP routes.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/conduit-lang/tdexplorer/internal/web/middleware"
)

// Router wraps a chi mux and records the routes registered on it.
type Router struct {
	mux    chi.Router
	routes []RouteInfo
}

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method     string
	Pattern    string
	Parameters []string
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{mux: chi.NewRouter()}
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Use appends middleware. It must be called before any route is added.
func (r *Router) Use(middlewares ...middleware.Middleware) {
	for _, m := range middlewares {
		r.mux.Use(m)
	}
}

// Get registers a GET (and HEAD) route.
func (r *Router) Get(pattern string, handler http.HandlerFunc) {
	r.mux.Get(pattern, handler)
	r.mux.Head(pattern, handler)
	r.record(http.MethodGet, pattern)
}

// Post registers a POST route.
func (r *Router) Post(pattern string, handler http.HandlerFunc) {
	r.mux.Post(pattern, handler)
	r.record(http.MethodPost, pattern)
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.NotFound(handler)
}

// MethodNotAllowed sets the handler for known paths with the wrong method.
func (r *Router) MethodNotAllowed(handler http.HandlerFunc) {
	r.mux.MethodNotAllowed(handler)
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	out := make([]RouteInfo, len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *Router) record(method, pattern string) {
	r.routes = append(r.routes, RouteInfo{
		Method:     method,
		Pattern:    pattern,
		Parameters: extractParameters(pattern),
	})
}

// extractParameters returns the {name} segments of a chi pattern.
func extractParameters(pattern string) []string {
	var params []string
	for _, seg := range strings.Split(pattern, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")
			if i := strings.IndexByte(name, ':'); i >= 0 {
				name = name[:i]
			}
			params = append(params, name)
		}
	}
	return params
}
