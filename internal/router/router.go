// Package router maps named routes to paths and the views that serve them.
package router

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"
)

// Home is the name of the landing route.
const (
	Home     = "home"
	HomePath = "/"
)

// Route table errors.
var (
	ErrRouteNotFound  = errors.New("route not found")
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrInvalidRoute   = errors.New("invalid route")
)

// Route binds a name and a path to a view.
//
// Path may contain path.Match wildcards ("/services/*"); such routes are tried
// after exact paths, in registration order.
type Route[V any] struct {
	Name string
	Path string
	View V
}

// Router resolves paths and names to routes.
//
// Thread Safety: All methods are safe for concurrent use.
type Router[V any] struct {
	mu       sync.RWMutex
	byName   map[string]Route[V]
	byPath   map[string]Route[V]
	patterns []Route[V]
}

// New creates a router with the given routes.
func New[V any](routes ...Route[V]) (*Router[V], error) {
	r := &Router[V]{
		byName: make(map[string]Route[V]),
		byPath: make(map[string]Route[V]),
	}
	for _, route := range routes {
		if err := r.Add(route); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a route. Names and paths must be unique.
func (r *Router[V]) Add(route Route[V]) error {
	if route.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRoute)
	}
	p := normalize(route.Path)
	if isPattern(p) {
		if _, err := path.Match(p, "/"); err != nil {
			return fmt.Errorf("%w: pattern %q: %w", ErrInvalidRoute, route.Path, err)
		}
	}
	route.Path = p

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[route.Name]; ok {
		return fmt.Errorf("%w: name %q", ErrDuplicateRoute, route.Name)
	}
	if _, ok := r.byPath[p]; ok {
		return fmt.Errorf("%w: path %q", ErrDuplicateRoute, p)
	}
	for _, existing := range r.patterns {
		if existing.Path == p {
			return fmt.Errorf("%w: path %q", ErrDuplicateRoute, p)
		}
	}

	r.byName[route.Name] = route
	if isPattern(p) {
		r.patterns = append(r.patterns, route)
	} else {
		r.byPath[p] = route
	}
	return nil
}

// Resolve returns the route serving p. Exact paths win over patterns.
func (r *Router[V]) Resolve(p string) (Route[V], error) {
	p = normalize(p)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if route, ok := r.byPath[p]; ok {
		return route, nil
	}
	for _, route := range r.patterns {
		if ok, _ := path.Match(route.Path, p); ok {
			return route, nil
		}
	}
	return Route[V]{}, fmt.Errorf("%w: path %q", ErrRouteNotFound, p)
}

// ByName returns the route registered under name.
func (r *Router[V]) ByName(name string) (Route[V], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.byName[name]
	if !ok {
		return Route[V]{}, fmt.Errorf("%w: name %q", ErrRouteNotFound, name)
	}
	return route, nil
}

// Routes returns every route, exact paths sorted first by path, then patterns
// in registration order.
func (r *Router[V]) Routes() []Route[V] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.byPath))
	for p := range r.byPath {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	out := make([]Route[V], 0, len(r.byPath)+len(r.patterns))
	for _, p := range paths {
		out = append(out, r.byPath[p])
	}
	return append(out, r.patterns...)
}

// normalize cleans p into an absolute path without a trailing slash.
// The query string and fragment are dropped.
func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func isPattern(p string) bool {
	return strings.ContainsAny(p, "*?[")
}
