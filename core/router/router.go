// Package router provides a generic HTTP router built on top of the
// pattern matching of net/http.ServeMux.
//
// Routes are registered with chi-like helpers (Get, Post, Group, Route, Mount)
// and receive a custom request context C. Path wildcards use the ServeMux
// syntax ("/posts/{id}", "/files/{path...}"); a trailing "*" segment is
// accepted as shorthand for "{wildcard...}" and exposed as Param("*").
package router

import (
	"net/http"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

// Router registers handlers and serves HTTP requests.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every HTTP method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for the listed HTTP methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]

	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]
	Mount(pattern string, sub Router[C])
}

// Routes exposes registered routes for debugging and startup logs.
type Routes interface {
	Routes() []Route
}

// Route describes one registered method and pattern pair.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router. Custom context types require WithContextFactory.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
