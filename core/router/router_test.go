package router_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/router"
)

func text(s string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain")
		_, err := io.WriteString(w, s)
		return err
	}
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterMatching(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(ctx *router.Context) handler.Response { return text("home") })
	r.Get("/presentation/{slug}", func(ctx *router.Context) handler.Response {
		return text("slide:" + ctx.Param("slug"))
	})
	r.Post("/presentation/2-core-concepts/playground", func(ctx *router.Context) handler.Response {
		return text("playground")
	})
	r.Get("/assets/*", func(ctx *router.Context) handler.Response {
		return text("asset:" + ctx.Param("*"))
	})

	tests := []struct {
		name   string
		method string
		target string
		status int
		body   string
	}{
		{"root exact", http.MethodGet, "/", http.StatusOK, "home"},
		{"path param", http.MethodGet, "/presentation/1-intro", http.StatusOK, "slide:1-intro"},
		{"more specific pattern wins", http.MethodPost, "/presentation/2-core-concepts/playground", http.StatusOK, "playground"},
		{"trailing wildcard", http.MethodGet, "/assets/css/site.css", http.StatusOK, "asset:css/site.css"},
		{"head falls back to get", http.MethodHead, "/presentation/x", http.StatusOK, ""},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, "not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(t, r, tt.method, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			if tt.method != http.MethodHead {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/form", func(ctx *router.Context) handler.Response { return text("get") })
	r.Post("/form", func(ctx *router.Context) handler.Response { return text("post") })

	rec := serve(t, r, http.MethodDelete, "/form")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestRouterMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				calls = append(calls, name)
				return next(ctx)
			}
		}
	}

	r := router.New(router.WithMiddleware(mw("global")))
	r.With(mw("inline")).Group(func(g router.Router[*router.Context]) {
		g.Use(mw("group"))
		g.Get("/x", func(ctx *router.Context) handler.Response { return text("x") })
	})

	rec := serve(t, r, http.MethodGet, "/x")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"global", "inline", "group"}, calls)
}

func TestRouterUseAfterRoutesPanics(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(ctx *router.Context) handler.Response { return text("") })
	assert.Panics(t, func() { r.Use() })
}

func TestRouterRouteAndMount(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Route("/form", func(fr router.Router[*router.Context]) {
		fr.Get("/{kind}", func(ctx *router.Context) handler.Response { return text("form:" + ctx.Param("kind")) })
	})

	sub := router.New[*router.Context]()
	sub.Get("/live", func(ctx *router.Context) handler.Response { return text("ok") })
	r.Mount("/health", sub)

	rec := serve(t, r, http.MethodGet, "/form/schema")
	assert.Equal(t, "form:schema", rec.Body.String())

	rec = serve(t, r, http.MethodGet, "/health/live")
	assert.Equal(t, "ok", rec.Body.String())

	routes := r.Routes()
	assert.Contains(t, routes, router.Route{Method: http.MethodGet, Pattern: "/form/{kind}"})
	assert.Contains(t, routes, router.Route{Method: http.MethodGet, Pattern: "/health/live"})
}

func TestRouterErrors(t *testing.T) {
	t.Parallel()

	var handled error
	r := router.New(router.WithErrorHandler(func(ctx *router.Context, err error) {
		handled = err
		ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
	}))
	r.Get("/fail", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error { return errors.New("boom") }
	})
	r.Get("/nil", func(ctx *router.Context) handler.Response { return nil })
	r.Get("/panic", func(ctx *router.Context) handler.Response { panic("kaboom") })

	rec := serve(t, r, http.MethodGet, "/fail")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.EqualError(t, handled, "boom")

	serve(t, r, http.MethodGet, "/nil")
	assert.ErrorIs(t, handled, router.ErrNilResponse)

	serve(t, r, http.MethodGet, "/panic")
	var pe router.PanicError
	require.ErrorAs(t, handled, &pe)
	assert.Equal(t, "kaboom", pe.Value())
	assert.True(t, strings.Contains(string(pe.Stack()), "goroutine"))

	serve(t, r, http.MethodGet, "/missing")
	assert.ErrorIs(t, handled, router.ErrNotFound)
}

func TestRouterInvalidPatterns(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	noop := func(ctx *router.Context) handler.Response { return text("") }

	assert.Panics(t, func() { r.Get("no-slash", noop) })
	assert.Panics(t, func() { r.Method("/x", noop) })
	assert.Panics(t, func() { r.Method("/x", noop, "BREW") })
	assert.Panics(t, func() { r.Mount("/x", nil) })
}
