package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemadeck/core/router"
	"github.com/dmitrymomot/schemadeck/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	cfg := middleware.SiteSecurity
	cfg.ScriptSources = []string{"https://unpkg.com"}
	cfg.CustomHeaders = map[string]string{"X-Deck": "1"}
	r := router.New(router.WithMiddleware(middleware.SecurityHeadersWithConfig[ctx](cfg)))
	r.Get("/", ok(""))

	h := do(t, r, httptest.NewRequest(http.MethodGet, "/", nil)).Header()
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
	assert.NotEmpty(t, h.Get("Strict-Transport-Security"))
	assert.Contains(t, h.Get("Content-Security-Policy"), "script-src 'self' https://unpkg.com")
	assert.Contains(t, h.Get("Content-Security-Policy"), "img-src 'self' data:")
	assert.Equal(t, "1", h.Get("X-Deck"))
}

func TestSecurityHeadersDevelopment(t *testing.T) {
	t.Parallel()

	cfg := middleware.StrictSecurity
	cfg.IsDevelopment = true
	r := router.New(router.WithMiddleware(middleware.SecurityHeadersWithConfig[ctx](cfg)))
	r.Get("/", ok(""))

	h := do(t, r, httptest.NewRequest(http.MethodGet, "/", nil)).Header()
	assert.Empty(t, h.Get("Strict-Transport-Security"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, middleware.StrictSecurity.ContentSecurityPolicy, h.Get("Content-Security-Policy"))
}
