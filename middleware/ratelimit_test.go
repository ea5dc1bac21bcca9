package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/router"
	"github.com/dmitrymomot/schemadeck/middleware"
	"github.com/dmitrymomot/schemadeck/pkg/ratelimiter"
)

func newLimiter(t *testing.T, capacity int) *ratelimiter.Bucket {
	t.Helper()
	b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       capacity,
		RefillRate:     capacity,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)
	return b
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	r := router.New(
		router.WithErrorHandler(response.JSONErrorHandler[ctx]),
		router.WithMiddleware(
			middleware.ClientIP[ctx](),
			middleware.RateLimit[ctx](middleware.RateLimitConfig{
				Limiter:    newLimiter(t, 2),
				SetHeaders: true,
				Skip:       func(c handler.Context) bool { return c.Request().Method == http.MethodGet },
			}),
		),
	)
	r.Post("/form/vanilla", ok("accepted"))
	r.Get("/form/vanilla", ok("form"))

	post := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/form/vanilla", nil)
		req.RemoteAddr = ip + ":1234"
		return do(t, r, req)
	}

	rec := post("192.0.2.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, post("192.0.2.1").Code)

	rec = post("192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Positive(t, retry)
	assert.Contains(t, rec.Body.String(), `"too_many_requests"`)

	assert.Equal(t, http.StatusOK, post("192.0.2.2").Code, "other clients keep their budget")

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/form/vanilla", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		assert.Equal(t, http.StatusOK, do(t, r, req).Code, "skipped requests are not limited")
	}
}

func TestRateLimitRequiresLimiter(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { middleware.RateLimit[ctx](middleware.RateLimitConfig{}) })
}
