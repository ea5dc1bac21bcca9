package middleware

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Skip func(ctx handler.Context) bool

	// Limiter is required.
	Limiter ratelimiter.RateLimiter

	// KeyExtractor picks the bucket. Defaults to the client IP.
	KeyExtractor func(ctx handler.Context) string

	// ErrorHandler renders the rejection. Defaults to a 429 carrying
	// retry_after in its details.
	ErrorHandler func(ctx handler.Context, result *ratelimiter.Result) handler.Response

	// SetHeaders adds X-RateLimit-* headers, and Retry-After on rejection.
	SetHeaders bool
}

// RateLimit admits a request only when the limiter has a token for its key.
// Limiter failures surface as 500.
//
//	r.With(middleware.RateLimit[*app.Context](middleware.RateLimitConfig{
//		Limiter:    limiter,
//		SetHeaders: true,
//	})).Post("/form/{kind}", app.submitForm)
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = clientIPOf
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, result *ratelimiter.Result) handler.Response {
			err := response.ErrTooManyRequests
			if after := result.RetryAfter(); after > 0 {
				err = err.WithDetails(map[string]any{"retry_after": int(after.Seconds()) + 1})
			}
			return response.Error(err)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			result, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
			if err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}

			var resp handler.Response
			if result.Allowed() {
				resp = next(ctx)
			} else {
				resp = cfg.ErrorHandler(ctx, result)
			}
			if resp == nil || !cfg.SetHeaders {
				return resp
			}
			return withRateLimitHeaders(resp, result)
		}
	}
}

func withRateLimitHeaders(resp handler.Response, result *ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		if !result.Allowed() {
			h.Set("Retry-After", strconv.Itoa(int(result.RetryAfter().Seconds())+1))
		}
		return resp(w, r)
	}
}
