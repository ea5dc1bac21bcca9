package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/core/response"
)

// LoggingConfig configures the access log middleware.
//
// Request bodies are never logged: registration forms carry passwords.
type LoggingConfig struct {
	Skip func(ctx handler.Context) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// LogLevel is used for successful requests. 4xx responses are logged at
	// warn and 5xx at error regardless.
	LogLevel slog.Level

	// LogHeaders adds request headers under "headers"; SensitiveHeaders are
	// replaced with "[REDACTED]".
	LogHeaders       bool
	SensitiveHeaders []string

	// SlowRequestThreshold raises requests slower than this to warn. Defaults to 5s.
	SlowRequestThreshold time.Duration

	Component string
}

var defaultSensitiveHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "X-Api-Key"}

// Logging logs one line per request with slog.Default().
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}
	sensitive := make([]string, 0, len(defaultSensitiveHeaders)+len(cfg.SensitiveHeaders))
	for _, h := range append(slices.Clone(defaultSensitiveHeaders), cfg.SensitiveHeaders...) {
		sensitive = append(sensitive, http.CanonicalHeaderKey(h))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rw := &responseWriter{ResponseWriter: w}
				err := resp(rw, r)

				status := rw.status
				if err != nil && !rw.wroteHeader {
					// The router's error handler writes the body after we return.
					status = response.AsHTTPError(err).Status
				}
				if status == 0 {
					status = http.StatusOK
				}

				elapsed := time.Since(start)
				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(rw.size),
					logger.Duration(elapsed),
					logger.ClientIP(clientIPOf(ctx)),
					logger.UserAgent(r.UserAgent()),
				}
				if q := r.URL.RawQuery; q != "" {
					attrs = append(attrs, slog.String("query", q))
				}
				if cfg.LogHeaders {
					attrs = append(attrs, headerGroup(r.Header, sensitive))
				}
				if err != nil {
					attrs = append(attrs, logger.Error(err))
				}

				level := cfg.LogLevel
				msg := "request completed"
				switch {
				case status >= http.StatusInternalServerError:
					level, msg = slog.LevelError, "request failed"
				case status >= http.StatusBadRequest:
					level = max(level, slog.LevelWarn)
				case elapsed > cfg.SlowRequestThreshold:
					level, msg = max(level, slog.LevelWarn), "slow request"
				}

				cfg.Logger.LogAttrs(r.Context(), level, msg, attrs...)
				return err
			}
		}
	}
}

func headerGroup(h http.Header, sensitive []string) slog.Attr {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		v := strings.Join(h.Values(k), ", ")
		if slices.Contains(sensitive, k) {
			v = "[REDACTED]"
		}
		attrs = append(attrs, slog.String(k, v))
	}
	return slog.Group("headers", attrs...)
}

// responseWriter records the status and body size written by a response.
type responseWriter struct {
	http.ResponseWriter
	status      int
	size        int64
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
