package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/router"
	"github.com/dmitrymomot/schemadeck/middleware"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggingLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter(), logger.WithLevel(-4))

	r := router.New(router.WithMiddleware(middleware.LoggingWithConfig[ctx](middleware.LoggingConfig{
		Logger:     log,
		LogHeaders: true,
	})))
	r.Get("/", ok("hello"))
	r.Get("/missing-slide", func(c ctx) handler.Response { return response.Error(response.ErrNotFound) })
	r.Get("/boom", func(c ctx) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error { return assert.AnError }
	})

	req := httptest.NewRequest(http.MethodGet, "/?x=1", nil)
	req.Header.Set("Cookie", "session=secret")
	req.Header.Set("User-Agent", "deck-test")
	do(t, r, req)
	do(t, r, httptest.NewRequest(http.MethodGet, "/missing-slide", nil))
	do(t, r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "request completed", lines[0]["msg"])
	assert.EqualValues(t, 200, lines[0]["status_code"])
	assert.EqualValues(t, 5, lines[0]["bytes_out"])
	assert.Equal(t, "x=1", lines[0]["query"])
	assert.Equal(t, "deck-test", lines[0]["user_agent"])
	headers, _ := lines[0]["headers"].(map[string]any)
	assert.Equal(t, "[REDACTED]", headers["Cookie"])
	assert.NotContains(t, buf.String(), "secret")

	assert.Equal(t, "WARN", lines[1]["level"])
	assert.EqualValues(t, 404, lines[1]["status_code"])

	assert.Equal(t, "ERROR", lines[2]["level"])
	assert.Equal(t, "request failed", lines[2]["msg"])
	assert.EqualValues(t, 500, lines[2]["status_code"])
}

func TestLoggingSkip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := router.New(router.WithMiddleware(middleware.LoggingWithConfig[ctx](middleware.LoggingConfig{
		Logger: logger.New(logger.WithOutput(&buf)),
		Skip:   func(c handler.Context) bool { return c.Request().URL.Path == "/live" },
	})))
	r.Get("/live", ok("ALIVE"))

	rec := do(t, r, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, "ALIVE", rec.Body.String())
	assert.Empty(t, buf.String())
}
