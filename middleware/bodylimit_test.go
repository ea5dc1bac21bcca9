package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/router"
	"github.com/dmitrymomot/schemadeck/middleware"
)

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithMiddleware(middleware.BodyLimitWithSize[ctx](8)))
	r.Post("/", func(c ctx) handler.Response {
		b, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return response.Error(response.ErrRequestEntityTooLarge.WithError(err))
		}
		return response.String(string(b))
	})

	rec := do(t, r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "small", rec.Body.String())

	rec = do(t, r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too large"))
	req.ContentLength = -1
	rec = do(t, r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, "streamed bodies are capped too")
}
