package response_test

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/router"
)

func run(t *testing.T, resp handler.Response, req *http.Request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	require.NotNil(t, resp)
	if req == nil {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
	}
	rec := httptest.NewRecorder()
	return rec, resp(rec, req)
}

func htmxRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/form/schema", nil)
	req.Header.Set(response.HeaderHXRequest, "true")
	return req
}

func TestStringAndHTML(t *testing.T) {
	t.Parallel()

	rec, err := run(t, response.StringWithStatus("nope", http.StatusTeapot), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nope", rec.Body.String())

	rec, err = run(t, response.HTML("<p>hi</p>"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	rec, err = run(t, response.Bytes([]byte{0x89, 'P'}, "image/png"), nil)
	require.NoError(t, err)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, 2, rec.Body.Len())

	rec, err = run(t, response.NoContent(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTempl(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	t.Run("renders with request context", func(t *testing.T) {
		t.Parallel()
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "<b>%v</b>", ctx.Value(ctxKey{}))
			return err
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "ada"))

		rec, err := run(t, response.TemplWithStatus(component, http.StatusUnprocessableEntity), req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "<b>ada</b>", rec.Body.String())
	})

	t.Run("render error writes nothing", func(t *testing.T) {
		t.Parallel()
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, _ = io.WriteString(w, "partial")
			return errors.New("broken")
		})
		rec, err := run(t, response.Templ(component), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
		assert.Empty(t, rec.Body.String())
	})

	t.Run("nil component", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, response.Templ(nil))
	})
}

func TestTemplate(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("page").Parse(`{{define "title"}}<h1>{{.}}</h1>{{end}}<p>{{.}}</p>`))

	rec, err := run(t, response.Template(tmpl, "<script>"), nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>&lt;script&gt;</p>", rec.Body.String())

	rec, err = run(t, response.TemplateNameWithStatus(tmpl, "title", "Hi", http.StatusCreated), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "<h1>Hi</h1>", rec.Body.String())

	_, err = run(t, response.TemplateName(tmpl, "missing", nil), nil)
	assert.Error(t, err)

	_, err = run(t, response.Template(nil, nil), nil)
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	rec, err := run(t, response.JSONWithStatus(map[string]bool{"success": false}, http.StatusUnprocessableEntity), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"success":false}`, rec.Body.String())

	rec, err = run(t, response.JSONWithStatus(nil, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWithHTMX(t *testing.T) {
	t.Parallel()

	resp := response.WithHTMX(response.HTML("<form></form>"),
		response.TriggerEvent("registration-accepted", map[string]string{"message": "ok"}),
		response.Reswap("outerHTML", "show:top"),
		response.Retarget("#registration"),
	)

	rec, err := run(t, resp, htmxRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"registration-accepted":{"message":"ok"}}`, rec.Header().Get(response.HeaderHXTrigger))
	assert.Equal(t, "outerHTML show:top", rec.Header().Get(response.HeaderHXReswap))
	assert.Equal(t, "#registration", rec.Header().Get(response.HeaderHXRetarget))

	rec, err = run(t, resp, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Header().Get(response.HeaderHXTrigger), "plain requests get no htmx headers")
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec, err := run(t, response.RedirectSeeOther("/form/schema"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/form/schema", rec.Header().Get("Location"))

	rec, err = run(t, response.Redirect("/"), htmxRequest())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(response.HeaderHXLocation))
}

func TestWithCache(t *testing.T) {
	t.Parallel()

	rec, err := run(t, response.WithCache(response.String("x"), time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	rec, err = run(t, response.WithCache(response.String("x"), 0), nil)
	require.NoError(t, err)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	rec, err = run(t, response.WithHeaders(response.String("x"), map[string]string{"X-Deck": "1"}), nil)
	require.NoError(t, err)
	assert.Equal(t, "1", rec.Header().Get("X-Deck"))
}

type coded struct{ code int }

func (c coded) Error() string   { return "coded" }
func (c coded) StatusCode() int { return c.code }

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error kept", response.ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests"},
		{"wrapped http error", fmt.Errorf("slide: %w", response.ErrNotFound), http.StatusNotFound, "not_found"},
		{"status code interface", coded{http.StatusMethodNotAllowed}, http.StatusMethodNotAllowed, "method_not_allowed"},
		{"unmapped status", coded{http.StatusTeapot}, http.StatusTeapot, "error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := response.AsHTTPError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestErrorHandlers(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	response.JSONErrorHandler(ctx, response.ErrUnprocessableEntity)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"code":"unprocessable_entity","message":"Unprocessable Entity"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	ctx = newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	response.ErrorHandler(ctx, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", rec.Body.String())
}

func newTestContext(w http.ResponseWriter, r *http.Request) *router.Context {
	return router.NewContext(w, r, nil)
}
