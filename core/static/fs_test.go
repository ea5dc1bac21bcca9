package static_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemadeck/core/router"
	"github.com/dmitrymomot/schemadeck/core/static"
)

func TestFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"public/css/site.css":    {Data: []byte("body{}")},
		"public/js/app.js":       {Data: []byte("alert(1)")},
		"public/docs/index.html": {Data: []byte("<h1>docs</h1>")},
	}

	r := router.New[*router.Context]()
	r.Get("/assets/*", static.FS[*router.Context](files,
		static.WithSubFS("public"),
		static.WithFSStripPrefix("/assets"),
		static.WithMaxAge(time.Hour),
	))

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/assets/css/site.css", http.StatusOK, "body{}"},
		{"/assets/js/app.js", http.StatusOK, "alert(1)"},
		{"/assets/docs/", http.StatusOK, "<h1>docs</h1>"},
		{"/assets/css/", http.StatusNotFound, ""},
		{"/assets/missing.txt", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
				assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestFSPanicsOnBadSubPath(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		static.FS[*router.Context](fstest.MapFS{}, static.WithSubFS("../up"))
	})
}
