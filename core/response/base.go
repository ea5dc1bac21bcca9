// Package response builds handler.Response values for HTML pages, templ
// fragments, JSON, redirects and errors. Every helper sets the content type
// before writing the status, so wrapping decorators can still add headers.
package response

import (
	"net/http"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

// Render executes resp immediately. Errors are written as plain 500 responses.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

func write(w http.ResponseWriter, contentType string, status int, body []byte) error {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(body) == 0 {
		return nil
	}
	_, err := w.Write(body)
	return err
}

// String writes text/plain with 200 OK.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus writes text/plain with the given status.
func StringWithStatus(content string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return write(w, "text/plain; charset=utf-8", status, []byte(content))
	}
}

// HTML writes a raw HTML string with 200 OK.
func HTML(content string) handler.Response {
	return HTMLWithStatus(content, http.StatusOK)
}

// HTMLWithStatus writes a raw HTML string with the given status.
func HTMLWithStatus(content string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return write(w, "text/html; charset=utf-8", status, []byte(content))
	}
}

// Bytes writes content with a custom content type and 200 OK.
func Bytes(content []byte, contentType string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return write(w, contentType, http.StatusOK, content)
	}
}

// NoContent writes 204 No Content.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status writes an empty body with code.
func Status(code int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return write(w, "", code, nil)
	}
}
