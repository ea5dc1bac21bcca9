package response

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

// templComponent matches templ.Component without importing the templ runtime.
type templComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// Templ renders a templ component with 200 OK using the request context.
func Templ(component templComponent) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders a templ component with a custom status.
// The status is only sent once rendering into the buffer succeeded.
func TemplWithStatus(component templComponent, status int) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		buf := getBuffer()
		defer putBuffer(buf)

		if err := component.Render(r.Context(), buf); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return write(w, "text/html; charset=utf-8", status, buf.Bytes())
	}
}
