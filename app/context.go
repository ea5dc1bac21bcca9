package app

import (
	"net/http"

	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/router"
)

// Context is the request context every handler receives.
type Context struct {
	*router.Context
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}

// IsHTMX reports whether the request came from htmx and expects a fragment.
func (c *Context) IsHTMX() bool {
	return response.IsHTMXRequest(c.Request())
}

// Path is the request path, used to mark the active navigation link.
func (c *Context) Path() string {
	return c.Request().URL.Path
}
