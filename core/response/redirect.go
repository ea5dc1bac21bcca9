package response

import (
	"net/http"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

// Redirect sends 302 Found, or HX-Location with 200 OK to htmx clients.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther sends 303 See Other, the usual answer to a POST.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus redirects with a custom 3xx status.
// htmx clients receive HX-Location instead because XHR follows redirects silently.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if IsHTMXRequest(r) {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}
		if status < 300 || status > 399 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}
