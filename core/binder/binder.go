// Package binder decodes request bodies into tagged structs.
//
// Form reads application/x-www-form-urlencoded and multipart/form-data bodies
// into fields tagged `form:"name"`. JSON decodes application/json bodies
// strictly. Both strip NUL bytes, line breaks and other control characters
// from every bound string.
package binder

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Binder decodes r into v, which must be a non-nil pointer to a struct.
type Binder func(r *http.Request, v any) error

// mediaType returns the media type of r without parameters.
func mediaType(r *http.Request) (string, map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", nil, ErrMissingContentType
	}
	mt, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	return strings.ToLower(mt), params, nil
}
