package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory bounds the in-memory part of a multipart form.
const DefaultMaxMemory = 10 << 20

// Form binds url-encoded and multipart form values.
//
// Supported field kinds are string, bool, the integer and float kinds,
// pointers to them and slices of them. Checkbox values "on", "yes" and "1"
// bind to true. Fields without a submitted value keep their zero value,
// so an unchecked checkbox stays false.
func Form() Binder {
	return func(r *http.Request, v any) error {
		mt, params, err := mediaType(r)
		if err != nil {
			return fmt.Errorf("%w: expected a form content type", err)
		}

		var values map[string][]string
		switch mt {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.PostForm
		case "multipart/form-data":
			if !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid multipart boundary", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value
		default:
			return fmt.Errorf("%w: got %s, expected a form content type", ErrUnsupportedMediaType, mt)
		}

		return bindToStruct(v, "form", values, ErrFailedToParseForm)
	}
}

func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 {
		return false
	}
	return !strings.ContainsAny(boundary, "\x00\r\n")
}
