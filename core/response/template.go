package response

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"sync"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

var errNilTemplate = errors.New("template is nil")

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	// Buffers grown past 1 MiB are not returned to the pool.
	if buf.Cap() > 1<<20 {
		return
	}
	bufferPool.Put(buf)
}

// Template executes tmpl into a buffer and writes it with 200 OK.
// Nothing is written when execution fails.
func Template(tmpl *template.Template, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, "", data, http.StatusOK)
}

// TemplateWithStatus is Template with a custom status code.
func TemplateWithStatus(tmpl *template.Template, data any, status int) handler.Response {
	return TemplateNameWithStatus(tmpl, "", data, status)
}

// TemplateName executes the named template from a set.
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, name, data, http.StatusOK)
}

// TemplateNameWithStatus executes the named template with a custom status.
// An empty name executes tmpl itself.
func TemplateNameWithStatus(tmpl *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return errNilTemplate
		}

		buf := getBuffer()
		defer putBuffer(buf)

		var err error
		if name != "" {
			err = tmpl.ExecuteTemplate(buf, name, data)
		} else {
			err = tmpl.Execute(buf, data)
		}
		if err != nil {
			return err
		}
		return write(w, "text/html; charset=utf-8", status, buf.Bytes())
	}
}
