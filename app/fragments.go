package app

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/schemadeck/internal/registration"
	"github.com/dmitrymomot/schemadeck/internal/slides"
)

// fieldErrorID is the element id the eager check swaps.
func fieldErrorID(f registration.Field) string {
	return "error-" + f.String()
}

// FieldError renders the message slot under an input. The element is always
// present, empty when the field is valid, so htmx has a stable swap target.
func FieldError(f registration.Field, msg string) templ.Component {
	return fieldErrorSlot(f, msg, false)
}

// FieldErrorsOOB renders the slot of every field as an out-of-band swap, so
// a submit updates the messages without touching the inputs.
func FieldErrorsOOB(errs registration.FieldErrors) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, f := range registration.Fields() {
			if err := fieldErrorSlot(f, errs.First(f), true).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func fieldErrorSlot(f registration.Field, msg string, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		attrs := ""
		if oob {
			attrs = ` hx-swap-oob="true"`
		}
		_, err := io.WriteString(w, `<p id="`+templ.EscapeString(fieldErrorID(f))+
			`" class="field-error" role="alert" aria-live="polite"`+attrs+`>`+
			templ.EscapeString(msg)+`</p>`)
		return err
	})
}

// PlaygroundOutput renders the playground verdict.
func PlaygroundOutput(res slides.PlaygroundResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "playground-result invalid"
		if res.Valid {
			class = "playground-result valid"
		}
		_, err := io.WriteString(w, `<p id="playground-result" class="`+class+`" aria-live="polite">`+
			templ.EscapeString(res.Message)+`</p>`)
		return err
	})
}

// Banner is the success notice shown to clients without JavaScript.
func Banner(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if msg == "" {
			return nil
		}
		_, err := io.WriteString(w, `<div class="banner" role="status">`+templ.EscapeString(msg)+`</div>`)
		return err
	})
}

// templFuncs exposes the fragments to html/template pages so both render
// paths produce the same markup.
func templFuncs() template.FuncMap {
	render := func(c templ.Component) (template.HTML, error) {
		return templ.ToGoHTML(context.Background(), c)
	}
	return template.FuncMap{
		"fieldError": func(f registration.Field, msg string) (template.HTML, error) {
			return render(FieldError(f, msg))
		},
		"playground": func(res *slides.PlaygroundResult) (template.HTML, error) {
			if res == nil {
				return `<p id="playground-result" class="playground-result" aria-live="polite"></p>`, nil
			}
			return render(PlaygroundOutput(*res))
		},
		"banner": func(msg string) (template.HTML, error) {
			return render(Banner(msg))
		},
	}
}
