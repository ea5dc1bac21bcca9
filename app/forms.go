package app

import (
	"net/http"

	"github.com/dmitrymomot/schemadeck/core/binder"
	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/sanitizer"
	"github.com/dmitrymomot/schemadeck/internal/registration"
)

// AcceptedEvent is the HX-Trigger event fired when a registration passes.
const AcceptedEvent = "registration-accepted"

func (a *App) submitter(ctx *Context) (*registration.Submitter, registration.Kind, error) {
	kind := registration.Kind(ctx.Param("kind"))
	sub, ok := a.submitters[kind]
	if !ok {
		return nil, "", response.ErrNotFound.WithMessage("Unknown form kind.").WithError(registration.ErrUnknownKind)
	}
	return sub, kind, nil
}

// bindValues decodes the posted form, or JSON for the API, and sanitizes it.
func bindValues(ctx *Context, bind binder.Binder) (registration.FormValues, error) {
	var v registration.FormValues
	if err := bind(ctx.Request(), &v); err != nil {
		return v, response.ErrBadRequest.WithError(err)
	}
	if err := sanitizer.SanitizeStruct(&v); err != nil {
		return v, err
	}
	return v, nil
}

func (a *App) renderForm(ctx *Context, kind registration.Kind, st *registration.State, banner string, status int) handler.Response {
	view := newFormView(kind, st, banner)
	if ctx.IsHTMX() {
		return response.TemplateNameWithStatus(a.templates.form, "registration-form", view, status)
	}
	return a.page(ctx, a.templates.form, kindLabel(kind)+" Form", view, status)
}

func (a *App) showForm(ctx *Context) handler.Response {
	_, kind, err := a.submitter(ctx)
	if err != nil {
		return response.Error(err)
	}
	return a.renderForm(ctx, kind, registration.NewState(registration.FormValues{}), "", http.StatusOK)
}

// submitForm validates the whole form. Failures answer 422. htmx clients
// get the error slots as out-of-band swaps, so typed values (passwords
// included) stay in the inputs, and success fires AcceptedEvent. Everyone
// else gets the re-rendered page, with a banner on success.
func (a *App) submitForm(ctx *Context) handler.Response {
	sub, kind, err := a.submitter(ctx)
	if err != nil {
		return response.Error(err)
	}
	values, err := bindValues(ctx, binder.Form())
	if err != nil {
		return response.Error(err)
	}

	st := registration.NewState(values)
	out, err := sub.Submit(ctx, st)
	if err != nil {
		return response.Error(err)
	}

	status := http.StatusOK
	if !out.Accepted {
		status = http.StatusUnprocessableEntity
	}
	if !ctx.IsHTMX() {
		return a.renderForm(ctx, kind, st, out.Message, status)
	}

	slots := response.TemplWithStatus(FieldErrorsOOB(st.Errors()), status)
	if !out.Accepted {
		return slots
	}
	return response.WithHTMX(slots,
		response.TriggerEvent(AcceptedEvent, map[string]string{"message": out.Message}),
	)
}

// validateField is the eager check run when an input loses focus. The
// whole form is posted so cross-field rules see their dependencies.
func (a *App) validateField(ctx *Context) handler.Response {
	sub, _, err := a.submitter(ctx)
	if err != nil {
		return response.Error(err)
	}
	field, err := registration.ParseField(ctx.Param("field"))
	if err != nil {
		return response.Error(response.ErrNotFound.WithMessage("Unknown field.").WithError(err))
	}
	values, err := bindValues(ctx, binder.Form())
	if err != nil {
		return response.Error(err)
	}

	st := registration.NewState(values)
	st.SetFieldErrors(field, sub.Validator().ValidateField(st.Values(), field))
	return response.Templ(FieldError(field, st.Error(field)))
}

type apiResult struct {
	Success     bool                       `json:"success"`
	Data        *registration.Registration `json:"data,omitempty"`
	FieldErrors map[string][]string        `json:"fieldErrors,omitempty"`
}

// validateAPI validates a JSON body with the chosen validator and reports
// the outcome as JSON. Nothing is stored.
func (a *App) validateAPI(ctx *Context) handler.Response {
	sub, _, err := a.submitter(ctx)
	if err != nil {
		return response.Error(err)
	}
	values, err := bindValues(ctx, binder.JSON())
	if err != nil {
		return response.Error(err)
	}

	res := sub.Validator().Validate(values)
	if !res.OK() {
		return response.JSONWithStatus(apiResult{FieldErrors: res.Errors.Strings()}, http.StatusUnprocessableEntity)
	}
	return response.JSON(apiResult{Success: true, Data: res.Data})
}
