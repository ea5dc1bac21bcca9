package app

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/core/response"
)

type writtenReporter interface {
	Written() bool
}

// errorHandler renders handler errors: JSON under /api/, a plain message
// for htmx swaps and the error page for everything else.
func (a *App) errorHandler(ctx *Context, err error) {
	if w, ok := ctx.ResponseWriter().(writtenReporter); ok && w.Written() {
		a.logger.WarnContext(ctx, "error after response written", logger.Error(err))
		return
	}

	httpErr := response.AsHTTPError(err)
	if httpErr.Status >= http.StatusInternalServerError {
		a.logger.ErrorContext(ctx, "request error",
			logger.Error(err),
			logger.Path(ctx.Path()),
			logger.StatusCode(httpErr.Status),
		)
		// Internal details stay in the log.
		httpErr.Message = http.StatusText(httpErr.Status)
		httpErr.Details = nil
	}

	resp := a.errorPage(ctx, httpErr)
	switch {
	case strings.HasPrefix(ctx.Path(), "/api/"):
		resp = response.JSONWithStatus(httpErr, httpErr.Status)
	case ctx.IsHTMX():
		resp = response.StringWithStatus(httpErr.Message, httpErr.Status)
	}
	response.Render(ctx, resp)
}

func (a *App) errorPage(ctx *Context, e response.HTTPError) handler.Response {
	title := http.StatusText(e.Status)
	message := e.Message
	if message == title {
		message = errorMessage(e.Status)
	}
	return a.page(ctx, a.templates.error, title, errorView{
		Status:  e.Status,
		Title:   title,
		Message: message,
	}, e.Status)
}

func errorMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "The page you are looking for does not exist."
	case http.StatusMethodNotAllowed:
		return "This page does not accept that kind of request."
	case http.StatusTooManyRequests:
		return "Too many requests. Please slow down and try again in a minute."
	case http.StatusRequestEntityTooLarge:
		return "The submitted form is too large."
	default:
		return "Something went wrong. Please try again."
	}
}
