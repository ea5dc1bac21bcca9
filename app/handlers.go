package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/schemadeck/core/binder"
	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/validator"
	"github.com/dmitrymomot/schemadeck/internal/slides"
	"github.com/dmitrymomot/schemadeck/pkg/qrcode"
)

func (a *App) home(ctx *Context) handler.Response {
	return a.page(ctx, a.templates.home, "Home", homeView{
		Home:      a.deck.Home,
		QR:        a.qr,
		PublicURL: a.config.PublicURL,
	}, http.StatusOK)
}

func (a *App) findSlide(slug string) (slides.Slide, error) {
	s, err := a.deck.Slide(slug)
	if errors.Is(err, slides.ErrSlideNotFound) {
		return s, response.ErrNotFound.WithMessage("There is no slide called " + slug + ".").WithError(err)
	}
	return s, err
}

func (a *App) viewSlide(s slides.Slide) slideView {
	return slideView{Slide: s, PlaygroundAction: s.Path() + "/playground"}
}

func (a *App) slide(ctx *Context) handler.Response {
	s, err := a.findSlide(ctx.Param("slug"))
	if err != nil {
		return response.Error(err)
	}
	return a.page(ctx, a.templates.slide, s.Title, a.viewSlide(s), http.StatusOK)
}

type playgroundRequest struct {
	Value string `form:"value" validate:"max:200"`
}

// playground answers with the result fragment for htmx and with the whole
// slide otherwise.
func (a *App) playground(ctx *Context) handler.Response {
	s, err := a.findSlide(ctx.Param("slug"))
	if err != nil {
		return response.Error(err)
	}
	if !s.HasPlayground() {
		return response.Error(response.ErrNotFound)
	}

	var req playgroundRequest
	if err := binder.Form()(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	res, status := playgroundResult(req)
	if ctx.IsHTMX() {
		return response.TemplWithStatus(PlaygroundOutput(res), status)
	}

	view := a.viewSlide(s)
	view.PlaygroundInput = req.Value
	view.Playground = &res
	return a.page(ctx, a.templates.slide, s.Title, view, status)
}

// playgroundResult runs the demo schema on input the request rules accept.
// Oversized input is answered with 422 without reaching the schema.
func playgroundResult(req playgroundRequest) (slides.PlaygroundResult, int) {
	err := validator.ValidateStruct(&req)
	if err == nil {
		return slides.RunPlayground(req.Value), http.StatusOK
	}
	msg := "Input is invalid"
	if validator.IsValidationError(err) {
		if msgs := validator.ExtractValidationErrors(err).Get("value"); len(msgs) > 0 {
			msg = "Input " + msgs[0]
		}
	}
	return slides.PlaygroundResult{Message: msg}, http.StatusUnprocessableEntity
}

func (a *App) qrCode(ctx *Context) handler.Response {
	if a.config.PublicURL == "" {
		return response.Error(response.ErrNotFound)
	}
	png, err := qrcode.Generate(a.config.PublicURL, 512)
	if err != nil {
		return response.Error(response.ErrInternalServerError.WithError(err))
	}
	return response.WithCache(response.Bytes(png, "image/png"), time.Hour)
}
