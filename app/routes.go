package app

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/health"
	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/core/response"
	"github.com/dmitrymomot/schemadeck/core/router"
	"github.com/dmitrymomot/schemadeck/core/static"
	"github.com/dmitrymomot/schemadeck/middleware"
)

func (a *App) routes() router.Router[*Context] {
	security := middleware.SiteSecurity
	security.IsDevelopment = a.config.IsDevelopment()
	if origin := scriptOrigin(a.config.HtmxSource); origin != "" {
		security.ScriptSources = []string{origin}
	}

	quiet := func(ctx handler.Context) bool {
		p := ctx.Request().URL.Path
		return p == "/live" || p == "/ready" || strings.HasPrefix(p, "/assets/")
	}

	r := router.New[*Context](
		router.WithContextFactory[*Context](newContext),
		router.WithErrorHandler[*Context](a.errorHandler),
		router.WithLogger[*Context](a.logger.With(logger.Component("router"))),
		router.WithMiddleware[*Context](
			middleware.RequestID[*Context](),
			middleware.ClientIP[*Context](),
			middleware.LoggingWithConfig[*Context](middleware.LoggingConfig{
				Logger: a.logger,
				Skip:   quiet,
			}),
			middleware.SecurityHeadersWithConfig[*Context](security),
		),
	)

	r.Get("/live", health.Liveness[*Context])
	r.Get("/ready", health.Readiness[*Context](a.logger, a.readinessChecks()...))
	r.Get("/assets/*", static.FS[*Context](assetFS,
		static.WithSubFS("assets"),
		static.WithFSStripPrefix("/assets"),
		static.WithMaxAge(time.Hour),
	))
	r.Get("/qr.png", a.qrCode)

	r.Get("/", a.home)
	r.Get("/presentation/{slug}", a.slide)
	r.Get("/form/{kind}", a.showForm)

	r.Group(func(post router.Router[*Context]) {
		post.Use(
			middleware.BodyLimit[*Context](),
			middleware.RateLimit[*Context](middleware.RateLimitConfig{
				Limiter:    a.limiter,
				SetHeaders: true,
			}),
		)
		post.Post("/presentation/{slug}/playground", a.playground)
		post.Post("/form/{kind}", a.submitForm)
		post.Post("/form/{kind}/validate/{field}", a.validateField)
		post.Post("/api/validate/{kind}", a.validateAPI)
	})

	return r
}

func (a *App) page(ctx *Context, t *template.Template, title string, data any, status int) handler.Response {
	if status == 0 {
		status = http.StatusOK
	}
	return response.TemplateWithStatus(t, page{
		AppName:    a.config.AppName,
		Title:      title,
		HtmxSource: a.config.HtmxSource,
		Nav:        buildNav(a.deck, ctx.Path()),
		Data:       data,
	}, status)
}
