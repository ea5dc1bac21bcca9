// Package app wires the presentation site: slides, the two registration
// forms, the playground and the operational endpoints.
package app

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/schemadeck/core/health"
	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/core/router"
	"github.com/dmitrymomot/schemadeck/core/server"
	"github.com/dmitrymomot/schemadeck/integration/database/redis"
	"github.com/dmitrymomot/schemadeck/internal/registration"
	"github.com/dmitrymomot/schemadeck/internal/slides"
	"github.com/dmitrymomot/schemadeck/pkg/qrcode"
	"github.com/dmitrymomot/schemadeck/pkg/ratelimiter"
)

// App owns every long-lived dependency of the site.
type App struct {
	config     Config
	logger     *slog.Logger
	deck       *slides.Deck
	templates  *templates
	submitters map[registration.Kind]*registration.Submitter
	limiter    *ratelimiter.Bucket
	memStore   *ratelimiter.MemoryStore
	redis      *goredis.Client
	server     *server.Server
	qr         template.URL
	router     router.Router[*Context]
}

type AppOption func(*App) error

func WithLogger(log *slog.Logger) AppOption {
	return func(a *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = log
		return nil
	}
}

// WithRedis shares rate limit buckets through client and adds it to the
// readiness check.
func WithRedis(client *goredis.Client) AppOption {
	return func(a *App) error {
		if client == nil {
			return errors.New("redis client cannot be nil")
		}
		a.redis = client
		return nil
	}
}

func WithDeck(deck *slides.Deck) AppOption {
	return func(a *App) error {
		if deck == nil {
			return errors.New("deck cannot be nil")
		}
		a.deck = deck
		return nil
	}
}

func WithServer(s *server.Server) AppOption {
	return func(a *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		a.server = s
		return nil
	}
}

// New builds the application from cfg. Nothing listens until Run.
func New(cfg Config, opts ...AppOption) (*App, error) {
	a := &App{
		config: cfg,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.deck == nil {
		deck, err := slides.Load()
		if err != nil {
			return nil, err
		}
		a.deck = deck
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	a.templates = tmpl

	a.submitters = make(map[registration.Kind]*registration.Submitter, len(registration.Kinds))
	for _, kind := range registration.Kinds {
		v, err := registration.NewValidator(kind)
		if err != nil {
			return nil, err
		}
		a.submitters[kind] = registration.NewSubmitter(v,
			registration.WithBcryptCost(cfg.BcryptCost),
			registration.WithSubmitLogger(a.logger),
		)
	}

	var store ratelimiter.Store
	if a.redis != nil {
		store = ratelimiter.NewRedisStore(a.redis, ratelimiter.WithKeyPrefix(cfg.AppName+":ratelimit:"))
	} else {
		a.memStore = ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(a.logger))
		store = a.memStore
	}
	if a.limiter, err = ratelimiter.NewBucket(store, cfg.RateLimit.bucket()); err != nil {
		return nil, err
	}

	if cfg.PublicURL != "" {
		uri, err := qrcode.GenerateBase64Image(cfg.PublicURL, 320)
		if err != nil {
			a.logger.Warn("qr code disabled", logger.Component("qrcode"), logger.Error(err))
		} else {
			a.qr = template.URL(uri)
		}
	}

	if a.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.server = s
	}

	a.router = a.routes()
	return a, nil
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP and sweeps the in-memory rate limiter until ctx is done.
// It fits errgroup.Go.
func (a *App) Run(ctx context.Context) func() error {
	return func() error {
		eg, ctx := errgroup.WithContext(ctx)
		if a.memStore != nil {
			eg.Go(a.memStore.Run(ctx))
		}
		eg.Go(a.server.Run(ctx, a.router))

		a.logger.InfoContext(ctx, "application started",
			logger.Component("app"),
			slog.String("env", a.config.Env),
			slog.Int("routes", len(a.router.Routes())),
		)
		return eg.Wait()
	}
}

// Close releases the redis client, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

func (a *App) readinessChecks() []health.Check {
	if a.redis == nil {
		return nil
	}
	return []health.Check{redis.Healthcheck(a.redis)}
}

// scriptOrigin returns the scheme and host of the htmx source for the CSP.
func scriptOrigin(src string) string {
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
