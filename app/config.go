package app

import (
	"time"

	"github.com/dmitrymomot/schemadeck/core/server"
	"github.com/dmitrymomot/schemadeck/integration/database/redis"
	"github.com/dmitrymomot/schemadeck/pkg/ratelimiter"
)

// Config is loaded from the environment with config.Load.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"schemadeck"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// PublicURL is encoded in the presenter QR code.
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080/"`

	// HtmxSource is the script URL for htmx; its origin is added to the CSP.
	HtmxSource string `env:"HTMX_SOURCE" envDefault:"https://unpkg.com/htmx.org@2.0.4"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	RateLimit RateLimitConfig
	Server    server.Config
	Redis     redis.Config
}

type RateLimitConfig struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"120"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"120"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

func (c RateLimitConfig) bucket() ratelimiter.Config {
	return ratelimiter.Config{
		Capacity:       c.Capacity,
		RefillRate:     c.RefillRate,
		RefillInterval: c.RefillInterval,
	}
}

// IsDevelopment reports whether the app runs locally.
func (c Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

// DefaultConfig mirrors the envDefault values, for tests and embedding.
func DefaultConfig() Config {
	return Config{
		AppName:    "schemadeck",
		Env:        "development",
		LogLevel:   "info",
		PublicURL:  "http://localhost:8080/",
		HtmxSource: "https://unpkg.com/htmx.org@2.0.4",
		BcryptCost: 10,
		RateLimit: RateLimitConfig{
			Capacity:       120,
			RefillRate:     120,
			RefillInterval: time.Minute,
		},
		Server: server.DefaultConfig(),
	}
}
