package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

// Response headers understood by the htmx client.
const (
	HeaderHXLocation           = "HX-Location"
	HeaderHXPushURL            = "HX-Push-Url"
	HeaderHXRedirect           = "HX-Redirect"
	HeaderHXRefresh            = "HX-Refresh"
	HeaderHXReswap             = "HX-Reswap"
	HeaderHXRetarget           = "HX-Retarget"
	HeaderHXTrigger            = "HX-Trigger"
	HeaderHXTriggerAfterSettle = "HX-Trigger-After-Settle"
)

// Request headers sent by the htmx client.
const (
	HeaderHXRequest     = "HX-Request"
	HeaderHXBoosted     = "HX-Boosted"
	HeaderHXCurrentURL  = "HX-Current-URL"
	HeaderHXTarget      = "HX-Target"
	HeaderHXTriggerName = "HX-Trigger-Name"
)

// HTMXOption sets one htmx response header.
type HTMXOption func(*htmxConfig)

type htmxConfig struct {
	trigger            map[string]any
	triggerAfterSettle map[string]any
	pushURL            string
	redirect           string
	refresh            bool
	reswap             string
	retarget           string
	location           string
}

// WithHTMX adds htmx response headers to response. Headers are only sent to
// htmx requests; plain browser requests get the response unchanged.
func WithHTMX(response handler.Response, opts ...HTMXOption) handler.Response {
	if response == nil || len(opts) == 0 {
		return response
	}

	cfg := &htmxConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		if IsHTMXRequest(r) {
			cfg.apply(w.Header())
		}
		return response(w, r)
	}
}

func (cfg *htmxConfig) apply(h http.Header) {
	set := func(key, value string) {
		if value != "" {
			h.Set(key, value)
		}
	}
	setJSON := func(key string, events map[string]any) {
		if len(events) == 0 {
			return
		}
		if data, err := json.Marshal(events); err == nil {
			h.Set(key, string(data))
		}
	}

	set(HeaderHXLocation, cfg.location)
	set(HeaderHXPushURL, cfg.pushURL)
	set(HeaderHXRedirect, cfg.redirect)
	set(HeaderHXReswap, cfg.reswap)
	set(HeaderHXRetarget, cfg.retarget)
	if cfg.refresh {
		h.Set(HeaderHXRefresh, "true")
	}
	setJSON(HeaderHXTrigger, cfg.trigger)
	setJSON(HeaderHXTriggerAfterSettle, cfg.triggerAfterSettle)
}

// TriggerEvent adds a client event with a JSON detail to HX-Trigger.
func TriggerEvent(name string, detail any) HTMXOption {
	return func(cfg *htmxConfig) {
		if cfg.trigger == nil {
			cfg.trigger = make(map[string]any)
		}
		cfg.trigger[name] = detail
	}
}

// TriggerAfterSettle adds a client event fired once the swap has settled.
func TriggerAfterSettle(name string, detail any) HTMXOption {
	return func(cfg *htmxConfig) {
		if cfg.triggerAfterSettle == nil {
			cfg.triggerAfterSettle = make(map[string]any)
		}
		cfg.triggerAfterSettle[name] = detail
	}
}

func PushURL(url string) HTMXOption {
	return func(cfg *htmxConfig) { cfg.pushURL = url }
}

func HTMXRedirect(url string) HTMXOption {
	return func(cfg *htmxConfig) { cfg.redirect = url }
}

func Refresh() HTMXOption {
	return func(cfg *htmxConfig) { cfg.refresh = true }
}

// Reswap overrides hx-swap, e.g. Reswap("outerHTML", "show:top").
func Reswap(method string, modifiers ...string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.reswap = strings.Join(append([]string{method}, modifiers...), " ")
	}
}

// Retarget overrides hx-target with a CSS selector.
func Retarget(selector string) HTMXOption {
	return func(cfg *htmxConfig) { cfg.retarget = selector }
}

func Location(url string) HTMXOption {
	return func(cfg *htmxConfig) { cfg.location = url }
}

// IsHTMXRequest reports whether r was issued by htmx.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsHTMXBoosted reports whether r comes from an hx-boost link or form.
func IsHTMXBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}
