package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

// wildcardParam is the ServeMux wildcard name used for a trailing "*".
const wildcardParam = "wildcard"

var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// endpoint groups the handlers registered for a single path pattern.
type endpoint[C handler.Context] struct {
	pattern  string
	params   []string
	handlers map[string]handler.HandlerFunc[C]
	any      handler.HandlerFunc[C]
}

func (e *endpoint[C]) lookup(method string) (handler.HandlerFunc[C], bool) {
	if h, ok := e.handlers[method]; ok {
		return h, true
	}
	if method == http.MethodHead {
		if h, ok := e.handlers[http.MethodGet]; ok {
			return h, true
		}
	}
	if e.any != nil {
		return e.any, true
	}
	return nil, false
}

func (e *endpoint[C]) allowed() []string {
	allowed := make([]string, 0, len(e.handlers))
	for _, method := range knownMethods {
		if _, ok := e.handlers[method]; ok {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func (e *endpoint[C]) paramsFrom(r *http.Request) map[string]string {
	if len(e.params) == 0 {
		return nil
	}
	params := make(map[string]string, len(e.params))
	for _, name := range e.params {
		if name == wildcardParam {
			params["*"] = r.PathValue(name)
		}
		params[name] = r.PathValue(name)
	}
	return params
}

// mux implements Router. Inline routers created by With, Group and Route
// share the root's ServeMux and differ only in prefix and middleware.
type mux[C handler.Context] struct {
	root        *mux[C]
	parent      *mux[C]
	inline      bool
	prefix      string
	middlewares []handler.Middleware[C]

	// root only
	serveMux     *http.ServeMux
	endpoints    map[string]*endpoint[C]
	routes       []Route
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	routed       bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		serveMux:     http.NewServeMux(),
		endpoints:    make(map[string]*endpoint[C]),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	m.root = m

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	// The root pattern only catches requests no other pattern matched.
	m.serveMux.HandleFunc("/", m.notFound)

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.root.serveMux.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodOptions, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(knownMethods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		m.handle(method, pattern, h)
	}
}

// Use appends global middleware. It must be called before any route is registered.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.inline {
		m.middlewares = append(m.middlewares, middlewares...)
		return
	}
	if m.routed {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With returns an inline router that applies extra middleware to its routes.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		root:        m.root,
		parent:      m,
		inline:      true,
		prefix:      m.prefix,
		middlewares: middlewares,
	}
}

// Group registers routes on an inline router without a prefix.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route registers routes under a path prefix.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	im := &mux[C]{
		root:   m.root,
		parent: m,
		inline: true,
		prefix: m.prefix + strings.TrimSuffix(pattern, "/"),
	}
	fn(im)
	return im
}

// Mount delegates every request under pattern to sub, with the prefix stripped.
// The sub-router inherits the error handler, logger and context factory.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	subMux, ok := sub.(*mux[C])
	if !ok {
		panic("router: can only mount routers created by router.New")
	}
	pattern = strings.TrimSuffix(strings.TrimSuffix(pattern, "*"), "/")
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: cannot mount at '%s'", ErrInvalidPattern, pattern))
	}

	root := m.root
	subRoot := subMux.root
	subRoot.errorHandler = root.errorHandler
	subRoot.logger = root.logger
	subRoot.newContext = root.newContext

	prefix := m.prefix + pattern
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
		r2.URL.RawPath = ""
		if r2.URL.Path == "" {
			r2.URL.Path = "/"
		}
		subRoot.ServeHTTP(w, r2)
	})
	root.serveMux.Handle(prefix, h)
	root.serveMux.Handle(prefix+"/", h)

	for _, rt := range subRoot.routes {
		root.routes = append(root.routes, Route{Method: rt.Method, Pattern: prefix + rt.Pattern})
	}
	root.routed = true
}

// Routes returns the registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	return slices.Clone(m.root.routes)
}

// handle registers h for method on pattern. An empty method matches any method.
func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if h == nil {
		panic(fmt.Errorf("%w: nil handler for '%s'", ErrInvalidPattern, pattern))
	}

	full := m.prefix + pattern
	if m.prefix != "" && pattern == "/" {
		full = m.prefix
	}

	if m.inline {
		h = chain(m.inlineMiddlewares(), h)
	}

	root := m.root
	root.routed = true

	path := translatePattern(full)
	ep, ok := root.endpoints[path]
	if !ok {
		ep = &endpoint[C]{
			pattern:  full,
			params:   patternParams(path),
			handlers: make(map[string]handler.HandlerFunc[C]),
		}
		root.endpoints[path] = ep
		root.serveMux.HandleFunc(path, root.dispatch(ep))
	}

	if method == "" {
		ep.any = h
		root.routes = append(root.routes, Route{Method: "*", Pattern: full})
		return
	}
	ep.handlers[method] = h
	root.routes = append(root.routes, Route{Method: method, Pattern: full})
}

// inlineMiddlewares collects middleware from the chain of inline parents, outermost first.
func (m *mux[C]) inlineMiddlewares() []handler.Middleware[C] {
	var all []handler.Middleware[C]
	for curr := m; curr != nil && curr.inline; curr = curr.parent {
		if len(curr.middlewares) > 0 {
			all = append(slices.Clone(curr.middlewares), all...)
		}
	}
	return all
}

func (m *mux[C]) dispatch(ep *endpoint[C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.newContext(ww, r, ep.paramsFrom(r))
		defer m.recoverPanic(ctx, ww, r)

		fn, ok := ep.lookup(r.Method)
		if !ok {
			ww.Header().Set("Allow", strings.Join(ep.allowed(), ", "))
			m.errorHandler(ctx, ErrMethodNotAllowed)
			return
		}

		if len(m.middlewares) > 0 {
			fn = chain(m.middlewares, fn)
		}

		resp := fn(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	}
}

func (m *mux[C]) notFound(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r, nil)
	defer m.recoverPanic(ctx, ww, r)
	m.errorHandler(ctx, ErrNotFound)
}

func (m *mux[C]) recoverPanic(ctx C, ww *responseWriter, r *http.Request) {
	p := recover()
	if p == nil {
		return
	}
	err := &panicError{value: p, stack: debug.Stack()}
	if ww.Written() {
		m.logger.Error("panic after response written",
			"value", err.value,
			"stack", string(err.stack),
			"path", r.URL.Path,
			"method", r.Method,
			"status", ww.Status(),
		)
		return
	}
	m.errorHandler(ctx, err)
}

// translatePattern converts router patterns to ServeMux patterns.
// "/" becomes an exact match, a trailing slash stays exact, and a trailing
// "*" becomes a named remainder wildcard.
func translatePattern(pattern string) string {
	switch {
	case pattern == "/":
		return "/{$}"
	case strings.HasSuffix(pattern, "/*"):
		return strings.TrimSuffix(pattern, "*") + "{" + wildcardParam + "...}"
	case strings.HasSuffix(pattern, "/"):
		return pattern + "{$}"
	}
	return pattern
}

// patternParams returns the wildcard names declared in a ServeMux pattern.
func patternParams(pattern string) []string {
	var params []string
	for seg := range strings.SplitSeq(pattern, "/") {
		if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' {
			continue
		}
		name := strings.TrimSuffix(seg[1:len(seg)-1], "...")
		if name == "$" {
			continue
		}
		params = append(params, name)
	}
	return params
}
