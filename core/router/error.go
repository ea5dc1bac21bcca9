package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrMethodNotAllowed = statusError{errors.New("method not allowed"), http.StatusMethodNotAllowed}
	ErrNotFound         = statusError{errors.New("not found"), http.StatusNotFound}
	ErrNilResponse      = errors.New("nil response")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilRouter        = errors.New("nil router")
	ErrNilSubrouter     = errors.New("nil subrouter")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
)

// statusError attaches an HTTP status to routing errors so error handlers
// can map them without importing this package.
type statusError struct {
	error
	status int
}

func (e statusError) StatusCode() int { return e.status }

func (e statusError) Unwrap() error { return e.error }

type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler writes err as plain text, using its StatusCode when available.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}

// PanicError is passed to the error handler when a handler panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
