// Package handler defines the function types shared by the router, the
// response helpers and the middleware packages.
//
// A handler receives a request context and returns a Response. The Response
// is executed later by the router, so middleware can wrap it before any byte
// is written to the client.
package handler

import "net/http"

// Response writes headers, status and body for a request.
// A returned error is passed to the router's ErrorHandler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request using a custom context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders errors returned by handlers or responses.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a HandlerFunc.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
