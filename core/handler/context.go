package handler

import (
	"context"
	"net/http"
)

// Context is the contract every request context satisfies.
// It embeds context.Context so it can be passed to any blocking call.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
