// Package middleware holds the request middleware shared by every route:
// request IDs, client IP resolution, access logging, security headers, body
// size limits and rate limiting.
//
// Each middleware comes in two forms, a zero-config constructor and a
// WithConfig variant. All of them are generic over the application context:
//
//	r := router.New[*app.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*app.Context](),
//			middleware.ClientIP[*app.Context](),
//			middleware.LoggingWithLogger[*app.Context](log),
//			middleware.SecurityHeaders[*app.Context](),
//		),
//	)
//
// Every config carries a Skip func that bypasses the middleware for
// matching requests.
package middleware
