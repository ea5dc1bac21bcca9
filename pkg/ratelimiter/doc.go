// Package ratelimiter implements token bucket rate limiting over a pluggable
// Store.
//
// A bucket starts full at Config.Capacity tokens and gains Config.RefillRate
// tokens every Config.RefillInterval, never exceeding capacity. Each Allow
// consumes one token; AllowN consumes n. A request that finds too few tokens
// is denied and consumes nothing.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// retry after res.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process memory and suits a single instance.
// RedisStore keeps them in Redis so several instances share one budget.
package ratelimiter
