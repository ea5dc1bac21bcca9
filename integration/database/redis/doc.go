// Package redis connects a go-redis client with retries and exposes a
// readiness check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	health.Readiness[*app.Context](log, redis.Healthcheck(client))
//
// Only redis:// and rediss:// URLs are accepted. Connect pings the server
// and retries with a doubling interval until RetryAttempts is exhausted or
// ConnectTimeout passes.
package redis
