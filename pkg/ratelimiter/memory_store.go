package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/schemadeck/core/logger"
)

type bucketState struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState

	cleanupInterval time.Duration
	staleAfter      time.Duration
	now             func() time.Time
	log             *slog.Logger

	running atomic.Bool
	created atomic.Int64
	removed atomic.Int64
}

// MemoryStoreStats is a snapshot for health endpoints and logs.
type MemoryStoreStats struct {
	BucketsCreated int64
	BucketsRemoved int64
	ActiveBuckets  int
	IsRunning      bool
}

type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often stale buckets are swept. Zero disables the sweep.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d >= 0 {
			ms.cleanupInterval = d
		}
	}
}

// WithStaleAfter sets how long an untouched bucket survives a sweep.
func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

func WithMemoryStoreLogger(log *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if log != nil {
			ms.log = log
		}
	}
}

// WithMemoryStoreClock replaces time.Now, for tests.
func WithMemoryStoreClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucketState),
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		now:             time.Now,
		log:             logger.Discard(),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

var _ Store = (*MemoryStore)(nil)

func (ms *MemoryStore) ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucketState{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
		ms.created.Add(1)
	}
	b.lastAccess = now

	// Whole intervals only; the partial interval carries over to the next call.
	// The cap keeps the multiplication in range for long idle periods.
	if elapsed := now.Sub(b.lastRefill); elapsed >= cfg.RefillInterval {
		maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
		intervals := min(int64(elapsed/cfg.RefillInterval), maxIntervals)
		b.tokens = min(b.tokens+int(intervals)*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
		if b.tokens == cfg.Capacity {
			b.lastRefill = now
		}
	}

	resetAt := b.lastRefill.Add(cfg.RefillInterval)
	if b.tokens < tokens {
		return b.tokens - tokens, resetAt, nil
	}
	b.tokens -= tokens
	return b.tokens, resetAt, nil
}

func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.buckets, key)
	return nil
}

// Run sweeps stale buckets until ctx is done. It fits errgroup.Go.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		if ms.cleanupInterval == 0 {
			<-ctx.Done()
			return nil
		}
		if !ms.running.CompareAndSwap(false, true) {
			return nil
		}
		defer ms.running.Store(false)

		ms.log.DebugContext(ctx, "rate limiter cleanup started",
			logger.Component("ratelimiter"),
			slog.Duration("interval", ms.cleanupInterval))

		ticker := time.NewTicker(ms.cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				ms.log.DebugContext(context.WithoutCancel(ctx), "rate limiter cleanup stopped",
					logger.Component("ratelimiter"))
				return nil
			case <-ticker.C:
				if n := ms.RemoveStale(); n > 0 {
					ms.log.DebugContext(ctx, "removed stale buckets",
						logger.Component("ratelimiter"), logger.Count("buckets", n))
				}
			}
		}
	}
}

// RemoveStale deletes buckets untouched for longer than the stale window and
// returns how many were removed.
func (ms *MemoryStore) RemoveStale() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	removed := 0
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > ms.staleAfter {
			delete(ms.buckets, key)
			removed++
		}
	}
	ms.removed.Add(int64(removed))
	return removed
}

func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.Lock()
	active := len(ms.buckets)
	ms.mu.Unlock()

	return MemoryStoreStats{
		BucketsCreated: ms.created.Load(),
		BucketsRemoved: ms.removed.Load(),
		ActiveBuckets:  active,
		IsRunning:      ms.running.Load(),
	}
}
