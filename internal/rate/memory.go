package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter: fixed window in-process, misma semántica que RedisLimiter.
// Solo sirve para una instancia; en multi-instancia usar redis.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu      sync.Mutex
	hits    map[string]int64
	started map[string]time.Time

	// now inyectable para tests
	now func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:     int64(max),
		Window:  window,
		hits:    make(map[string]int64),
		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()
	winStart := now.Truncate(l.Window)

	if prev, ok := l.started[key]; !ok || !prev.Equal(winStart) {
		// ventana nueva: resetear el contador
		l.started[key] = winStart
		l.hits[key] = 0
	}

	l.hits[key]++
	hits := l.hits[key]

	allowed := hits <= l.Max
	remaining := l.Max - hits
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:     allowed,
		Remaining:   remaining,
		CurrentHits: hits,
		WindowTTL:   winStart.Add(l.Window).Sub(now),
	}
	if !allowed {
		res.RetryAfter = res.WindowTTL
	}
	return res, nil
}
