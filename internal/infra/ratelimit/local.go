package ratelimit

import (
	"context"
	"sync"
	"time"

	"slot-booker/internal/pkg/clock"

	"golang.org/x/time/rate"
)

// idleAfter bounds how long an unused key keeps its bucket.
const idleAfter = 10 * time.Minute

// LocalLimiter keeps a token bucket per key in process memory. It allows
// limit actions per window with a burst of limit.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	every    rate.Limit
	burst    int
	clock    clock.Clock
	lastGC   time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(limit int, window time.Duration, clk clock.Clock) *LocalLimiter {
	limit, window = normalize(limit, window)
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &LocalLimiter{
		limiters: make(map[string]*entry),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		clock:    clk,
		lastGC:   clk.Now(),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	l.gc(now)
	return e.limiter.AllowN(now, 1), nil
}

func (l *LocalLimiter) gc(now time.Time) {
	if now.Sub(l.lastGC) < idleAfter {
		return
	}
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) >= idleAfter {
			delete(l.limiters, k)
		}
	}
	l.lastGC = now
}

func (l *LocalLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
