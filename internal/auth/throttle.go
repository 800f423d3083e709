package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedIdentifiers caps how many identifiers a Throttle remembers.
const maxTrackedIdentifiers = 10000

// Throttle limits login attempts per identifier with one token bucket each.
// Buckets that have refilled are forgotten once the table is full; if none
// has, the least recently used bucket is dropped.
type Throttle struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	max      int
	now      func() time.Time
	limiters map[string]*bucket
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewThrottle allows burst attempts per identifier, refilled at limit.
func NewThrottle(limit rate.Limit, burst int) *Throttle {
	return &Throttle{
		limit:    limit,
		burst:    burst,
		max:      maxTrackedIdentifiers,
		now:      time.Now,
		limiters: make(map[string]*bucket),
	}
}

// Allow consumes one attempt for identifier. Identifiers are compared
// case-insensitively.
func (t *Throttle) Allow(identifier string) bool {
	key := strings.ToLower(strings.TrimSpace(identifier))
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.limiters[key]
	if !ok {
		if len(t.limiters) >= t.max {
			t.pruneLocked(now)
		}
		b = &bucket{lim: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// Tracked returns how many identifiers currently hold a bucket.
func (t *Throttle) Tracked() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}

// pruneLocked drops full buckets, which behave exactly like new ones. When
// every bucket is still draining the oldest one goes. The caller holds mu.
func (t *Throttle) pruneLocked(now time.Time) {
	var oldest string
	var oldestSeen time.Time
	for key, b := range t.limiters {
		if b.lim.TokensAt(now) >= float64(t.burst) {
			delete(t.limiters, key)
			continue
		}
		if oldest == "" || b.seen.Before(oldestSeen) {
			oldest, oldestSeen = key, b.seen
		}
	}
	if len(t.limiters) >= t.max && oldest != "" {
		delete(t.limiters, oldest)
	}
}
