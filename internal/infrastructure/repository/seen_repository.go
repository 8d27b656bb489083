package repository

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultSeenTTL is used when a non positive TTL is configured
	DefaultSeenTTL = 30 * time.Minute
	// DefaultSeenCapacity is used when a non positive capacity is configured
	DefaultSeenCapacity = 50000
)

// SeenRepository is a windowed domain.SeenRepository for notification
// signatures and account keys. Keys are forgotten after ttl and the least
// recently added key is evicted once capacity is reached, so it must not be
// used where a key has to be remembered for good (see ClaimRepository).
type SeenRepository struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time

	// values are the time a key was recorded
	cache *expirable.LRU[string, time.Time]
	mu    sync.Mutex
}

// SeenOption configures a SeenRepository
type SeenOption func(*SeenRepository)

// WithClock replaces time.Now when deciding whether a key is inside the window
func WithClock(now func() time.Time) SeenOption {
	return func(r *SeenRepository) {
		r.now = now
	}
}

// NewSeenRepository creates a bounded, time windowed seen set
func NewSeenRepository(ttl time.Duration, capacity int, opts ...SeenOption) *SeenRepository {
	if ttl <= 0 {
		ttl = DefaultSeenTTL
	}
	if capacity <= 0 {
		capacity = DefaultSeenCapacity
	}

	r := &SeenRepository{
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		cache:    expirable.NewLRU[string, time.Time](capacity, nil, ttl),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MarkSeen records key and reports whether it was not already remembered
func (r *SeenRepository) MarkSeen(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if seenAt, ok := r.cache.Peek(key); ok && r.live(seenAt, now) {
		return false
	}
	r.cache.Add(key, now)
	return true
}

// Seen reports whether key is remembered and not expired
func (r *SeenRepository) Seen(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	seenAt, ok := r.cache.Peek(key)
	return ok && r.live(seenAt, r.now())
}

// Len returns the number of remembered keys, expired entries excluded
func (r *SeenRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	count := 0
	for _, seenAt := range r.cache.Values() {
		if r.live(seenAt, now) {
			count++
		}
	}
	return count
}

func (r *SeenRepository) live(seenAt, now time.Time) bool {
	return now.Sub(seenAt) < r.ttl
}
