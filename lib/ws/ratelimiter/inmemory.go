package ratelimiter

import (
	"sync"
	"time"

	"github.com/ether/etherpad-todolist/lib/settings"
)

type Key string

type Event struct {
	LastOccurrence time.Time
}

// RateLimiter allows at most Points events per key inside a sliding window.
type RateLimiter struct {
	Mu          sync.Mutex
	RateLimiter map[Key][]Event
	window      time.Duration
	points      int
	now         func() time.Time
}

type ErrRateLimitExceeded struct{}

func (e ErrRateLimitExceeded) Error() string {
	return "rate limit exceeded"
}

// New creates a limiter from the websocket settings. A non positive point
// budget disables limiting.
func New(limiting settings.RateLimitSettings) *RateLimiter {
	return &RateLimiter{
		RateLimiter: make(map[Key][]Event),
		window:      time.Duration(limiting.Duration) * time.Second,
		points:      limiting.Points,
		now:         time.Now,
	}
}

func (r *RateLimiter) CheckRateLimit(key Key) error {
	if r == nil || r.points <= 0 {
		return nil
	}

	r.Mu.Lock()
	defer r.Mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)
	var filteredEvents []Event
	for _, event := range r.RateLimiter[key] {
		if event.LastOccurrence.After(cutoff) {
			filteredEvents = append(filteredEvents, event)
		}
	}

	filteredEvents = append(filteredEvents, Event{LastOccurrence: now})
	r.RateLimiter[key] = filteredEvents
	if len(filteredEvents) > r.points {
		return ErrRateLimitExceeded{}
	}
	return nil
}

// Forget drops the history of key.
func (r *RateLimiter) Forget(key Key) {
	if r == nil {
		return
	}
	r.Mu.Lock()
	delete(r.RateLimiter, key)
	r.Mu.Unlock()
}
