// Package ratelimit provides sliding window request limiters.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"khata/internal/port"
)

// Memory is a single-process sliding window limiter. Each key keeps the
// timestamps of its requests inside the window.
type Memory struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewMemory creates an in-memory limiter allowing limit requests per window.
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

var _ port.RateLimiter = (*Memory)(nil)

// Allow records a request for key when the window still has room.
func (m *Memory) Allow(_ context.Context, key string) (port.RateDecision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	hits := prune(m.hits[key], now.Add(-m.window))

	if len(hits) >= m.limit {
		m.hits[key] = hits
		return port.RateDecision{
			Allowed:    false,
			Limit:      m.limit,
			Remaining:  0,
			RetryAfter: hits[0].Add(m.window).Sub(now),
		}, nil
	}

	hits = append(hits, now)
	m.hits[key] = hits
	return port.RateDecision{Allowed: true, Limit: m.limit, Remaining: m.limit - len(hits)}, nil
}

// prune drops timestamps at or before cutoff. hits is in ascending order.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

// Run evicts idle keys every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evict()
		}
	}
}

func (m *Memory) evict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.window)
	for key, hits := range m.hits {
		if hits = prune(hits, cutoff); len(hits) == 0 {
			delete(m.hits, key)
		} else {
			m.hits[key] = hits
		}
	}
}
