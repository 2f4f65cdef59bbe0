package tpms

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore keeps one token bucket per tire: tire_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(tireID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[tireID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[tireID] = limiter
	}
	return limiter
}

// SetLimiter replaces the bucket of a tire, e.g. for a sensor that reports faster.
func (s *RateLimiterStore) SetLimiter(tireID string, tireRate rate.Limit, tireBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[tireID] = rate.NewLimiter(tireRate, tireBurst)
}

// Allow consumes a token for the tire. A nil store allows everything.
func (s *RateLimiterStore) Allow(tireID string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(tireID).Allow()
}
