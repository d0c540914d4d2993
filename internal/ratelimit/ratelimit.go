package ratelimit

import (
	"errors"
	"sync"
	"time"

	"newsradar/internal/logger"
)

// ErrBudgetExhausted is returned by the oracle middleware once the daily
// request budget is spent.
var ErrBudgetExhausted = errors.New("oracle request budget exhausted")

// Limiter caps oracle requests over a rolling 24 hour window. A zero max
// means unlimited.
type Limiter struct {
	mu        sync.Mutex
	count     int
	max       int
	resetTime time.Time
}

func New(max int) *Limiter {
	return &Limiter{
		max:       max,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether another request fits in the budget and, if so,
// charges for it.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.max > 0 && l.count >= l.max {
		logger.Warn("oracle rate limit reached", "used", l.count, "max", l.max)
		return false
	}

	l.count++
	return true
}

// Used returns the number of requests charged in the current window.
func (l *Limiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func (l *Limiter) checkReset() {
	if time.Now().After(l.resetTime) {
		l.count = 0
		l.resetTime = time.Now().Add(24 * time.Hour)
	}
}
