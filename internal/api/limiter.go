package api

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// minIdle is the shortest time an unused bucket is kept.
const minIdle = 10 * time.Minute

// Limiter hands out one token bucket per client key. Buckets idle longer
// than it takes them to refill are evicted.
type Limiter struct {
	buckets      *gocache.Cache
	defaultRate  rate.Limit
	defaultBurst int
}

func NewLimiter(perMinute float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	idle := minIdle
	if perMinute > 0 {
		if refill := time.Duration(float64(burst) / perMinute * float64(time.Minute)); refill > idle {
			idle = refill
		}
	}
	return newLimiter(perMinute, burst, idle)
}

func newLimiter(perMinute float64, burst int, idle time.Duration) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}
	return &Limiter{
		buckets:      gocache.New(idle, idle),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

func (l *Limiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

// Len is the number of live buckets.
func (l *Limiter) Len() int {
	return l.buckets.ItemCount()
}

func (l *Limiter) getLimiter(key string) *rate.Limiter {
	if v, found := l.buckets.Get(key); found {
		limiter := v.(*rate.Limiter)
		l.buckets.SetDefault(key, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(l.defaultRate, l.defaultBurst)
	if err := l.buckets.Add(key, limiter, gocache.DefaultExpiration); err != nil {
		// Lost the race to another request for the same key.
		if v, found := l.buckets.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}
