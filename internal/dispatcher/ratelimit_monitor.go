package dispatcher

import (
	"strconv"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

type RateLimitBucket struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// RateLimitMonitor tracks Discord's per-route rate limit headers so the
// executor can refuse an action instead of burning a 429.
type RateLimitMonitor struct {
	mu      sync.RWMutex
	buckets map[string]*RateLimitBucket
}

func NewRateLimitMonitor() *RateLimitMonitor {
	return &RateLimitMonitor{
		buckets: make(map[string]*RateLimitBucket),
	}
}

func (rlm *RateLimitMonitor) CanExecute(route, guildID string) bool {
	key := route + ":" + guildID

	rlm.mu.RLock()
	bucket, exists := rlm.buckets[key]
	rlm.mu.RUnlock()

	if !exists {
		return true
	}
	if time.Now().After(bucket.ResetAt) {
		return true
	}
	return bucket.Remaining > 0
}

// UpdateFromResponse records the X-RateLimit headers of a completed request.
func (rlm *RateLimitMonitor) UpdateFromResponse(resp *fasthttp.Response, route, guildID string) {
	key := route + ":" + guildID

	bucket := &RateLimitBucket{}
	if remaining := string(resp.Header.Peek("X-RateLimit-Remaining")); remaining != "" {
		bucket.Remaining, _ = strconv.Atoi(remaining)
	}
	if limit := string(resp.Header.Peek("X-RateLimit-Limit")); limit != "" {
		bucket.Limit, _ = strconv.Atoi(limit)
	}
	if reset := string(resp.Header.Peek("X-RateLimit-Reset")); reset != "" {
		if resetF, err := strconv.ParseFloat(reset, 64); err == nil {
			sec := int64(resetF)
			nsec := int64((resetF - float64(sec)) * 1e9)
			bucket.ResetAt = time.Unix(sec, nsec)
		}
	}

	rlm.mu.Lock()
	rlm.buckets[key] = bucket
	rlm.mu.Unlock()
}
