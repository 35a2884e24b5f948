package correlation

import (
	"strconv"
	"sync"
	"time"
)

// triggerCache suppresses windows for triggers the gateway redelivered.
// Best effort only: two deliveries racing past the cache can still both
// resolve against the same audit entry, which is an accepted risk.
type triggerCache struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
}

func newTriggerCache(ttl time.Duration) *triggerCache {
	return &triggerCache{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
}

// suppress reports whether an identical trigger was seen within the TTL,
// recording this one otherwise.
func (c *triggerCache) suppress(t Trigger) bool {
	key := t.GuildID + ":" + t.UserID + ":" + strconv.Itoa(int(t.Kind))
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if seen, ok := c.seen[key]; ok && now.Sub(seen) < c.ttl {
		return true
	}
	c.seen[key] = now

	for k, v := range c.seen {
		if now.Sub(v) > c.ttl {
			delete(c.seen, k)
		}
	}
	return false
}
