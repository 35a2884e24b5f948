package dispatcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func rateLimitedResponse(remaining int, resetAt time.Time) *fasthttp.Response {
	resp := fasthttp.AcquireResponse()
	resp.Header.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	resp.Header.Set("X-RateLimit-Limit", "5")
	resp.Header.Set("X-RateLimit-Reset", fmt.Sprintf("%.3f", float64(resetAt.UnixNano())/1e9))
	return resp
}

func TestCanExecute_UnknownRouteAllowed(t *testing.T) {
	rlm := NewRateLimitMonitor()
	require.True(t, rlm.CanExecute("ban", "g1"))
}

func TestCanExecute_BlockedWhenBucketExhausted(t *testing.T) {
	rlm := NewRateLimitMonitor()

	resp := rateLimitedResponse(0, time.Now().Add(time.Minute))
	defer fasthttp.ReleaseResponse(resp)
	rlm.UpdateFromResponse(resp, "ban", "g1")

	require.False(t, rlm.CanExecute("ban", "g1"))
	// Other routes and guilds have their own buckets.
	require.True(t, rlm.CanExecute("kick", "g1"))
	require.True(t, rlm.CanExecute("ban", "g2"))
}

func TestCanExecute_AllowedAfterReset(t *testing.T) {
	rlm := NewRateLimitMonitor()

	resp := rateLimitedResponse(0, time.Now().Add(-time.Second))
	defer fasthttp.ReleaseResponse(resp)
	rlm.UpdateFromResponse(resp, "ban", "g1")

	require.True(t, rlm.CanExecute("ban", "g1"))
}

func TestCanExecute_AllowedWithRemaining(t *testing.T) {
	rlm := NewRateLimitMonitor()

	resp := rateLimitedResponse(3, time.Now().Add(time.Minute))
	defer fasthttp.ReleaseResponse(resp)
	rlm.UpdateFromResponse(resp, "ban", "g1")

	require.True(t, rlm.CanExecute("ban", "g1"))
}
