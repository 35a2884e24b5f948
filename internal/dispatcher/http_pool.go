package dispatcher

import (
	"crypto/tls"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPPool round-robins requests over a set of warm fasthttp clients so
// moderation actions don't queue behind each other on one connection.
type HTTPPool struct {
	clients []*fasthttp.Client
	size    int
	index   atomic.Uint64
}

func NewHTTPPool(size int) *HTTPPool {
	if size < 1 {
		size = 1
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ClientSessionCache: tls.NewLRUClientSessionCache(64),
	}

	clients := make([]*fasthttp.Client, size)
	for i := 0; i < size; i++ {
		clients[i] = &fasthttp.Client{
			MaxConnsPerHost:     256,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         5 * time.Second,
			WriteTimeout:        5 * time.Second,
			MaxResponseBodySize: 4 * 1024 * 1024,
			TLSConfig:           tlsConfig,
		}
	}

	return &HTTPPool{
		clients: clients,
		size:    size,
	}
}

// GetClient hands out the next client. Handlers call this concurrently.
func (hp *HTTPPool) GetClient() *fasthttp.Client {
	n := hp.index.Add(1) - 1
	return hp.clients[n%uint64(hp.size)]
}

// Warmup opens connections to the Discord API ahead of the first action.
func (hp *HTTPPool) Warmup() {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(apiBase + "/gateway")
	req.Header.SetMethod("GET")

	for i := 0; i < hp.size; i++ {
		hp.clients[i].DoTimeout(req, resp, 2*time.Second)
	}
}
