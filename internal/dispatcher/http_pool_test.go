package dispatcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPPool_RoundRobin(t *testing.T) {
	pool := NewHTTPPool(3)

	first := pool.GetClient()
	second := pool.GetClient()
	third := pool.GetClient()

	require.NotSame(t, first, second)
	require.NotSame(t, second, third)
	require.NotSame(t, first, third)

	// Wraps back around.
	require.Same(t, first, pool.GetClient())
}

func TestHTTPPool_ConcurrentGetClient(t *testing.T) {
	pool := NewHTTPPool(4)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				require.NotNil(t, pool.GetClient())
			}
		}()
	}
	wg.Wait()
}

func TestHTTPPool_MinimumSize(t *testing.T) {
	pool := NewHTTPPool(0)
	require.Same(t, pool.GetClient(), pool.GetClient())
}
