package crawl_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/crawl"
	"github.com/mr-aymann/docuRAG/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_FetchAll(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html>" + url + "</html>", nil
		},
	}

	pool := crawl.NewPool(fetcher, crawl.WithRetryDelays(testDelays))
	urls := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}

	got := make(map[string]string)
	for res := range pool.FetchAll(context.Background(), urls) {
		require.NoError(t, res.Err)
		got[res.URL] = res.HTML
	}

	assert.Len(t, got, 3)
	for _, u := range urls {
		assert.Equal(t, "<html>"+u+"</html>", got[u])
	}
}

func TestPool_FetchAll_OneResultPerURL(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "ok", nil
		},
	}

	pool := crawl.NewPool(fetcher, crawl.WithRetryDelays(testDelays))
	urls := []string{"https://example.com/a", "https://example.com/a", "https://example.com/b"}

	count := 0
	for range pool.FetchAll(context.Background(), urls) {
		count++
	}

	// Duplicate submissions within a batch produce one result.
	assert.Equal(t, 2, count)
}

func TestPool_FetchAll_SkipsAlreadyFetched(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			calls.Add(1)
			return "ok", nil
		},
	}

	pool := crawl.NewPool(fetcher, crawl.WithRetryDelays(testDelays))

	first := 0
	for range pool.FetchAll(context.Background(), []string{"https://example.com/a", "https://example.com/b"}) {
		first++
	}
	assert.Equal(t, 2, first)

	// Overlapping second batch: only the new URL is fetched.
	second := 0
	for res := range pool.FetchAll(context.Background(), []string{"https://example.com/a", "https://example.com/c"}) {
		second++
		assert.Equal(t, "https://example.com/c", res.URL)
	}
	assert.Equal(t, 1, second)
	assert.Equal(t, int64(3), calls.Load())
}

func TestPool_FetchAll_DeliversPerURLFailures(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://example.com/bad" {
				return "", docurag.Errorf(docurag.EINVALID, "HTTP 404")
			}
			return "ok", nil
		},
	}

	pool := crawl.NewPool(fetcher, crawl.WithRetryDelays(testDelays))
	urls := []string{"https://example.com/good", "https://example.com/bad"}

	results := make(map[string]docurag.PageResult)
	for res := range pool.FetchAll(context.Background(), urls) {
		results[res.URL] = res
	}

	require.Len(t, results, 2)
	assert.NoError(t, results["https://example.com/good"].Err)
	assert.Error(t, results["https://example.com/bad"].Err)
	assert.Equal(t, docurag.EINVALID, docurag.ErrorCode(results["https://example.com/bad"].Err))
}

func TestPool_FetchAll_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	inFlight, peak := 0, 0

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return "ok", nil
		},
	}

	pool := crawl.NewPool(fetcher, crawl.WithConcurrency(2), crawl.WithRetryDelays(testDelays))

	urls := make([]string, 10)
	for i := range urls {
		urls[i] = "https://example.com/page" + string(rune('a'+i))
	}
	for range pool.FetchAll(context.Background(), urls) {
	}

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
}

func TestPool_FetchAll_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if calls.Add(1) == 1 {
				return "", docurag.Errorf(docurag.EUNAVAILABLE, "HTTP 503")
			}
			return "ok", nil
		},
	}

	pool := crawl.NewPool(fetcher, crawl.WithRetryDelays(testDelays))

	for res := range pool.FetchAll(context.Background(), []string{"https://example.com/flaky"}) {
		require.NoError(t, res.Err)
		assert.Equal(t, "ok", res.HTML)
	}
	assert.Equal(t, int64(2), calls.Load())
}
