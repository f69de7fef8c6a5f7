package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDelays keeps retry tests fast.
var testDelays = []time.Duration{time.Millisecond, time.Millisecond}

func TestFetchWithRetryDelays_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(ctx context.Context, url string) (string, error) {
		calls++
		return "<html></html>", nil
	}

	html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, testDelays)

	require.NoError(t, err)
	assert.Equal(t, "<html></html>", html)
	assert.Equal(t, 1, calls)
}

func TestFetchWithRetryDelays_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(ctx context.Context, url string) (string, error) {
		calls++
		if calls < 3 {
			return "", docurag.Errorf(docurag.EUNAVAILABLE, "HTTP 503")
		}
		return "ok", nil
	}

	html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, testDelays)

	require.NoError(t, err)
	assert.Equal(t, "ok", html)
	assert.Equal(t, 3, calls)
}

func TestFetchWithRetryDelays_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(ctx context.Context, url string) (string, error) {
		calls++
		return "", docurag.Errorf(docurag.EINVALID, "HTTP 404")
	}

	_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, testDelays)

	require.Error(t, err)
	assert.Equal(t, docurag.EINVALID, docurag.ErrorCode(err))
	assert.Equal(t, 1, calls)
}

func TestFetchWithRetryDelays_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(ctx context.Context, url string) (string, error) {
		calls++
		return "", docurag.Errorf(docurag.EUNAVAILABLE, "HTTP 503")
	}

	_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, testDelays)

	require.Error(t, err)
	assert.Equal(t, docurag.EUNAVAILABLE, docurag.ErrorCode(err))
	assert.Equal(t, len(testDelays)+1, calls)
}

func TestFetchWithRetryDelays_ContextCanceledDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(ctx context.Context, url string) (string, error) {
		cancel()
		return "", docurag.Errorf(docurag.EUNAVAILABLE, "HTTP 503")
	}

	_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Minute})

	require.ErrorIs(t, err, context.Canceled)
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	delays := crawl.DefaultRetryDelays()
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, delays)
}
