package batch_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/batch"
	"github.com/fwojciec/pagesnip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instant has one zero delay per retry.
var instant = []time.Duration{0, 0, 0}

// failingFetcher fails the first n attempts with err, then succeeds.
func failingFetcher(n int, err error, attempts *int) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			*attempts++
			if *attempts <= n {
				return "", err
			}
			return "<html>success</html>", nil
		},
	}
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		html, err := batch.FetchWithRetry(context.Background(), failingFetcher(0, nil, &attempts), "https://example.com", instant, nil)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var attempts int
		html, err := batch.FetchWithRetry(context.Background(), failingFetcher(3, errors.New("transient error"), &attempts), "https://example.com", instant, nil)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		assert.Equal(t, 4, attempts)
	})

	t.Run("returns the last error after every retry", func(t *testing.T) {
		t.Parallel()

		var attempts int
		_, err := batch.FetchWithRetry(context.Background(), failingFetcher(10, errors.New("persistent error"), &attempts), "https://example.com", instant, nil)

		require.EqualError(t, err, "persistent error")
		assert.Equal(t, 4, attempts)
	})

	t.Run("does not retry application errors", func(t *testing.T) {
		t.Parallel()

		var attempts int
		_, err := batch.FetchWithRetry(context.Background(), failingFetcher(10, pagesnip.Errorf(pagesnip.ENOTFOUND, "HTTP 404"), &attempts), "https://example.com", instant, nil)

		assert.Equal(t, pagesnip.ENOTFOUND, pagesnip.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var attempts int
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				attempts++
				cancel()
				return "", errors.New("transient error")
			},
		}

		_, err := batch.FetchWithRetry(ctx, fetcher, "https://example.com", []time.Duration{time.Hour}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("logs each retry", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var attempts int

		_, err := batch.FetchWithRetry(context.Background(), failingFetcher(2, errors.New("transient error"), &attempts), "https://example.com/page", instant, logger)

		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(buf.String(), "retrying fetch"))
		assert.Contains(t, buf.String(), "url=https://example.com/page")
	})

	t.Run("number of retries matches delay count", func(t *testing.T) {
		t.Parallel()

		var attempts int
		_, err := batch.FetchWithRetry(context.Background(), failingFetcher(10, errors.New("always fail"), &attempts), "https://example.com", []time.Duration{0, 0}, nil)

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
	})
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, batch.DefaultRetryDelays())
}
