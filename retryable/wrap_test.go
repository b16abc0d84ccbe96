package retryable

import (
	"context"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltfishpr/backoff"
)

// fast 把延迟压到最小，用于加速测试。
func fast(options ...backoff.Option) []backoff.Option {
	return append([]backoff.Option{
		backoff.WithStrategy(backoff.StrategyLinear),
		backoff.WithInitialDelay(time.Millisecond),
	}, options...)
}

func TestRetryNetworkErrors(t *testing.T) {
	t.Run("retries transient network failure", func(t *testing.T) {
		calls := 0
		res, err := RetryNetworkErrors(context.Background(), func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", fmt.Errorf("dial failed: %w", syscall.ECONNREFUSED)
			}
			return "success", nil
		}, fast()...)

		require.NoError(t, err)
		assert.Equal(t, "success", res)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry non-network failure", func(t *testing.T) {
		calls := 0
		expectedErr := fmt.Errorf("invalid argument")
		_, err := RetryNetworkErrors(context.Background(), func(ctx context.Context) (string, error) {
			calls++
			return "", expectedErr
		}, fast()...)

		assert.Equal(t, expectedErr, err)
		assert.Equal(t, 1, calls)
	})
}

func TestRetryServerErrors(t *testing.T) {
	calls := 0
	res, err := RetryServerErrors(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, &statusCodeError{status: 503}
		}
		return 200, nil
	}, fast()...)

	require.NoError(t, err)
	assert.Equal(t, 200, res)
	assert.Equal(t, 2, calls)
}

func TestRetryConnectionErrors(t *testing.T) {
	calls := 0
	res, err := RetryConnectionErrors(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", fmt.Errorf("read tcp 10.0.0.1:443: connection reset by peer")
		}
		return "success", nil
	}, fast()...)

	require.NoError(t, err)
	assert.Equal(t, "success", res)
	assert.Equal(t, 2, calls)
}

func TestWrapNetworkErrors(t *testing.T) {
	calls := 0
	wrapped := WrapNetworkErrors(func(ctx context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", syscall.ECONNRESET
		}
		return "success", nil
	}, fast()...)

	res, err := wrapped(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "success", res)
	assert.Equal(t, 2, calls)

	// 每次调用都经过执行器，重新获得完整的尝试预算。
	calls = 0
	res, err = wrapped(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "success", res)
	assert.Equal(t, 2, calls)
}

func TestWrapServerErrors(t *testing.T) {
	calls := 0
	wrapped := WrapServerErrors(func(ctx context.Context) (int, error) {
		calls++
		return 0, &statusCodeError{status: 500}
	}, fast(backoff.WithMaxAttempts(2))...)

	_, err := wrapped(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestWrapConnectionErrors_CallerOverridesPredicate(t *testing.T) {
	calls := 0
	wrapped := WrapConnectionErrors(func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("connection refused")
	}, fast(backoff.WithRetryIf(func(err error) bool { return false }))...)

	_, err := wrapped(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
