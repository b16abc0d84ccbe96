package backoff_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saltfishpr/backoff"
)

// ExampleDo demonstrates retrying a flaky operation.
func ExampleDo() {
	calls := 0
	result, err := backoff.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporarily unavailable")
		}
		return "done", nil
	},
		backoff.WithRetryIf(func(err error) bool { return true }),
		backoff.WithInitialDelay(0),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result, "after", calls, "attempts")
	// Output: done after 3 attempts
}

// ExampleDo_observer demonstrates watching retries through the callback.
func ExampleDo_observer() {
	calls := 0
	_, _ = backoff.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("boom")
	},
		backoff.WithRetryIf(func(err error) bool { return true }),
		backoff.WithStrategy(backoff.StrategyLinear),
		backoff.WithInitialDelay(0),
		backoff.WithMaxAttempts(3),
		backoff.WithOnRetry(func(ev backoff.RetryEvent) error {
			fmt.Printf("attempt %d failed: %v\n", ev.Attempt, ev.Err)
			return nil
		}),
	)
	// Output:
	// attempt 1 failed: boom
	// attempt 2 failed: boom
}

// ExampleSchedule demonstrates computing the delay sequence without executing.
func ExampleSchedule() {
	schedule := backoff.Schedule(
		backoff.WithInitialDelay(10*time.Millisecond),
		backoff.WithDelayFactor(2),
		backoff.WithMaxAttempts(4),
	)
	fmt.Println(schedule)
	// Output: [10ms 20ms 40ms]
}

// ExampleWrap demonstrates binding a retry configuration ahead of the call site.
func ExampleWrap() {
	calls := 0
	fetch := backoff.Wrap(func(ctx context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("try again")
		}
		return 42, nil
	},
		backoff.WithRetryIf(func(err error) bool { return true }),
		backoff.WithInitialDelay(0),
	)

	value, _ := fetch(context.Background())
	fmt.Println(value)
	// Output: 42
}
