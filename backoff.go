package backoff

import (
	"context"
	"fmt"
	"time"
)

// RetryEvent 在每次重试前传递给观察回调。
type RetryEvent struct {
	// Attempt 为刚刚失败的尝试序号，从 1 开始计数。
	Attempt int
	// Delay 为本次重试前将要等待的延迟。
	Delay time.Duration
	// NextAt 为 reference + Delay 计算出的绝对时间点，仅在设置了 WithReference 时非零。
	NextAt time.Time
	// Err 为触发本次重试的错误。
	Err error
}

// OnRetryFunc 为重试观察回调。返回非 nil 错误会立即终止重试循环，该错误原样返回给调用方。
type OnRetryFunc func(event RetryEvent) error

// Do 执行 op，失败时按配置的延迟序列重试，直到成功、尝试次数耗尽、
// 重试判定函数返回 false，或 ctx 被取消。
//
// 延迟序列在循环开始前一次性计算完成（见 Schedule），之后每次重试消费一个条目。
// 任意时刻最多只有一次 op 调用在执行，重试之间不会重叠。
//
// 尝试次数耗尽或判定为不可重试时，最后一次尝试的错误会被原样返回，不做任何包装。
// ctx 被取消时返回 *CancelError，其中携带 context.Cause 给出的取消原因；
// 若取消发生在某次 op 调用仍未返回时，执行器不再等待该调用，其结果被丢弃。
// op 发生 panic 时会被恢复并转换为包装了 ErrPanic 的错误。
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), options ...Option) (T, error) {
	opts := defaultOptions()
	for _, option := range options {
		option(&opts)
	}

	var zero T
	if opts.maxAttempts < 1 {
		return zero, ErrNoAttempts
	}

	schedule := computeSchedule(opts)

	var lastErr error
	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return zero, &CancelError{Reason: context.Cause(ctx), Last: lastErr}
		}

		result, err, finished := invoke(ctx, op)
		if !finished {
			return zero, &CancelError{Reason: context.Cause(ctx), Last: lastErr, Started: true}
		}
		if err == nil {
			return result, nil
		}
		lastErr = err

		// 预算优先于重试判定：没有剩余额度时不再咨询判定函数。
		if attempt == opts.maxAttempts {
			return zero, err
		}
		if opts.retryIf == nil || !opts.retryIf(err) {
			return zero, err
		}

		delay := schedule[attempt-1]
		if opts.onRetry != nil {
			event := RetryEvent{Attempt: attempt, Delay: delay, Err: err}
			if !opts.reference.IsZero() {
				event.NextAt = opts.reference.Add(delay)
			}
			if cbErr := opts.onRetry(event); cbErr != nil {
				return zero, cbErr
			}
		}

		if !sleep(ctx, delay) {
			return zero, &CancelError{Reason: context.Cause(ctx), Last: err}
		}
	}
}

// Wrap 返回一个把 op 的每次调用都路由进 Do 的函数，用于在调用点之外预先绑定重试配置。
func Wrap[T any](op func(ctx context.Context) (T, error), options ...Option) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return Do(ctx, op, options...)
	}
}

type result[T any] struct {
	val T
	err error
}

// invoke 在独立的 goroutine 中执行 op，并在其完成与 ctx 取消之间竞争。
// finished 为 false 表示取消先到：op 仍在后台执行，其结果被丢弃。
func invoke[T any](ctx context.Context, op func(ctx context.Context) (T, error)) (T, error, bool) {
	ch := make(chan result[T], 1)
	go func() {
		var r result[T]
		defer func() {
			if rec := recover(); rec != nil {
				r.err = fmt.Errorf("%w: %v", ErrPanic, rec)
			}
			ch <- r
		}()
		r.val, r.err = op(ctx)
	}()

	r, finished := awaitResult(ctx, ch)
	return r.val, r.err, finished
}

// awaitResult 在结果与取消之间竞争。结果已经就绪时成功优先于取消。
func awaitResult[T any](ctx context.Context, ch <-chan result[T]) (result[T], bool) {
	select {
	case r := <-ch:
		return r, true
	case <-ctx.Done():
		select {
		case r := <-ch:
			return r, true
		default:
		}
		return result[T]{}, false
	}
}

// sleep 等待 d 时长，返回 false 表示等待期间 ctx 被取消。
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
