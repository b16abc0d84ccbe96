// Package backoff 提供了一个带退避策略的重试执行器。
//
// 基本用法：
//
//	result, err := backoff.Do(ctx, func(ctx context.Context) (string, error) {
//	    return apiCall(ctx)
//	}, backoff.WithRetryIf(retryable.IsNetworkError))
//
// 默认配置下不会重试（WithRetryIf 默认总是返回 false），重试行为需要显式开启。
//
// 配置选项：
//
//	result, err := backoff.Do(ctx, f,
//	    backoff.WithMaxAttempts(3),
//	    backoff.WithInitialDelay(100*time.Millisecond),
//	    backoff.WithJitter(0.5),
//	    backoff.WithOnRetry(func(ev backoff.RetryEvent) error {
//	        log.Printf("attempt %d failed: %v, retrying in %v", ev.Attempt, ev.Err, ev.Delay)
//	        return nil
//	    }),
//	)
//
// 支持的退避策略：
//   - StrategyExponential: 指数退避，延迟为 initialDelay × delayFactor^i
//   - StrategyLinear: 固定间隔重试
//
// 取消通过 context 传递：调用方取消 context 后，执行器立即停止等待并返回
// *CancelError，其中携带 context.Cause 给出的取消原因。执行器不会强制终止
// 正在执行的操作，只是不再等待它的结果。
package backoff
