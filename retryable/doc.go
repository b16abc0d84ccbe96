// Package retryable 提供常见的可重试错误判定函数，以及把它们预先绑定进
// backoff 执行器的便捷入口。
//
// 判定函数会沿错误链（errors.Unwrap 与 pkg/errors 风格的 Cause）逐层检查，
// 嵌套的底层错误同样会被识别：
//
//	resp, err := retryable.RetryNetworkErrors(ctx, func(ctx context.Context) (*Resp, error) {
//	    return client.Call(ctx, req)
//	})
//
// 也可以只取判定函数，自行组合配置：
//
//	result, err := backoff.Do(ctx, f,
//	    backoff.WithRetryIf(retryable.Any(retryable.IsNetworkError, retryable.IsServerError)),
//	    backoff.WithMaxAttempts(3),
//	)
package retryable
