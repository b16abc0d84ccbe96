package retryable

import (
	"context"

	"github.com/saltfishpr/backoff"
)

// RetryNetworkErrors 使用默认配置执行 op，遇到瞬时网络错误时重试。
func RetryNetworkErrors[T any](ctx context.Context, op func(ctx context.Context) (T, error), options ...backoff.Option) (T, error) {
	return backoff.Do(ctx, op, bind(IsNetworkError, options)...)
}

// RetryServerErrors 使用默认配置执行 op，遇到 5xx 错误时重试。
func RetryServerErrors[T any](ctx context.Context, op func(ctx context.Context) (T, error), options ...backoff.Option) (T, error) {
	return backoff.Do(ctx, op, bind(IsServerError, options)...)
}

// RetryConnectionErrors 使用默认配置执行 op，错误信息匹配已知连接失败描述时重试。
func RetryConnectionErrors[T any](ctx context.Context, op func(ctx context.Context) (T, error), options ...backoff.Option) (T, error) {
	return backoff.Do(ctx, op, bind(IsConnectionError, options)...)
}

// WrapNetworkErrors 返回 op 的包装版本，每次调用都经过 RetryNetworkErrors。
func WrapNetworkErrors[T any](op func(ctx context.Context) (T, error), options ...backoff.Option) func(ctx context.Context) (T, error) {
	return backoff.Wrap(op, bind(IsNetworkError, options)...)
}

// WrapServerErrors 返回 op 的包装版本，每次调用都经过 RetryServerErrors。
func WrapServerErrors[T any](op func(ctx context.Context) (T, error), options ...backoff.Option) func(ctx context.Context) (T, error) {
	return backoff.Wrap(op, bind(IsServerError, options)...)
}

// WrapConnectionErrors 返回 op 的包装版本，每次调用都经过 RetryConnectionErrors。
func WrapConnectionErrors[T any](op func(ctx context.Context) (T, error), options ...backoff.Option) func(ctx context.Context) (T, error) {
	return backoff.Wrap(op, bind(IsConnectionError, options)...)
}

// bind 把判定函数放在调用方选项之前，调用方仍可以用 WithRetryIf 覆盖。
func bind(pred func(err error) bool, options []backoff.Option) []backoff.Option {
	return append([]backoff.Option{backoff.WithRetryIf(pred)}, options...)
}
