package backoff

import "time"

// Strategy 表示退避策略。
type Strategy int

const (
	// StrategyExponential 指数退避：第 i 次重试前等待 initialDelay × delayFactor^i。
	StrategyExponential Strategy = iota
	// StrategyLinear 固定间隔：每次重试前都等待 initialDelay。
	StrategyLinear
)

type options struct {
	maxAttempts  int
	initialDelay time.Duration
	delayFactor  float64
	jitter       float64
	strategy     Strategy
	onRetry      OnRetryFunc
	retryIf      func(err error) bool
	reference    time.Time
}

func defaultOptions() options {
	return options{
		maxAttempts:  6,
		initialDelay: 20 * time.Millisecond,
		delayFactor:  4,
		jitter:       0,
		strategy:     StrategyExponential,
	}
}

type Option func(*options)

// WithMaxAttempts 设置总尝试次数上限（包含第一次调用，不是重试次数）。
func WithMaxAttempts(maxAttempts int) Option {
	return func(opts *options) {
		opts.maxAttempts = maxAttempts
	}
}

// WithInitialDelay 设置初始延迟。负值按 0 处理。
func WithInitialDelay(d time.Duration) Option {
	return func(opts *options) {
		if d < 0 {
			d = 0
		}
		opts.initialDelay = d
	}
}

// WithDelayFactor 设置指数退避的倍率，仅在 StrategyExponential 下生效。负值按 0 处理。
func WithDelayFactor(factor float64) Option {
	return func(opts *options) {
		if factor < 0 {
			factor = 0
		}
		opts.delayFactor = factor
	}
}

// WithJitter 设置抖动系数，取值范围 [0, 1]，超出范围的值会被收敛到边界。
// 抖动只会增加延迟：最终延迟 = 原始延迟 + 原始延迟 × jitter × U，U 为 [0, 1) 上的均匀随机数。
func WithJitter(jitter float64) Option {
	return func(opts *options) {
		if jitter < 0 {
			jitter = 0
		} else if jitter > 1 {
			jitter = 1
		}
		opts.jitter = jitter
	}
}

// WithStrategy 设置退避策略。
func WithStrategy(strategy Strategy) Option {
	return func(opts *options) {
		opts.strategy = strategy
	}
}

// WithOnRetry 设置重试观察回调。每次重试前调用一次，回调返回非 nil 错误会立即终止重试循环。
func WithOnRetry(fn OnRetryFunc) Option {
	return func(opts *options) {
		opts.onRetry = fn
	}
}

// WithRetryIf 设置重试判定函数。未设置时任何失败都不会重试。
func WithRetryIf(fn func(err error) bool) Option {
	return func(opts *options) {
		opts.retryIf = fn
	}
}

// WithReference 设置参考时刻。设置后 RetryEvent.NextAt 会携带 reference + delay
// 计算出的绝对时间点，仅用于观察回调；执行器自身的等待始终使用相对延迟。
func WithReference(t time.Time) Option {
	return func(opts *options) {
		opts.reference = t
	}
}
