package backoff

import (
	"math"
	"math/rand"
	"time"
)

// Schedule 根据配置计算完整的延迟序列，长度为 maxAttempts − 1
// （第一次尝试之前没有延迟）。maxAttempts ≤ 1 时返回空序列。
//
// 序列按生成顺序被执行器消费：第一次重试等待第一个条目，依此类推。
// jitter 为 0 时结果是确定的；jitter 大于 0 时每个条目独立地在
// [base, base×(1+jitter)) 范围内取值。
func Schedule(options ...Option) []time.Duration {
	opts := defaultOptions()
	for _, option := range options {
		option(&opts)
	}
	return computeSchedule(opts)
}

// ScheduleAt 返回以 reference 为基准的绝对时间点序列，每个条目为 reference + delay。
// 仅用于观察和展示；执行器内部的等待始终基于相对延迟。
func ScheduleAt(reference time.Time, options ...Option) []time.Time {
	delays := Schedule(options...)
	deadlines := make([]time.Time, len(delays))
	for i, d := range delays {
		deadlines[i] = reference.Add(d)
	}
	return deadlines
}

func computeSchedule(opts options) []time.Duration {
	n := opts.maxAttempts - 1
	if n < 0 {
		n = 0
	}
	schedule := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		var raw float64
		switch opts.strategy {
		case StrategyLinear:
			raw = float64(opts.initialDelay)
		default:
			raw = float64(opts.initialDelay) * math.Pow(opts.delayFactor, float64(i))
		}
		if opts.jitter > 0 {
			raw += raw * opts.jitter * rand.Float64()
		}
		schedule = append(schedule, clampDuration(raw))
	}
	return schedule
}

// clampDuration 将浮点延迟收敛为合法的 time.Duration，溢出时取 math.MaxInt64。
func clampDuration(f float64) time.Duration {
	if f < 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(f)
}
