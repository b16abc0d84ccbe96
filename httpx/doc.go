// Package httpx 提供了一个带重试能力的 http.RoundTripper。
//
// Transport 在传输层网络错误和 5xx 响应时按退避策略重试请求：
//
//	client := &http.Client{
//	    Transport: httpx.NewTransport(nil,
//	        backoff.WithMaxAttempts(3),
//	        backoff.WithInitialDelay(100*time.Millisecond),
//	    ),
//	}
//
// 携带请求体的请求只有在 Request.GetBody 可用时才会重试（标准库为常见的
// body 类型自动填充 GetBody），否则失败会原样返回。
package httpx
