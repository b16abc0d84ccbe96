package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/saltfishpr/backoff"
	"github.com/saltfishpr/backoff/retryable"
)

// StatusError 表示一次返回了 5xx 状态码的响应。
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpx: server error: %d %s", e.Code, http.StatusText(e.Code))
}

// StatusCode 返回响应状态码，使 StatusError 能被 retryable.IsServerError 识别。
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Transport 是一个带重试的 http.RoundTripper。
// 瞬时网络错误、连接失败和 5xx 响应会按退避策略重试，其余失败原样返回。
// 重试耗尽后仍是 5xx 时，最后一次响应会交还给调用方。
type Transport struct {
	base    http.RoundTripper
	options []backoff.Option
}

// NewTransport 创建一个 Transport。base 为 nil 时使用 http.DefaultTransport。
func NewTransport(base http.RoundTripper, options ...backoff.Option) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, options: options}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !rewindable(req) {
		return t.base.RoundTrip(req)
	}

	options := append([]backoff.Option{
		backoff.WithRetryIf(retryable.Any(
			retryable.IsNetworkError,
			retryable.IsConnectionError,
			retryable.IsServerError,
		)),
	}, t.options...)

	// lastResp 保留最近一次 5xx 响应，重试耗尽时交还给调用方。
	var lastResp *http.Response

	resp, err := backoff.Do(req.Context(), func(ctx context.Context) (*http.Response, error) {
		attemptReq, err := rewind(ctx, req)
		if err != nil {
			return nil, err
		}
		resp, err := t.base.RoundTrip(attemptReq)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			if lastResp != nil {
				drain(lastResp)
			}
			lastResp = resp
			return nil, &StatusError{Code: resp.StatusCode}
		}
		return resp, nil
	}, options...)

	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && lastResp != nil {
			return lastResp, nil
		}
		if lastResp != nil {
			drain(lastResp)
		}
		return nil, err
	}
	if lastResp != nil {
		drain(lastResp)
	}
	return resp, nil
}

// rewindable 判断请求是否可以安全地重发。
// 标准库为常见的 body 类型自动填充 GetBody。
func rewindable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

// rewind 为一次新的尝试准备请求副本，必要时重建请求体。
func rewind(ctx context.Context, req *http.Request) (*http.Request, error) {
	attemptReq := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		attemptReq.Body = body
	}
	return attemptReq, nil
}

// drain 读完并关闭响应体，让底层连接可以被复用。
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
