package retryable

import (
	"errors"
	"net"
	"regexp"
	"syscall"
)

// retryableErrnos 为瞬时网络故障对应的系统错误码。
var retryableErrnos = map[syscall.Errno]struct{}{
	syscall.ECONNRESET:   {},
	syscall.ETIMEDOUT:    {},
	syscall.EPIPE:        {},
	syscall.ENETUNREACH:  {},
	syscall.ECONNABORTED: {},
	syscall.ECONNREFUSED: {},
	syscall.ENETDOWN:     {},
	syscall.ENETRESET:    {},
	syscall.EALREADY:     {},
	syscall.EHOSTUNREACH: {},
}

// retryableCodes 为携带字符串错误码的错误（实现 Code() string）对应的可重试码表。
var retryableCodes = map[string]struct{}{
	"ECONNRESET":   {},
	"ENOTFOUND":    {},
	"ETIMEDOUT":    {},
	"EPIPE":        {},
	"ENETUNREACH":  {},
	"ECONNABORTED": {},
	"ECONNREFUSED": {},
	"ENETDOWN":     {},
	"ENETRESET":    {},
	"EALREADY":     {},
	"EAI_AGAIN":    {},
	"EHOSTUNREACH": {},
}

// connectionFailurePatterns 为 Go 网络栈实际产生的连接失败错误信息，区分大小写。
var connectionFailurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`connection reset by peer`),
	regexp.MustCompile(`connection refused`),
	regexp.MustCompile(`broken pipe`),
	regexp.MustCompile(`no such host`),
	regexp.MustCompile(`i/o timeout`),
	regexp.MustCompile(`network is unreachable`),
	regexp.MustCompile(`use of closed network connection`),
	regexp.MustCompile(`unexpected EOF`),
	regexp.MustCompile(`server closed idle connection`),
	regexp.MustCompile(`TLS handshake timeout`),
	regexp.MustCompile(`transport connection broken`),
}

type coder interface {
	Code() string
}

type statusCoder interface {
	StatusCode() int
}

type statuser interface {
	Status() int
}

type causer interface {
	Cause() error
}

// IsNetworkError 判断 err 是否为瞬时网络错误。
//
// 错误链中任意一层满足以下条件之一即为真：
//   - syscall.Errno 属于已知的瞬时故障码（连接重置、超时、管道破裂等）
//   - *net.DNSError 为域名未找到或临时性失败
//   - 实现 Code() string 且错误码属于已知码表
func IsNetworkError(err error) bool {
	for e := err; e != nil; e = unwrap(e) {
		if errno, ok := e.(syscall.Errno); ok {
			if _, ok := retryableErrnos[errno]; ok {
				return true
			}
		}
		if dnsErr, ok := e.(*net.DNSError); ok && (dnsErr.IsNotFound || dnsErr.IsTemporary) {
			return true
		}
		if c, ok := e.(coder); ok {
			if _, ok := retryableCodes[c.Code()]; ok {
				return true
			}
		}
	}
	return false
}

// IsServerError 判断 err 是否携带 5xx 状态码。
// 错误链中任意一层实现 StatusCode() int 或 Status() int 且值 ≥ 500 即为真。
func IsServerError(err error) bool {
	for e := err; e != nil; e = unwrap(e) {
		if sc, ok := e.(statusCoder); ok && sc.StatusCode() >= 500 {
			return true
		}
		if s, ok := e.(statuser); ok && s.Status() >= 500 {
			return true
		}
	}
	return false
}

// IsConnectionError 判断 err 的错误信息是否匹配已知的连接失败描述（区分大小写）。
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range connectionFailurePatterns {
		if pattern.MatchString(msg) {
			return true
		}
	}
	return false
}

// Any 把多个判定函数组合为一个：任意一个返回 true 即为真。
func Any(preds ...func(err error) bool) func(err error) bool {
	return func(err error) bool {
		for _, pred := range preds {
			if pred(err) {
				return true
			}
		}
		return false
	}
}

// unwrap 取错误链的下一层，同时兼容 Unwrap() error 和 pkg/errors 的 Cause() error。
func unwrap(err error) error {
	if next := errors.Unwrap(err); next != nil {
		return next
	}
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}
