package middleware

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen 熔断打开期间的快速失败错误。
var ErrBreakerOpen = errors.New("circuit breaker is open")

// BreakerState 熔断器状态
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // 正常放行
	BreakerOpen                         // 熔断，快速失败
	BreakerHalfOpen                     // 试探恢复
)

// CircuitBreaker 熔断器。当前用于 Redis 会话存储：
// Redis 连续失败后打开，黑名单检查降级为放行（仅记录日志）。
type CircuitBreaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration
	probeLimit   int // 半开状态允许的试探请求数

	mu           sync.RWMutex
	state        BreakerState
	failures     int
	probes       int
	lastFailTime time.Time
}

// NewCircuitBreaker 创建熔断器
func NewCircuitBreaker(name string, maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		probeLimit:   3,
		state:        BreakerClosed,
	}
}

// Call 经熔断器执行 fn；打开期间返回 ErrBreakerOpen。
func (cb *CircuitBreaker) Call(ctx context.Context, fn func() error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerOpen:
		if time.Since(cb.lastFailTime) < cb.resetTimeout {
			return ErrBreakerOpen
		}
		cb.state = BreakerHalfOpen
		cb.probes = 0
		fallthrough
	case BreakerHalfOpen:
		if cb.probes >= cb.probeLimit {
			return ErrBreakerOpen
		}
		cb.probes++
	}
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		if cb.state == BreakerHalfOpen {
			cb.state = BreakerClosed
			cb.probes = 0
		}
		cb.failures = 0
		return
	}

	cb.failures++
	cb.lastFailTime = time.Now()
	if cb.state == BreakerHalfOpen || cb.failures >= cb.maxFailures {
		cb.state = BreakerOpen
		cb.probes = 0
	}
}

// State 当前状态快照。
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}
