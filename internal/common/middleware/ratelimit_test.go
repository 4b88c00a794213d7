package middleware

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTokenBucketExhaustion(t *testing.T) {
	tb := NewTokenBucket(2, 1)
	ctx := context.Background()

	if !tb.Allow(ctx) || !tb.Allow(ctx) {
		t.Fatalf("expected first two requests allowed")
	}
	if tb.Allow(ctx) {
		t.Fatalf("expected third request rejected")
	}
}

func TestSlidingWindowLimit(t *testing.T) {
	sw := NewSlidingWindow(time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !sw.Allow(ctx) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if sw.Allow(ctx) {
		t.Fatalf("expected fourth request in window rejected")
	}
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)
	ctx := context.Background()
	fail := func() error { return context.DeadlineExceeded }

	_ = cb.Call(ctx, fail)
	_ = cb.Call(ctx, fail)

	if cb.State() != BreakerOpen {
		t.Fatalf("expected breaker open after max failures, got %d", cb.State())
	}
	if err := cb.Call(ctx, func() error { return nil }); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected open breaker to short-circuit, got %v", err)
	}
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)
	ctx := context.Background()

	_ = cb.Call(ctx, func() error { return context.DeadlineExceeded })
	if cb.State() != BreakerOpen {
		t.Fatalf("expected open state")
	}

	time.Sleep(20 * time.Millisecond)

	if err := cb.Call(ctx, func() error { return nil }); err != nil {
		t.Fatalf("probe after reset timeout should pass: %v", err)
	}
	if cb.State() != BreakerClosed {
		t.Fatalf("expected closed state after successful probe, got %d", cb.State())
	}
}
