package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWaitForReady_EventuallyUp(t *testing.T) {
	attempts := 0
	drv := &mockDriver{pingFn: func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	}}

	if err := NewGateway(drv, time.Second).WaitForReady(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 pings, got %d", attempts)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	drv := &mockDriver{pingFn: func(context.Context) error { return errors.New("connection refused") }}

	err := NewGateway(drv, time.Second).WaitForReady(context.Background(), 250*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout waiting for mock") || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("unexpected error: %v", err)
	}
}
