package engine

import (
	"context"
	"fmt"
	"time"
)

const readinessPoll = 100 * time.Millisecond

// WaitForReady polls the engine until a ping succeeds or timeout elapses.
func (g *Gateway) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readinessPoll)
	defer ticker.Stop()

	var last error
	for {
		select {
		case <-ctx.Done():
			if last != nil {
				return fmt.Errorf("timeout waiting for %s: %w", g.Driver(), last)
			}
			return fmt.Errorf("timeout waiting for %s: %w", g.Driver(), ctx.Err())
		case <-ticker.C:
			if last = g.driver.Ping(ctx); last == nil {
				return nil
			}
		}
	}
}
