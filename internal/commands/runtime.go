package commands

import (
	"context"
	"time"
)

// DefaultCommandTimeout bounds a page command when no timeout is configured.
const DefaultCommandTimeout = 30 * time.Second

// boundContext returns ctx limited by timeout. A nil ctx becomes
// context.Background and a non-positive timeout adds no deadline.
func boundContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
