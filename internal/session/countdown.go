package session

import (
	"context"
	"time"
)

// RunCountdown calls tick once per interval until tick returns false or ctx is
// done. The session itself never owns a timer; hosts deliver ticks through this
// driver or call Tick directly.
func RunCountdown(ctx context.Context, interval time.Duration, tick func() bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !tick() {
				return
			}
		}
	}
}
