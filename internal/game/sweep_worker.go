package game

import (
	"context"
	"log"
	"time"
)

// StartSweepWorker runs the registry sweep on a fixed interval until ctx
// is cancelled. Pruning also happens inline on every list_sessions; this
// worker is what eventually clears sessions nobody lists anymore.
func StartSweepWorker(ctx context.Context, e *Engine, interval time.Duration) {
	if interval <= 0 {
		log.Println("[SWEEP] disabled (interval <= 0)")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[SWEEP] worker started (every %v)", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("[SWEEP] worker stopped")
			return
		case <-ticker.C:
			before := e.SessionCount()
			e.Sweep()
			if after := e.SessionCount(); after < before {
				log.Printf("[SWEEP] pruned %d session(s), %d remain", before-after, after)
			}
		}
	}
}
