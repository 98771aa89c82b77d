package booking

import (
	"context"
	"log"
	"time"
)

// StartCompletionSweep periodically advances confirmed reservations
// whose slot has ended to completed. Completion is stored, not derived
// on read, so listings and conflict checks always see one consistent
// status. Runs until the process exits.
func StartCompletionSweep(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := Default.CompleteExpired(ctx)
		cancel()
		if err != nil {
			log.Println("completion sweep error:", err)
			continue
		}
		if n > 0 {
			log.Printf("completion sweep: %d reservations completed", n)
		}
	}
}
