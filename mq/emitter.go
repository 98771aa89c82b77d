package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rezerv/rdx"
)

const channel = "booking-events"

// Event is a booking-domain change broadcast for the (external)
// notification and chat systems. The engine only publishes; delivery to
// end users is not its concern.
type Event struct {
	Type       string    `json:"type"` // e.g. reservation.created, reservation.status, blackout.created
	ResourceID string    `json:"resourceId"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId,omitempty"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}

// Emit publishes an event to Redis. Failures are logged and dropped;
// event delivery is best-effort and never blocks a booking mutation.
func Emit(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish event: %v", err)
	}
}

// StartNotifyWorker consumes booking events and hands them to the
// notification side. Runs until the process exits.
func StartNotifyWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[NotifyWorker] listening for booking events...")

	for msg := range ch {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("[NotifyWorker] failed to parse event: %v", err)
			continue
		}
		log.Printf("[NotifyWorker] %s resource=%s entity=%s status=%s", ev.Type, ev.ResourceID, ev.EntityID, ev.Status)
	}
}
