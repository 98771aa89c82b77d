package models

import "time"

// Reservation statuses. Transitions between them are owned by the
// booking package; nothing else writes Status.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// IsTerminalStatus reports whether a reservation in this status can
// never change again. Terminal reservations never block new bookings.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Reservation is a persisted claim on a slot. It is kept forever as an
// audit record; cancellation is a status change, not a delete.
type Reservation struct {
	ID           string    `json:"id" bson:"id"`
	ResourceID   string    `json:"resourceId" bson:"resourceId"`
	RequesterID  string    `json:"requesterId" bson:"requesterId"`
	SlotStart    time.Time `json:"slotStart" bson:"slotStart"`
	SlotEnd      time.Time `json:"slotEnd" bson:"slotEnd"`
	Status       string    `json:"status" bson:"status"`
	CancelReason string    `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Slot is a derived bookable interval. Never persisted; recomputed on
// every availability query.
type Slot struct {
	ResourceID string    `json:"resourceId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}
