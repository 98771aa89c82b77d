package booking

import (
	"time"

	"rezerv/availability"
	"rezerv/models"
)

// HasConflict decides whether booking [start, end) on the resource
// would collide with an existing reservation. Resources that allow
// multiple simultaneous bookings (a venue with several halls) never
// conflict. Otherwise any pending or confirmed reservation whose
// half-open interval overlaps the candidate blocks it; terminal
// reservations never do.
func HasConflict(res *models.Resource, start, end time.Time, existing []models.Reservation) bool {
	if res.AllowMultipleBookings {
		return false
	}
	for _, b := range existing {
		if b.Status != models.StatusPending && b.Status != models.StatusConfirmed {
			continue
		}
		if availability.Overlaps(start, end, b.SlotStart, b.SlotEnd) {
			return true
		}
	}
	return false
}
