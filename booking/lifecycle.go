package booking

import (
	"time"

	"rezerv/apperr"
	"rezerv/models"
)

// Party identifies who is asking for a status change, relative to the
// reservation. The engine trusts the authenticated id; mapping an id to
// a Party is done by the coordinator.
type Party string

const (
	PartyRequester Party = "requester"
	PartyOwner     Party = "owner"
	// PartySystem is the completion sweep; it only ever advances
	// confirmed reservations whose slot has ended.
	PartySystem Party = "system"
)

// Transition applies one edge of the reservation state machine to resv,
// mutating it only when the edge is legal:
//
//	pending   -> confirmed  (owner accepts; conflict re-check is the coordinator's job)
//	pending   -> cancelled  (either party, non-empty reason)
//	confirmed -> cancelled  (either party, non-empty reason)
//	confirmed -> no-show    (either party, only after slotEnd)
//	confirmed -> completed  (system or owner, only after slotEnd)
//
// Every other request fails with InvalidStatusTransition and leaves
// resv untouched.
func Transition(resv *models.Reservation, party Party, newStatus, reason string, now time.Time) error {
	switch {
	case resv.Status == models.StatusPending && newStatus == models.StatusConfirmed:
		if party != PartyOwner {
			return apperr.New(apperr.KindForbidden, "only the resource owner can confirm a booking")
		}

	case (resv.Status == models.StatusPending || resv.Status == models.StatusConfirmed) && newStatus == models.StatusCancelled:
		if party != PartyRequester && party != PartyOwner {
			return apperr.New(apperr.KindForbidden, "only the requester or the owner can cancel")
		}
		if reason == "" {
			return apperr.New(apperr.KindBadInput, "cancellation requires a reason")
		}
		resv.CancelReason = reason

	case resv.Status == models.StatusConfirmed && newStatus == models.StatusNoShow:
		if party != PartyRequester && party != PartyOwner {
			return apperr.New(apperr.KindForbidden, "only the requester or the owner can report a no-show")
		}
		if !resv.SlotEnd.Before(now) {
			return apperr.New(apperr.KindInvalidStatusTransition,
				"no-show can only be reported after the slot has ended")
		}

	case resv.Status == models.StatusConfirmed && newStatus == models.StatusCompleted:
		if party != PartySystem && party != PartyOwner {
			return apperr.New(apperr.KindForbidden, "completion is not requester-driven")
		}
		if !resv.SlotEnd.Before(now) {
			return apperr.New(apperr.KindInvalidStatusTransition,
				"a booking completes only after its slot has ended")
		}

	default:
		return apperr.New(apperr.KindInvalidStatusTransition,
			"cannot move a %s reservation to %s", resv.Status, newStatus)
	}

	resv.Status = newStatus
	resv.UpdatedAt = now.UTC()
	return nil
}
