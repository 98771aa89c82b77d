package booking

import (
	"context"
	"time"

	"rezerv/apperr"
	"rezerv/availability"
	"rezerv/locks"
	"rezerv/models"
	"rezerv/utils"
)

// Coordinator is the only component that mutates reservation state. It
// composes the availability data, the conflict check and the lifecycle
// state machine, and serializes all mutations per resource. Validation
// runs entirely before the write, so a failed call never leaves a
// partial update behind.
type Coordinator struct {
	store Store
	locks *locks.Registry

	// now is swappable in tests
	now func() time.Time
}

func NewCoordinator(store Store, registry *locks.Registry) *Coordinator {
	return &Coordinator{
		store: store,
		locks: registry,
		now:   time.Now,
	}
}

// Default is the coordinator the HTTP layer talks to. It shares the
// process-wide lock registry with the availability handlers.
var Default = NewCoordinator(NewMongoStore(), locks.Resources)

// RequestBooking validates and creates a pending reservation for the
// requester. The requested interval must sit inside one generated slot
// and must not collide with another active reservation.
func (c *Coordinator) RequestBooking(ctx context.Context, resourceID, requesterID string, slotStart, slotEnd time.Time) (*models.Reservation, error) {
	// Templates describe wall-clock windows in UTC, so requests are pinned
	// to UTC before any day boundary or slot comparison happens.
	slotStart = slotStart.UTC()
	slotEnd = slotEnd.UTC()
	if !slotStart.Before(slotEnd) {
		return nil, apperr.New(apperr.KindInvalidRange, "slotStart must be before slotEnd")
	}
	now := c.now()
	if slotStart.Before(now) {
		return nil, apperr.New(apperr.KindPastDate, "cannot book a slot in the past")
	}

	release, err := c.locks.Acquire(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := c.store.Resource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	offered, err := c.slotOffered(ctx, res, slotStart, slotEnd)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, apperr.New(apperr.KindSlotNotOffered,
			"requested time is outside the resource's availability")
	}

	active, err := c.store.ActiveReservations(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if HasConflict(res, slotStart, slotEnd, active) {
		return nil, apperr.New(apperr.KindSlotConflict, "this time is no longer available")
	}

	resv := &models.Reservation{
		ID:          utils.GetUUID(),
		ResourceID:  resourceID,
		RequesterID: requesterID,
		SlotStart:   slotStart.UTC(),
		SlotEnd:     slotEnd.UTC(),
		Status:      models.StatusPending,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := c.store.InsertReservation(ctx, resv); err != nil {
		return nil, err
	}
	return resv, nil
}

// slotOffered checks the requested interval against the slots the
// generator would offer for that date. Booking a sub-interval of an
// offered slot is allowed; spanning two slots or straying outside the
// template is not.
func (c *Coordinator) slotOffered(ctx context.Context, res *models.Resource, slotStart, slotEnd time.Time) (bool, error) {
	templates, err := c.store.Templates(ctx, res.ResourceID)
	if err != nil {
		return false, err
	}
	dayStart := time.Date(slotStart.Year(), slotStart.Month(), slotStart.Day(), 0, 0, 0, 0, slotStart.Location())
	blackouts, err := c.store.Blackouts(ctx, res.ResourceID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return false, err
	}

	for _, slot := range availability.ExpandDay(templates, blackouts, dayStart, availability.GranularityFor(res)) {
		if !slotStart.Before(slot.Start) && !slotEnd.After(slot.End) {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus moves a reservation along one lifecycle edge on behalf
// of actorID. Confirmation re-runs the conflict check: a competing
// requester can claim the slot between request and acceptance.
func (c *Coordinator) UpdateStatus(ctx context.Context, reservationID, actorID, newStatus, reason string) (*models.Reservation, error) {
	// Resolve the resource first; the authoritative read happens again
	// under the lock.
	peek, err := c.store.Reservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	release, err := c.locks.Acquire(ctx, peek.ResourceID)
	if err != nil {
		return nil, err
	}
	defer release()

	resv, err := c.store.Reservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	res, err := c.store.Resource(ctx, resv.ResourceID)
	if err != nil {
		return nil, err
	}

	party, err := partyOf(resv, res, actorID)
	if err != nil {
		return nil, err
	}

	updated := *resv
	if err := Transition(&updated, party, newStatus, reason, c.now()); err != nil {
		return nil, err
	}

	if resv.Status == models.StatusPending && newStatus == models.StatusConfirmed {
		active, err := c.store.ActiveReservations(ctx, resv.ResourceID)
		if err != nil {
			return nil, err
		}
		others := active[:0:0]
		for _, a := range active {
			if a.ID != resv.ID {
				others = append(others, a)
			}
		}
		if HasConflict(res, resv.SlotStart, resv.SlotEnd, others) {
			return nil, apperr.New(apperr.KindSlotConflict,
				"slot was claimed by another booking before acceptance")
		}
	}

	if err := c.store.UpdateReservation(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func partyOf(resv *models.Reservation, res *models.Resource, actorID string) (Party, error) {
	switch actorID {
	case resv.RequesterID:
		return PartyRequester, nil
	case res.OwnerID:
		return PartyOwner, nil
	}
	return "", apperr.New(apperr.KindForbidden, "actor %s is not a party to this reservation", actorID)
}

// ListReservations returns reservations filtered by resource and/or
// requester, earliest slot first. A zero Limit disables paging.
func (c *Coordinator) ListReservations(ctx context.Context, resourceID, userID string, page utils.QueryOptions) ([]models.Reservation, error) {
	return c.store.ListReservations(ctx, resourceID, userID, page)
}

// CompleteExpired advances every confirmed reservation whose slot has
// ended to completed, one resource section at a time. Returns how many
// reservations were completed.
func (c *Coordinator) CompleteExpired(ctx context.Context) (int, error) {
	ended, err := c.store.ConfirmedEndedBefore(ctx, c.now())
	if err != nil {
		return 0, err
	}

	done := 0
	for _, resv := range ended {
		if err := c.completeOne(ctx, resv.ID, resv.ResourceID); err != nil {
			// A race with a late cancel or no-show report is fine; the
			// reservation simply is not confirmed anymore.
			if apperr.KindOf(err) != "" {
				continue
			}
			return done, err
		}
		done++
	}
	return done, nil
}

func (c *Coordinator) completeOne(ctx context.Context, reservationID, resourceID string) error {
	release, err := c.locks.Acquire(ctx, resourceID)
	if err != nil {
		return err
	}
	defer release()

	resv, err := c.store.Reservation(ctx, reservationID)
	if err != nil {
		return err
	}
	updated := *resv
	if err := Transition(&updated, PartySystem, models.StatusCompleted, "", c.now()); err != nil {
		return err
	}
	return c.store.UpdateReservation(ctx, &updated)
}
