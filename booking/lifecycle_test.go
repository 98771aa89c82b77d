package booking

import (
	"testing"
	"time"

	"rezerv/apperr"
	"rezerv/models"
)

func newTestReservation(status string, slotEnd time.Time) *models.Reservation {
	return &models.Reservation{
		ID:          "resv1",
		ResourceID:  "res1",
		RequesterID: "userA",
		SlotStart:   slotEnd.Add(-30 * time.Minute),
		SlotEnd:     slotEnd,
		Status:      status,
	}
}

func TestTransitionConfirmByOwner(t *testing.T) {
	now := time.Now()
	resv := newTestReservation(models.StatusPending, now.Add(time.Hour))

	if err := Transition(resv, PartyOwner, models.StatusConfirmed, "", now); err != nil {
		t.Fatalf("owner confirm failed: %v", err)
	}
	if resv.Status != models.StatusConfirmed {
		t.Fatalf("status = %s", resv.Status)
	}
}

func TestTransitionConfirmByRequesterRejected(t *testing.T) {
	now := time.Now()
	resv := newTestReservation(models.StatusPending, now.Add(time.Hour))

	err := Transition(resv, PartyRequester, models.StatusConfirmed, "", now)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if resv.Status != models.StatusPending {
		t.Fatal("failed transition mutated the reservation")
	}
}

func TestTransitionCancelRequiresReason(t *testing.T) {
	now := time.Now()
	for _, status := range []string{models.StatusPending, models.StatusConfirmed} {
		resv := newTestReservation(status, now.Add(time.Hour))

		err := Transition(resv, PartyRequester, models.StatusCancelled, "", now)
		if apperr.KindOf(err) != apperr.KindBadInput {
			t.Fatalf("cancel from %s without reason: got %v", status, err)
		}
		if resv.Status != status {
			t.Fatal("failed cancel mutated the reservation")
		}

		if err := Transition(resv, PartyOwner, models.StatusCancelled, "double booked elsewhere", now); err != nil {
			t.Fatalf("cancel from %s with reason failed: %v", status, err)
		}
		if resv.Status != models.StatusCancelled || resv.CancelReason != "double booked elsewhere" {
			t.Fatalf("cancelled reservation = %+v", resv)
		}
	}
}

func TestTransitionNoShowOnlyAfterSlotEnd(t *testing.T) {
	now := time.Now()

	early := newTestReservation(models.StatusConfirmed, now.Add(time.Hour))
	err := Transition(early, PartyRequester, models.StatusNoShow, "", now)
	if apperr.KindOf(err) != apperr.KindInvalidStatusTransition {
		t.Fatalf("no-show before slotEnd: got %v", err)
	}

	past := newTestReservation(models.StatusConfirmed, now.Add(-2*time.Hour))
	if err := Transition(past, PartyOwner, models.StatusNoShow, "", now); err != nil {
		t.Fatalf("no-show after slotEnd failed: %v", err)
	}
	if past.Status != models.StatusNoShow {
		t.Fatalf("status = %s", past.Status)
	}
}

func TestTransitionNoShowFromPendingRejected(t *testing.T) {
	now := time.Now()
	resv := newTestReservation(models.StatusPending, now.Add(-time.Hour))

	err := Transition(resv, PartyOwner, models.StatusNoShow, "", now)
	if apperr.KindOf(err) != apperr.KindInvalidStatusTransition {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestTransitionCompleteOnlyAfterSlotEnd(t *testing.T) {
	now := time.Now()

	early := newTestReservation(models.StatusConfirmed, now.Add(time.Hour))
	err := Transition(early, PartySystem, models.StatusCompleted, "", now)
	if apperr.KindOf(err) != apperr.KindInvalidStatusTransition {
		t.Fatalf("complete before slotEnd: got %v", err)
	}

	past := newTestReservation(models.StatusConfirmed, now.Add(-time.Minute))
	if err := Transition(past, PartySystem, models.StatusCompleted, "", now); err != nil {
		t.Fatalf("complete after slotEnd failed: %v", err)
	}
}

func TestTransitionTerminalStatesFrozen(t *testing.T) {
	now := time.Now()
	targets := []string{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted,
		models.StatusCancelled, models.StatusNoShow,
	}

	for _, terminal := range []string{models.StatusCompleted, models.StatusCancelled, models.StatusNoShow} {
		for _, target := range targets {
			resv := newTestReservation(terminal, now.Add(-time.Hour))
			err := Transition(resv, PartyOwner, target, "some reason", now)
			if apperr.KindOf(err) != apperr.KindInvalidStatusTransition {
				t.Fatalf("%s -> %s: expected invalid transition, got %v", terminal, target, err)
			}
			if resv.Status != terminal {
				t.Fatalf("%s -> %s mutated the reservation", terminal, target)
			}
		}
	}
}

func TestTransitionPendingToCompletedRejected(t *testing.T) {
	now := time.Now()
	resv := newTestReservation(models.StatusPending, now.Add(-time.Hour))

	err := Transition(resv, PartySystem, models.StatusCompleted, "", now)
	if apperr.KindOf(err) != apperr.KindInvalidStatusTransition {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}
