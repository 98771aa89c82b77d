package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"rezerv/apperr"
	"rezerv/live"
	"rezerv/middleware"
	"rezerv/models"
	"rezerv/mq"
	"rezerv/resources"
	"rezerv/utils"

	"github.com/julienschmidt/httprouter"
)

// POST /api/bookings
func RequestBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		ResourceID string    `json:"resourceId"`
		SlotStart  time.Time `json:"slotStart"`
		SlotEnd    time.Time `json:"slotEnd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.ResourceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing resourceId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requesterID := middleware.RequesterID(r)
	resv, err := Default.RequestBooking(ctx, body.ResourceID, requesterID, body.SlotStart, body.SlotEnd)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	mq.Emit(ctx, mq.Event{
		Type:       "reservation.created",
		ResourceID: resv.ResourceID,
		EntityID:   resv.ID,
		ActorID:    requesterID,
		Status:     resv.Status,
	})
	live.BroadcastUpdate(resv.ResourceID)
	utils.RespondWithJSON(w, http.StatusCreated, resv)
}

// PATCH /api/bookings/:id/status
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status string `json:"status"`
		Reason string `json:"reason,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actorID := middleware.RequesterID(r)
	resv, err := Default.UpdateStatus(ctx, ps.ByName("id"), actorID, body.Status, body.Reason)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	mq.Emit(ctx, mq.Event{
		Type:       "reservation.status",
		ResourceID: resv.ResourceID,
		EntityID:   resv.ID,
		ActorID:    actorID,
		Status:     resv.Status,
	})
	live.BroadcastUpdate(resv.ResourceID)
	utils.RespondWithJSON(w, http.StatusOK, resv)
}

// GET /api/bookings?resourceId=&userId=
//
// A caller may list their own reservations, or, as a resource owner,
// every reservation on that resource.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resourceID := r.URL.Query().Get("resourceId")
	userID := r.URL.Query().Get("userId")
	caller := middleware.RequesterID(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if userID == "" {
		userID = caller
	}
	if userID != caller {
		utils.RespondWithError(w, http.StatusForbidden, "cannot list another user's reservations")
		return
	}
	if resourceID != "" && userID == caller {
		// A resource owner querying their resource sees all requesters.
		if res, err := resources.GetByID(ctx, resourceID); err == nil && res.OwnerID == caller {
			userID = ""
		}
	}

	list, err := Default.ListReservations(ctx, resourceID, userID, utils.ParseQueryOptions(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), "db error")
		return
	}
	if list == nil {
		list = []models.Reservation{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": list})
}
