package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"rezerv/apperr"
	"rezerv/live"
	"rezerv/locks"
	"rezerv/middleware"
	"rezerv/models"
	"rezerv/mq"
	"rezerv/resources"
	"rezerv/utils"

	"github.com/julienschmidt/httprouter"
)

// ownedResource loads the resource and checks the caller owns it.
func ownedResource(ctx context.Context, r *http.Request, resourceID string) (*models.Resource, error) {
	res, err := resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if res.OwnerID != middleware.RequesterID(r) {
		return nil, apperr.New(apperr.KindForbidden, "only the owner can manage availability")
	}
	return res, nil
}

// POST /api/resources/:id/templates
func CreateTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := ownedResource(ctx, r, resourceID); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	var tpl models.AvailabilityTemplate
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	tpl.ResourceID = resourceID

	release, err := locks.Resources.Acquire(ctx, resourceID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), "request cancelled")
		return
	}
	defer release()

	if err := AddTemplate(ctx, &tpl); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	live.BroadcastUpdate(resourceID)
	utils.RespondWithJSON(w, http.StatusCreated, tpl)
}

// GET /api/resources/:id/templates
func GetTemplates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	templates, err := ListTemplates(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if templates == nil {
		templates = []models.AvailabilityTemplate{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"templates": templates})
}

// DELETE /api/resources/:id/templates/:templateId
func DeleteTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := ownedResource(ctx, r, resourceID); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	release, err := locks.Resources.Acquire(ctx, resourceID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), "request cancelled")
		return
	}
	defer release()

	if err := RemoveTemplate(ctx, resourceID, ps.ByName("templateId")); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	live.BroadcastUpdate(resourceID)
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/resources/:id/blackouts
func CreateBlackout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := ownedResource(ctx, r, resourceID); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	var body struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	release, err := locks.Resources.Acquire(ctx, resourceID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), "request cancelled")
		return
	}
	defer release()

	blackout, err := AddBlackout(ctx, resourceID, body.Start, body.End)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	mq.Emit(ctx, mq.Event{
		Type:       "blackout.created",
		ResourceID: resourceID,
		EntityID:   blackout.ID,
		ActorID:    middleware.RequesterID(r),
	})
	live.BroadcastUpdate(resourceID)
	utils.RespondWithJSON(w, http.StatusCreated, blackout)
}

// GET /api/resources/:id/blackouts?from=&to=
func GetBlackouts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		blackouts []models.BlackoutPeriod
		err       error
	)

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" && toStr != "" {
		from, err1 := time.Parse(time.RFC3339, fromStr)
		to, err2 := time.Parse(time.RFC3339, toStr)
		if err1 != nil || err2 != nil || !from.Before(to) {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid window")
			return
		}
		blackouts, err = ListBlackoutWindow(ctx, resourceID, from, to)
	} else {
		blackouts, err = ListBlackouts(ctx, resourceID)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if blackouts == nil {
		blackouts = []models.BlackoutPeriod{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"blackouts": blackouts})
}

// DELETE /api/resources/:id/blackouts/:blackoutId
func DeleteBlackout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := ownedResource(ctx, r, resourceID); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	release, err := locks.Resources.Acquire(ctx, resourceID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), "request cancelled")
		return
	}
	defer release()

	if err := RemoveBlackout(ctx, resourceID, ps.ByName("blackoutId")); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	mq.Emit(ctx, mq.Event{
		Type:       "blackout.removed",
		ResourceID: resourceID,
		EntityID:   ps.ByName("blackoutId"),
		ActorID:    middleware.RequesterID(r),
	})
	live.BroadcastUpdate(resourceID)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/resources/:id/slots?date=YYYY-MM-DD
func GetSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := resources.GetByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	slots, err := GenerateSlots(ctx, res, date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"slots": slots})
}
