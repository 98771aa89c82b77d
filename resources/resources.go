package resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"rezerv/apperr"
	"rezerv/db"
	"rezerv/middleware"
	"rezerv/models"
	"rezerv/rdx"
	"rezerv/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const listCacheKey = "resources"

// GetByID loads one resource. Returns a NotFound business error when
// the id is unknown.
func GetByID(ctx context.Context, resourceID string) (*models.Resource, error) {
	var res models.Resource
	err := db.ResourcesCollection.FindOne(ctx, bson.M{"resourceid": resourceID}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindNotFound, "resource %s not found", resourceID)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetResources lists all bookable resources, with a short Redis cache
// in front of Mongo.
func GetResources(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if cached, _ := rdx.RdxGet(listCacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	list, err := utils.FindAndDecode[models.Resource](ctx, db.ResourcesCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch resources")
		return
	}
	if list == nil {
		list = []models.Resource{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode resources")
		return
	}
	rdx.RdxSet(listCacheKey, string(data))
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func GetResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := GetByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

func CreateResource(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var res models.Resource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if res.Title == "" || res.Category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if res.SlotMinutes < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "slotMinutes must be positive")
		return
	}

	res.ResourceID = utils.GetUUID()
	res.OwnerID = middleware.RequesterID(r)
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ResourcesCollection.InsertOne(ctx, res); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db insert failed")
		return
	}

	rdx.RdxDel(listCacheKey)
	utils.RespondWithJSON(w, http.StatusCreated, res)
}

func UpdateResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, err := GetByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	if existing.OwnerID != middleware.RequesterID(r) {
		utils.RespondWithError(w, http.StatusForbidden, "only the owner can edit a resource")
		return
	}

	var patch struct {
		Title                 *string  `json:"title"`
		Category              *string  `json:"category"`
		Price                 *float64 `json:"price"`
		AllowMultipleBookings *bool    `json:"allowMultipleBookings"`
		SlotMinutes           *int     `json:"slotMinutes"`
		Contact               *string  `json:"contact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.AllowMultipleBookings != nil {
		set["allowMultipleBookings"] = *patch.AllowMultipleBookings
	}
	if patch.SlotMinutes != nil {
		if *patch.SlotMinutes < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "slotMinutes must be positive")
			return
		}
		set["slotMinutes"] = *patch.SlotMinutes
	}
	if patch.Contact != nil {
		set["contact"] = *patch.Contact
	}

	if _, err := db.ResourcesCollection.UpdateOne(ctx,
		bson.M{"resourceid": existing.ResourceID},
		bson.M{"$set": set},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db update failed")
		return
	}

	rdx.RdxDel(listCacheKey)
	updated, err := GetByID(ctx, existing.ResourceID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db read failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
