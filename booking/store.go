package booking

import (
	"context"
	"errors"
	"time"

	"rezerv/apperr"
	"rezerv/availability"
	"rezerv/db"
	"rezerv/models"
	"rezerv/resources"
	"rezerv/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is everything the coordinator needs from persistence. The
// production implementation is Mongo-backed; tests swap in an in-memory
// one.
type Store interface {
	Resource(ctx context.Context, resourceID string) (*models.Resource, error)
	Templates(ctx context.Context, resourceID string) ([]models.AvailabilityTemplate, error)
	Blackouts(ctx context.Context, resourceID string, from, to time.Time) ([]models.BlackoutPeriod, error)

	Reservation(ctx context.Context, reservationID string) (*models.Reservation, error)
	ActiveReservations(ctx context.Context, resourceID string) ([]models.Reservation, error)
	ListReservations(ctx context.Context, resourceID, userID string, page utils.QueryOptions) ([]models.Reservation, error)
	ConfirmedEndedBefore(ctx context.Context, t time.Time) ([]models.Reservation, error)
	InsertReservation(ctx context.Context, resv *models.Reservation) error
	UpdateReservation(ctx context.Context, resv *models.Reservation) error
}

// MongoStore persists through the shared db collections.
type MongoStore struct{}

func NewMongoStore() *MongoStore { return &MongoStore{} }

func (s *MongoStore) Resource(ctx context.Context, resourceID string) (*models.Resource, error) {
	return resources.GetByID(ctx, resourceID)
}

func (s *MongoStore) Templates(ctx context.Context, resourceID string) ([]models.AvailabilityTemplate, error) {
	return availability.ListTemplates(ctx, resourceID)
}

func (s *MongoStore) Blackouts(ctx context.Context, resourceID string, from, to time.Time) ([]models.BlackoutPeriod, error) {
	return availability.ListBlackoutWindow(ctx, resourceID, from, to)
}

func (s *MongoStore) Reservation(ctx context.Context, reservationID string) (*models.Reservation, error) {
	var resv models.Reservation
	err := db.ReservationsCollection.FindOne(ctx, bson.M{"id": reservationID}).Decode(&resv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindNotFound, "reservation %s not found", reservationID)
	}
	if err != nil {
		return nil, err
	}
	return &resv, nil
}

func (s *MongoStore) ActiveReservations(ctx context.Context, resourceID string) ([]models.Reservation, error) {
	filter := bson.M{
		"resourceId": resourceID,
		"status":     bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
	}
	return utils.FindAndDecode[models.Reservation](ctx, db.ReservationsCollection, filter)
}

func (s *MongoStore) ListReservations(ctx context.Context, resourceID, userID string, page utils.QueryOptions) ([]models.Reservation, error) {
	filter := bson.M{}
	if resourceID != "" {
		filter["resourceId"] = resourceID
	}
	if userID != "" {
		filter["requesterId"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "slotStart", Value: 1}})
	if page.Limit > 0 {
		skip := page.Page - 1
		if skip < 0 {
			skip = 0
		}
		opts.SetSkip(int64(skip * page.Limit)).SetLimit(int64(page.Limit))
	}
	return utils.FindAndDecode[models.Reservation](ctx, db.ReservationsCollection, filter, opts)
}

func (s *MongoStore) ConfirmedEndedBefore(ctx context.Context, t time.Time) ([]models.Reservation, error) {
	filter := bson.M{
		"status":  models.StatusConfirmed,
		"slotEnd": bson.M{"$lt": t},
	}
	return utils.FindAndDecode[models.Reservation](ctx, db.ReservationsCollection, filter)
}

func (s *MongoStore) InsertReservation(ctx context.Context, resv *models.Reservation) error {
	_, err := db.ReservationsCollection.InsertOne(ctx, resv)
	return err
}

func (s *MongoStore) UpdateReservation(ctx context.Context, resv *models.Reservation) error {
	res, err := db.ReservationsCollection.ReplaceOne(ctx, bson.M{"id": resv.ID}, resv)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.KindNotFound, "reservation %s not found", resv.ID)
	}
	return nil
}
