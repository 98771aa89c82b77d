package availability

import (
	"context"
	"time"

	"rezerv/apperr"
	"rezerv/db"
	"rezerv/models"
	"rezerv/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// validDays accepts the wildcard plus full English weekday names, the
// same values time.Weekday.String produces.
var validDays = map[string]bool{
	models.DayAll: true,
	"Sunday":      true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// ListTemplates returns every weekly template for a resource.
func ListTemplates(ctx context.Context, resourceID string) ([]models.AvailabilityTemplate, error) {
	return utils.FindAndDecode[models.AvailabilityTemplate](ctx, db.TemplatesCollection, bson.M{"resourceId": resourceID})
}

// ValidateTemplate checks a weekly template's day and clock ranges
// without touching storage.
func ValidateTemplate(tpl *models.AvailabilityTemplate) error {
	if !validDays[tpl.Day] {
		return apperr.New(apperr.KindBadInput, "unknown day %q", tpl.Day)
	}
	if len(tpl.Ranges) == 0 {
		return apperr.New(apperr.KindBadInput, "template needs at least one time range")
	}
	for _, rng := range tpl.Ranges {
		s, err1 := time.Parse("15:04", rng.Start)
		e, err2 := time.Parse("15:04", rng.End)
		if err1 != nil || err2 != nil {
			return apperr.New(apperr.KindBadInput, "time ranges must be HH:MM")
		}
		// start == end is a legal zero-length range; the generator skips it
		if s.After(e) {
			return apperr.New(apperr.KindInvalidRange, "range %s-%s is inverted", rng.Start, rng.End)
		}
	}
	return nil
}

// ValidateBlackoutRange checks a blackout interval. Start must be
// strictly before end; zero-length blackouts exclude nothing and are
// rejected.
func ValidateBlackoutRange(start, end time.Time) error {
	if !start.Before(end) {
		return apperr.New(apperr.KindInvalidRange, "blackout start must be before end")
	}
	return nil
}

// ownedDelete maps a delete result to NotFound when nothing matched
// the id and resource pair.
func ownedDelete(deleted int64, what, id, resourceID string) error {
	if deleted == 0 {
		return apperr.New(apperr.KindNotFound, "%s %s not found for resource %s", what, id, resourceID)
	}
	return nil
}

// AddTemplate validates and stores a weekly template.
func AddTemplate(ctx context.Context, tpl *models.AvailabilityTemplate) error {
	if err := ValidateTemplate(tpl); err != nil {
		return err
	}

	tpl.ID = utils.GetUUID()
	tpl.CreatedAt = time.Now().UTC()
	_, err := db.TemplatesCollection.InsertOne(ctx, tpl)
	return err
}

// RemoveTemplate deletes a template owned by the resource.
func RemoveTemplate(ctx context.Context, resourceID, templateID string) error {
	res, err := db.TemplatesCollection.DeleteOne(ctx, bson.M{"id": templateID, "resourceId": resourceID})
	if err != nil {
		return err
	}
	return ownedDelete(res.DeletedCount, "template", templateID, resourceID)
}

// AddBlackout records an explicit unbookable interval. Start must be
// strictly before end.
func AddBlackout(ctx context.Context, resourceID string, start, end time.Time) (*models.BlackoutPeriod, error) {
	if err := ValidateBlackoutRange(start, end); err != nil {
		return nil, err
	}

	b := &models.BlackoutPeriod{
		ID:         utils.GetUUID(),
		ResourceID: resourceID,
		Start:      start.UTC(),
		End:        end.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := db.BlackoutsCollection.InsertOne(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// RemoveBlackout deletes a blackout if it belongs to the resource.
func RemoveBlackout(ctx context.Context, resourceID, blackoutID string) error {
	res, err := db.BlackoutsCollection.DeleteOne(ctx, bson.M{"id": blackoutID, "resourceId": resourceID})
	if err != nil {
		return err
	}
	return ownedDelete(res.DeletedCount, "blackout", blackoutID, resourceID)
}

// ListBlackouts returns every blackout for a resource, earliest first.
func ListBlackouts(ctx context.Context, resourceID string) ([]models.BlackoutPeriod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	return utils.FindAndDecode[models.BlackoutPeriod](ctx, db.BlackoutsCollection, bson.M{"resourceId": resourceID}, opts)
}

// ListBlackoutWindow returns the blackouts intersecting [from, to),
// earliest first. Used for calendar rendering and slot generation.
func ListBlackoutWindow(ctx context.Context, resourceID string, from, to time.Time) ([]models.BlackoutPeriod, error) {
	filter := bson.M{
		"resourceId": resourceID,
		"start":      bson.M{"$lt": to},
		"end":        bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	return utils.FindAndDecode[models.BlackoutPeriod](ctx, db.BlackoutsCollection, filter, opts)
}
