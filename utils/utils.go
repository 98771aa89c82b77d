package utils

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetUUID() string {
	return uuid.New().String()
}

// --- Query Helpers ---

type QueryOptions struct {
	Page  int
	Limit int
}

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}

	return QueryOptions{Page: page, Limit: limit}
}

// FindAndDecode runs a filter against a collection and decodes every
// document into a slice of T.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []T
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, cur.Err()
}
