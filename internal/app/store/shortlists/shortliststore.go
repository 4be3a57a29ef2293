// internal/app/store/shortlists/shortliststore.go
package shortliststore

import (
	"context"
	"time"

	"github.com/dalemusser/helpbridge/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("shortlists")}
}

// Toggle adds the request to the user's shortlist, or removes it when
// already present. The unique (user_id, request_id) index makes the
// insert race-safe: losing the race degrades to the remove branch.
// Returns true when the entry was added, false when removed.
func (s *Store) Toggle(ctx context.Context, userID primitive.ObjectID, req models.Request) (bool, error) {
	entry := models.ShortlistEntry{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		RequestID:     req.ID,
		Request:       req,
		ShortlistedAt: time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, entry)
	if err == nil {
		return true, nil
	}
	if !wafflemongo.IsDup(err) {
		return false, err
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"user_id": userID, "request_id": req.ID})
	return false, err
}

// ListByUser returns the user's shortlist, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ShortlistEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "shortlisted_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.ShortlistEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Has reports whether the user has shortlisted the request.
func (s *Store) Has(ctx context.Context, userID, requestID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"user_id": userID, "request_id": requestID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByUser returns the size of a user's shortlist.
func (s *Store) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}

// DeleteByRequest removes every shortlist entry pointing at a request.
// Called when the request itself is deleted.
func (s *Store) DeleteByRequest(ctx context.Context, requestID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"request_id": requestID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
