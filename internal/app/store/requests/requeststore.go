// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/helpbridge/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrConflict is returned by ReplaceGuarded when the document changed
// between the caller's load and its write. Callers should reload and
// retry or surface 409.
var ErrConflict = errors.New("request was modified by another operation")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("requests")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Request, error) {
	var req models.Request
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// Create inserts a new help request. Status starts pending, the
// volunteer lists start empty (but present, so array updates never hit
// a null field), and both counters start at zero.
func (s *Store) Create(ctx context.Context, req models.Request) (models.Request, error) {
	now := time.Now().UTC()
	req.ID = primitive.NewObjectID()
	req.TitleCI = text.Fold(req.Title)
	req.Status = models.StatusPending
	req.Frozen = nil
	if req.VolunteersNeeded < 1 {
		req.VolunteersNeeded = 1
	}
	req.InterestedVolunteers = []models.InterestedVolunteer{}
	req.RejectedVolunteers = []models.RejectedVolunteer{}
	req.AssignedVolunteers = []models.AssignedVolunteer{}
	req.ViewCount = 0
	req.ShortlistCount = 0
	req.MatchedAt = nil
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// ReplaceGuarded writes back a request loaded earlier, but only if the
// stored updated_at still equals loadedUpdatedAt. Workflow handlers
// load a request, run a transition in memory, then call this; losing
// the race returns ErrConflict instead of silently clobbering the
// other writer.
func (s *Store) ReplaceGuarded(ctx context.Context, req models.Request, loadedUpdatedAt time.Time) (models.Request, error) {
	req.TitleCI = text.Fold(req.Title)
	req.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": req.ID, "updated_at": loadedUpdatedAt}, req)
	if err != nil {
		return models.Request{}, err
	}
	if res.MatchedCount == 0 {
		return models.Request{}, ErrConflict
	}
	return req, nil
}

// Delete removes a request by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// IncrementViews bumps the view counter without touching updated_at,
// so a read never causes a workflow write conflict.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"view_count": 1}})
	return err
}

// AdjustShortlistCount moves the shortlist counter by delta (±1).
// Like IncrementViews it leaves updated_at alone.
func (s *Store) AdjustShortlistCount(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"shortlist_count": delta}})
	return err
}

// ListFilter scopes List to what a caller is allowed to see. Finer
// filtering (category, urgency, text) happens in memory over the
// cached scope, so the store only narrows by status and requester.
type ListFilter struct {
	Statuses    []models.RequestStatus
	RequesterID *primitive.ObjectID
}

func (f ListFilter) query() bson.M {
	q := bson.M{}
	if len(f.Statuses) > 0 {
		q["status"] = bson.M{"$in": f.Statuses}
	}
	if f.RequesterID != nil {
		q["requester_id"] = *f.RequesterID
	}
	return q
}

// List returns requests matching the filter, newest first. A limit of
// 0 or less means no limit; callers that cache a whole scope pass 0.
func (s *Store) List(ctx context.Context, f ListFilter, limit int64) ([]models.Request, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.Request
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of requests matching the filter.
func (s *Store) Count(ctx context.Context, f ListFilter) (int64, error) {
	return s.c.CountDocuments(ctx, f.query())
}
