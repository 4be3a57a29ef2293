// internal/app/store/tokens/tokenstore.go
package tokenstore

import (
	"context"
	"time"

	"github.com/dalemusser/helpbridge/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("auth_tokens")}
}

// Insert records a token for a user. Token issuance lives outside this
// service; Insert exists for provisioning tools and tests.
func (s *Store) Insert(ctx context.Context, token string, userID primitive.ObjectID) (models.AuthToken, error) {
	now := time.Now().UTC()
	t := models.AuthToken{
		ID:         primitive.NewObjectID(),
		Token:      token,
		UserID:     userID,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			// Same token re-provisioned; treat it as already present.
			return s.getByToken(ctx, token)
		}
		return models.AuthToken{}, err
	}
	return t, nil
}

func (s *Store) getByToken(ctx context.Context, token string) (models.AuthToken, error) {
	var t models.AuthToken
	if err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&t); err != nil {
		return models.AuthToken{}, err
	}
	return t, nil
}

// ResolveToken maps a bearer token to a user ID hex string, stamping
// last_seen_at on the way through. Unknown tokens and lookup errors
// both return "" so the caller treats the request as anonymous.
// This implements auth.TokenResolver.
func (s *Store) ResolveToken(ctx context.Context, token string) string {
	if token == "" {
		return ""
	}
	var t models.AuthToken
	if err := s.c.FindOneAndUpdate(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"last_seen_at": time.Now().UTC()}},
	).Decode(&t); err != nil {
		return ""
	}
	return t.UserID.Hex()
}

// DeleteStaleBefore removes tokens not seen since the cutoff. Returns
// the number of tokens removed. Called by the cleanup worker.
func (s *Store) DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"last_seen_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes all of a user's tokens, cutting off access
// immediately when an account is suspended or deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
