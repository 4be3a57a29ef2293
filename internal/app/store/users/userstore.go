// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/helpbridge/internal/app/system/paging"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.NameCI = text.Fold(u.Name)
	u.EmailCI = text.Fold(u.Email)
	if u.Status == "" {
		u.Status = models.UserActive
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateInfo updates mutable profile fields. Empty name/email are left
// untouched; phone, address, organization, and skills can be cleared.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, u models.User) error {
	set := bson.M{
		"updated_at":   time.Now().UTC(),
		"phone":        u.Phone,
		"address":      u.Address,
		"organization": u.Organization,
		"skills":       u.Skills,
	}
	if u.Name != "" {
		set["name"] = u.Name
		set["name_ci"] = text.Fold(u.Name)
	}
	if u.Email != "" {
		set["email"] = u.Email
		set["email_ci"] = text.Fold(u.Email)
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateStatus sets one user's account status.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// BatchSetStatus sets the status on every listed user in one write.
// Returns the number of documents modified.
func (s *Store) BatchSetStatus(ctx context.Context, ids []primitive.ObjectID, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// TouchLastLogin stamps last_login without touching updated_at.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
	return err
}

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	Role   string
	Status string
	Search string // folded prefix match on name_ci
}

func (f ListFilter) query() bson.M {
	q := bson.M{}
	if f.Role != "" {
		q["role"] = f.Role
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Search != "" {
		q["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(f.Search))}
	}
	return q
}

// List returns one keyset page of users sorted by folded name. The
// slice holds up to PageSize+1 rows; callers run paging.TrimPage and,
// when paging backwards, paging.Reverse.
func (s *Store) List(ctx context.Context, f ListFilter, before, after string) ([]models.User, paging.KeysetConfig, error) {
	cfg := paging.ConfigureKeyset(before, after)

	q := f.query()
	if window := cfg.KeysetWindow("name_ci"); window != nil {
		for k, v := range window {
			q[k] = v
		}
	}

	find := options.Find()
	cfg.ApplyToFind(find, "name_ci")

	cur, err := s.c.Find(ctx, q, find)
	if err != nil {
		return nil, cfg, err
	}
	defer cur.Close(ctx)

	var rows []models.User
	if err := cur.All(ctx, &rows); err != nil {
		return nil, cfg, err
	}
	return rows, cfg, nil
}

// Count returns the number of users matching the filter.
func (s *Store) Count(ctx context.Context, f ListFilter) (int64, error) {
	return s.c.CountDocuments(ctx, f.query())
}

// CountCreatedBetween returns registrations in the half-open window [start, end).
func (s *Store) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": start, "$lt": end}})
}

// CountByRole returns the number of users holding a role.
func (s *Store) CountByRole(ctx context.Context, role string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": role})
}
