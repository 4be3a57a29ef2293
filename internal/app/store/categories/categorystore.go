// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"errors"
	"strings"
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

var ErrDuplicateKey = errors.New("a category with this key already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// Defaults returns the eight built-in service categories in display
// order. The slice is rebuilt on each call so callers can mutate it.
func Defaults() []models.Category {
	defs := []struct {
		key  string
		en   string
		zh   string
		icon string
	}{
		{"medical", "Medical Assistance", "医疗协助", "medical"},
		{"transportation", "Transportation", "交通接送", "car"},
		{"shopping", "Shopping", "代购物品", "cart"},
		{"housework", "Housework", "家务帮助", "home"},
		{"companionship", "Companionship", "陪伴关怀", "heart"},
		{"education", "Education", "教育辅导", "book"},
		{"legal", "Legal Aid", "法律咨询", "scale"},
		{"other", "Other", "其他", "dots"},
	}

	cats := make([]models.Category, 0, len(defs))
	for i, d := range defs {
		cats = append(cats, models.Category{
			Key:         d.key,
			Name:        d.en,
			DisplayName: models.CategoryName{ZH: d.zh, EN: d.en},
			Icon:        d.icon,
			Status:      models.CategoryActive,
			SortOrder:   i,
		})
	}
	return cats
}

// EnsureDefaults upserts the built-in categories. Existing documents
// are left alone so platform-manager edits survive restarts.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	now := time.Now().UTC()
	for _, cat := range Defaults() {
		cat.ID = primitive.NewObjectID()
		cat.CreatedAt = now
		cat.UpdatedAt = now
		_, err := s.c.UpdateOne(ctx,
			bson.M{"key": cat.Key},
			bson.M{"$setOnInsert": cat},
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetByKey(ctx context.Context, key string) (models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&cat); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// KnownKey reports whether key names an existing category. When the
// collection is unreachable or empty the built-in defaults answer
// instead, so request validation degrades the same way category reads
// do.
func (s *Store) KnownKey(ctx context.Context, key string) bool {
	if _, err := s.GetByKey(ctx, key); err == nil {
		return true
	}
	for _, cat := range Defaults() {
		if cat.Key == key {
			return true
		}
	}
	return false
}

// ListActive returns active categories in display order.
func (s *Store) ListActive(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, bson.M{"status": models.CategoryActive})
}

// ListAll returns every category, active or not, in display order.
func (s *Store) ListAll(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, q bson.M) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "key", Value: 1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Create inserts a new category. The key is lowercased, trimmed, and
// must be unique.
func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	now := time.Now().UTC()
	cat.ID = primitive.NewObjectID()
	cat.Key = strings.ToLower(strings.TrimSpace(cat.Key))
	if cat.Status == "" {
		cat.Status = models.CategoryActive
	}
	cat.CreatedAt = now
	cat.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, cat)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateKey
		}
		return models.Category{}, err
	}
	return cat, nil
}

// Update rewrites the mutable fields of a category identified by key.
func (s *Store) Update(ctx context.Context, key string, cat models.Category) (int64, error) {
	set := bson.M{
		"updated_at":   time.Now().UTC(),
		"description":  cat.Description,
		"icon":         cat.Icon,
		"sort_order":   cat.SortOrder,
		"display_name": cat.DisplayName,
	}
	if cat.Name != "" {
		set["name"] = cat.Name
	}
	if cat.Status != "" {
		set["status"] = cat.Status
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"key": key}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes a category by key. Returns the number of documents
// deleted (0 or 1). Requests keep their category_id string even after
// the category is gone; they render as uncategorized.
func (s *Store) Delete(ctx context.Context, key string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
