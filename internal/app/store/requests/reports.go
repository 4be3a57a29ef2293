// internal/app/store/requests/reports.go
package requeststore

import (
	"context"
	"time"

	"github.com/dalemusser/helpbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report queries aggregate over requests whose created_at falls inside
// a half-open window [start, end). The only global (un-windowed) number
// is CountActive: "active right now" is a point-in-time fact, not a
// per-window one.

func createdBetween(start, end time.Time) bson.M {
	return bson.M{"created_at": bson.M{"$gte": start, "$lt": end}}
}

// CountCreatedBetween returns the number of requests created in the window.
func (s *Store) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, createdBetween(start, end))
}

// StatusCountsBetween returns per-status counts for requests created in
// the window. Statuses with no requests are absent from the map.
func (s *Store) StatusCountsBetween(ctx context.Context, start, end time.Time) (map[models.RequestStatus]int64, error) {
	pipeline := []bson.M{
		{"$match": createdBetween(start, end)},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[models.RequestStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status models.RequestStatus `bson:"_id"`
			Count  int64                `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}

// CategoryCount pairs a category key with its request count and how
// many of those reached matched.
type CategoryCount struct {
	CategoryID string `bson:"_id" json:"category"`
	Count      int64  `bson:"count" json:"count"`
	Matched    int64  `bson:"matched" json:"matched"`
}

// CategoryBreakdownBetween returns per-category request counts for the
// window, largest first.
func (s *Store) CategoryBreakdownBetween(ctx context.Context, start, end time.Time) ([]CategoryCount, error) {
	pipeline := []bson.M{
		{"$match": createdBetween(start, end)},
		{"$group": bson.M{
			"_id":   "$category_id",
			"count": bson.M{"$sum": 1},
			"matched": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.StatusMatched}}, 1, 0,
			}}},
		}},
		{"$sort": bson.M{"count": -1, "_id": 1}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []CategoryCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CountActive returns the current number of open requests (pending or
// matched) across the whole collection.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []models.RequestStatus{models.StatusPending, models.StatusMatched}},
	})
}

// PerformerStat summarizes one volunteer's assignments in a window.
// Categories holds the distinct category keys the volunteer served.
type PerformerStat struct {
	VolunteerID primitive.ObjectID `bson:"_id" json:"volunteerId"`
	Name        string             `bson:"name" json:"name"`
	Matches     int64              `bson:"matches" json:"matches"`
	Categories  []string           `bson:"categories" json:"categories"`
	AvgRating   float64            `bson:"avg_rating" json:"avgRating"`
}

// TopPerformersBetween ranks volunteers by assignments on requests
// created in the window, most first. AvgRating averages whatever
// ratings exist; unrated assignments do not drag it down.
func (s *Store) TopPerformersBetween(ctx context.Context, start, end time.Time, limit int64) ([]PerformerStat, error) {
	if limit <= 0 {
		limit = 5
	}

	pipeline := []bson.M{
		{"$match": createdBetween(start, end)},
		{"$unwind": "$assigned_volunteers"},
		{"$group": bson.M{
			"_id":        "$assigned_volunteers.volunteer_id",
			"name":       bson.M{"$first": "$assigned_volunteers.name"},
			"matches":    bson.M{"$sum": 1},
			"categories": bson.M{"$addToSet": "$category_id"},
			"avg_rating": bson.M{"$avg": "$assigned_volunteers.rating"},
		}},
		// $avg of all-unrated assignments is null; coerce for decoding.
		{"$set": bson.M{"avg_rating": bson.M{"$ifNull": bson.A{"$avg_rating", 0}}}},
		{"$sort": bson.M{"matches": -1, "avg_rating": -1}},
		{"$limit": limit},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []PerformerStat
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
