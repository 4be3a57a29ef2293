package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		EmailCI:   text.Fold(email),
		Role:      role,
		Status:    models.UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateRequest creates a pending help request owned by the given requester.
func (f *Fixtures) CreateRequest(ctx context.Context, requester models.User, title string) models.Request {
	f.t.Helper()
	return f.CreateRequestWithStatus(ctx, requester, title, models.StatusPending)
}

// CreateRequestWithStatus creates a help request in the given status.
func (f *Fixtures) CreateRequestWithStatus(ctx context.Context, requester models.User, title string, status models.RequestStatus) models.Request {
	f.t.Helper()

	now := time.Now().UTC()
	req := models.Request{
		ID:                   primitive.NewObjectID(),
		Title:                title,
		TitleCI:              text.Fold(title),
		Description:          "Test description for " + title,
		CategoryID:           "other",
		Urgency:              "medium",
		Location:             "Test City",
		VolunteersNeeded:     1,
		ContactMethod:        "email",
		RequesterID:          requester.ID,
		RequesterName:        requester.Name,
		RequesterEmail:       requester.Email,
		Status:               status,
		InterestedVolunteers: []models.InterestedVolunteer{},
		RejectedVolunteers:   []models.RejectedVolunteer{},
		AssignedVolunteers:   []models.AssignedVolunteer{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	_, err := f.db.Collection("requests").InsertOne(ctx, req)
	if err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}

	return req
}

// CreateCategory creates an active category with the given key and name.
func (f *Fixtures) CreateCategory(ctx context.Context, key, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:          primitive.NewObjectID(),
		Key:         key,
		Name:        name,
		DisplayName: models.CategoryName{EN: name, ZH: name},
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("categories").InsertOne(ctx, cat)
	if err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}

	return cat
}
