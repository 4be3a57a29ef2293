// internal/app/features/requests/handler.go
package requests

import (
	categorystore "github.com/dalemusser/helpbridge/internal/app/store/categories"
	requeststore "github.com/dalemusser/helpbridge/internal/app/store/requests"
	shortliststore "github.com/dalemusser/helpbridge/internal/app/store/shortlists"
	userstore "github.com/dalemusser/helpbridge/internal/app/store/users"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/auditlog"
	"github.com/dalemusser/helpbridge/internal/app/system/match"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for help requests.
type Handler struct {
	DB         *mongo.Database
	Store      *requeststore.Store
	Users      *userstore.Store
	Categories *categorystore.Store
	Shortlists *shortliststore.Store
	Cache      *readcache.Cache
	Audit      *auditlog.Logger
	ErrLog     *apiutil.ErrorLogger
	Log        *zap.Logger
	Policy     match.Policy
	UploadDir  string
}

// NewHandler constructs a requests handler bound to its stores.
func NewHandler(db *mongo.Database, cache *readcache.Cache, audit *auditlog.Logger, logger *zap.Logger, policy match.Policy, uploadDir string) *Handler {
	return &Handler{
		DB:         db,
		Store:      requeststore.New(db),
		Users:      userstore.New(db),
		Categories: categorystore.New(db),
		Shortlists: shortliststore.New(db),
		Cache:      cache,
		Audit:      audit,
		ErrLog:     apiutil.NewErrorLogger(logger),
		Log:        logger,
		Policy:     policy,
		UploadDir:  uploadDir,
	}
}

// invalidate clears every cached request list; shortlist snapshots
// embed requests, so they go too.
func (h *Handler) invalidate() {
	h.Cache.Invalidate(readcache.KeyRequests, readcache.KeyShortlists)
}
