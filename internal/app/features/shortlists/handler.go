// internal/app/features/shortlists/handler.go
package shortlists

import (
	requeststore "github.com/dalemusser/helpbridge/internal/app/store/requests"
	shortliststore "github.com/dalemusser/helpbridge/internal/app/store/shortlists"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for volunteer shortlists.
type Handler struct {
	DB       *mongo.Database
	Store    *shortliststore.Store
	Requests *requeststore.Store
	Cache    *readcache.Cache
	ErrLog   *apiutil.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a shortlists handler.
func NewHandler(db *mongo.Database, cache *readcache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Store:    shortliststore.New(db),
		Requests: requeststore.New(db),
		Cache:    cache,
		ErrLog:   apiutil.NewErrorLogger(logger),
		Log:      logger,
	}
}
