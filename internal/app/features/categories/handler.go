// internal/app/features/categories/handler.go
package categories

import (
	categorystore "github.com/dalemusser/helpbridge/internal/app/store/categories"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/auditlog"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for service categories.
type Handler struct {
	DB     *mongo.Database
	Store  *categorystore.Store
	Cache  *readcache.Cache
	Audit  *auditlog.Logger
	ErrLog *apiutil.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a categories handler.
func NewHandler(db *mongo.Database, cache *readcache.Cache, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  categorystore.New(db),
		Cache:  cache,
		Audit:  audit,
		ErrLog: apiutil.NewErrorLogger(logger),
		Log:    logger,
	}
}
