// internal/app/features/adminusers/handler.go
package adminusers

import (
	tokenstore "github.com/dalemusser/helpbridge/internal/app/store/tokens"
	userstore "github.com/dalemusser/helpbridge/internal/app/store/users"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/auditlog"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for user administration.
type Handler struct {
	DB     *mongo.Database
	Store  *userstore.Store
	Tokens *tokenstore.Store
	Cache  *readcache.Cache
	Audit  *auditlog.Logger
	ErrLog *apiutil.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a user-administration handler.
func NewHandler(db *mongo.Database, cache *readcache.Cache, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  userstore.New(db),
		Tokens: tokenstore.New(db),
		Cache:  cache,
		Audit:  audit,
		ErrLog: apiutil.NewErrorLogger(logger),
		Log:    logger,
	}
}
