// internal/app/features/reports/handler.go
package reports

import (
	requeststore "github.com/dalemusser/helpbridge/internal/app/store/requests"
	userstore "github.com/dalemusser/helpbridge/internal/app/store/users"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for platform reports.
type Handler struct {
	DB       *mongo.Database
	Requests *requeststore.Store
	Users    *userstore.Store
	ErrLog   *apiutil.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a reports handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Requests: requeststore.New(db),
		Users:    userstore.New(db),
		ErrLog:   apiutil.NewErrorLogger(logger),
		Log:      logger,
	}
}
