// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tokenstore "github.com/dalemusser/helpbridge/internal/app/store/tokens"
	userstore "github.com/dalemusser/helpbridge/internal/app/store/users"
	"github.com/dalemusser/helpbridge/internal/app/system/workers"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// tokenCleanup is started in Startup and stopped in Shutdown.
var tokenCleanup *workers.TokenCleanup

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It creates the upload directory, makes sure the configured system
// admin account exists, and starts the token cleanup worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := os.MkdirAll(appCfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	if appCfg.AdminEmail != "" {
		if err := ensureSystemAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminName, logger); err != nil {
			return err
		}
	}

	tokenCleanup = workers.NewTokenCleanup(
		tokenstore.New(deps.MongoDatabase),
		logger,
		appCfg.TokenCleanupInterval,
		appCfg.TokenStaleThreshold,
	)
	tokenCleanup.Start()

	return nil
}

// ensureSystemAdmin creates the system admin account if no user with
// the given email exists, or promotes the existing user to
// system_admin. User creation is otherwise admin-only, so this is how
// the first admin gets in.
func ensureSystemAdmin(ctx context.Context, deps DBDeps, email, name string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == models.RoleSystemAdmin {
			return nil
		}
		previousRole := existing.Role
		_, err := deps.MongoDatabase.Collection("users").UpdateByID(ctx, existing.ID, bson.M{
			"$set": bson.M{
				"role":       models.RoleSystemAdmin,
				"status":     models.UserActive,
				"updated_at": time.Now().UTC(),
			},
		})
		if err != nil {
			return fmt.Errorf("promote system admin: %w", err)
		}
		logger.Info("promoted existing user to system admin",
			zap.String("email", email),
			zap.String("previous_role", previousRole))
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("look up system admin: %w", err)
	}

	_, err = users.Create(ctx, models.User{
		Name:   name,
		Email:  email,
		Role:   models.RoleSystemAdmin,
		Status: models.UserActive,
	})
	if err != nil {
		return fmt.Errorf("create system admin: %w", err)
	}
	logger.Info("created system admin", zap.String("email", email))
	return nil
}
