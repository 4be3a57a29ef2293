// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminusersfeature "github.com/dalemusser/helpbridge/internal/app/features/adminusers"
	categoriesfeature "github.com/dalemusser/helpbridge/internal/app/features/categories"
	healthfeature "github.com/dalemusser/helpbridge/internal/app/features/health"
	reportsfeature "github.com/dalemusser/helpbridge/internal/app/features/reports"
	requestsfeature "github.com/dalemusser/helpbridge/internal/app/features/requests"
	shortlistsfeature "github.com/dalemusser/helpbridge/internal/app/features/shortlists"
	auditstore "github.com/dalemusser/helpbridge/internal/app/store/audit"
	tokenstore "github.com/dalemusser/helpbridge/internal/app/store/tokens"
	userstore "github.com/dalemusser/helpbridge/internal/app/store/users"
	"github.com/dalemusser/helpbridge/internal/app/system/auditlog"
	"github.com/dalemusser/helpbridge/internal/app/system/auth"
	"github.com/dalemusser/helpbridge/internal/app/system/match"
	"github.com/dalemusser/helpbridge/internal/app/system/ratelimit"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// HelpBridge sets up bearer token auth, the read cache, audit logging,
// and write rate limiting, then mounts the feature routers: requests,
// categories, shortlists, admin users, and reports.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Bearer token auth: tokens resolve to user IDs, and the fetcher
	// loads fresh user data on each request so role changes and
	// suspended accounts take effect immediately.
	tm := auth.NewTokenManager(tokenstore.New(db), logger)
	tm.SetUserFetcher(userstore.NewFetcher(db))

	cache := readcache.New(readcache.Policy{TTL: appCfg.CacheTTL})

	auditLog := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Workflow: appCfg.AuditWorkflow,
		Admin:    appCfg.AuditAdmin,
	})

	wl := ratelimit.NewWriteLimiterWithConfig(appCfg.WriteRateLimit, appCfg.WriteRateWindow)

	policy := match.Policy{PartialFulfillment: appCfg.PartialFulfillment}

	r := chi.NewRouter()

	// Global auth middleware: loads the token user into context if a
	// valid bearer token is present.
	r.Use(tm.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded request attachments
	r.Handle("/uploads/*", fileserver.Handler("/uploads", appCfg.UploadDir))

	// Help requests and their workflow
	requestsHandler := requestsfeature.NewHandler(db, cache, auditLog, logger, policy, appCfg.UploadDir)
	r.Mount("/requests", requestsfeature.Routes(requestsHandler, tm, wl))

	// Categories (public list plus admin management)
	categoriesHandler := categoriesfeature.NewHandler(db, cache, auditLog, logger)
	r.Mount("/categories", categoriesfeature.Routes(categoriesHandler, tm, wl))

	// Volunteer shortlists
	shortlistsHandler := shortlistsfeature.NewHandler(db, cache, logger)
	r.Mount("/shortlists", shortlistsfeature.Routes(shortlistsHandler, tm, wl))

	// User administration
	adminUsersHandler := adminusersfeature.NewHandler(db, cache, auditLog, logger)
	r.Mount("/admin/users", adminusersfeature.Routes(adminUsersHandler, tm, wl))

	// Reports
	reportsHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, tm))

	return r, nil
}
