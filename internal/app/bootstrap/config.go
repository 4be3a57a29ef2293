// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HelpBridge.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, upload_dir, etc.
//   - Environment variables: HELPBRIDGE_MONGO_URI, HELPBRIDGE_UPLOAD_DIR, etc.
//   - Command-line flags: --mongo_uri, --upload_dir, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "helpbridge", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Attachment storage
	{Name: "upload_dir", Default: "./uploads", Desc: "Local directory for uploaded request attachments"},

	// Read cache
	{Name: "cache_ttl", Default: "5m", Desc: "How long cached list reads stay valid (e.g., 5m, 30s)"},

	// Matching behavior
	{Name: "partial_fulfillment", Default: false, Desc: "Keep requests pending until all volunteer slots fill"},

	// Auth token maintenance
	{Name: "token_cleanup_interval", Default: "1h", Desc: "How often stale auth tokens are purged"},
	{Name: "token_stale_threshold", Default: "720h", Desc: "How long a token may go unused before deletion"},

	// Audit logging settings
	{Name: "audit_workflow", Default: "all", Desc: "Workflow event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Write rate limiting
	{Name: "write_rate_limit", Default: 60, Desc: "Max write requests per IP per window"},
	{Name: "write_rate_window", Default: "1m", Desc: "Write rate limit window"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the system admin user (promotes/creates on startup)"},
	{Name: "admin_name", Default: "System Admin", Desc: "Display name for a newly created system admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, HELPBRIDGE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HELPBRIDGE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		UploadDir: appValues.String("upload_dir"),

		CacheTTL: appValues.Duration("cache_ttl", 5*time.Minute),

		PartialFulfillment: appValues.Bool("partial_fulfillment"),

		TokenCleanupInterval: appValues.Duration("token_cleanup_interval", time.Hour),
		TokenStaleThreshold:  appValues.Duration("token_stale_threshold", 30*24*time.Hour),

		AuditWorkflow: appValues.String("audit_workflow"),
		AuditAdmin:    appValues.String("audit_admin"),

		WriteRateLimit:  appValues.Int("write_rate_limit"),
		WriteRateWindow: appValues.Duration("write_rate_window", time.Minute),

		AdminEmail: appValues.String("admin_email"),
		AdminName:  appValues.String("admin_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// HelpBridge validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.UploadDir == "" {
		return fmt.Errorf("upload_dir must not be empty")
	}

	for _, mode := range []string{appCfg.AuditWorkflow, appCfg.AuditAdmin} {
		switch mode {
		case "all", "db", "log", "off":
		default:
			return fmt.Errorf("audit mode must be 'all', 'db', 'log', or 'off', got %q", mode)
		}
	}

	if appCfg.WriteRateLimit <= 0 {
		return fmt.Errorf("write_rate_limit must be positive")
	}

	return nil
}
