// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to HelpBridge lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Request attachment storage
	UploadDir string // Local directory for uploaded attachments (e.g., "./uploads")

	// Read cache
	CacheTTL time.Duration // How long cached list reads stay valid

	// Matching behavior
	PartialFulfillment bool // Keep requests pending until all volunteer slots fill

	// Auth token maintenance
	TokenCleanupInterval time.Duration // How often the token cleanup worker runs
	TokenStaleThreshold  time.Duration // How long a token may go unused before deletion

	// Audit logging
	AuditWorkflow string // Workflow event logging: 'all' (db+log), 'db', 'log', or 'off'
	AuditAdmin    string // Admin event logging: 'all' (db+log), 'db', 'log', or 'off'

	// Write rate limiting
	WriteRateLimit  int           // Max write requests per IP per window
	WriteRateWindow time.Duration // Rate limit window

	// Admin bootstrap
	AdminEmail string // Email of the system admin (promotes/creates on startup)
	AdminName  string // Display name for a newly created system admin
}
