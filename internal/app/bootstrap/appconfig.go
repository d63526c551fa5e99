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
// AppConfig is where everything specific to VolunteerHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token configuration
	TokenSecret string        // HMAC signing secret for bearer tokens (must be strong in production)
	TokenTTL    time.Duration // Token lifetime (e.g., 24h)

	// Account security
	BcryptCost      int           // bcrypt work factor for password hashing
	LoginRateLimit  int           // Login attempts allowed per client per window
	LoginRateWindow time.Duration // Window for the login rate limit
}
