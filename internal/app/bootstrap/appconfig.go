// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings such as ports, TLS, logging level, and CORS;
// AppConfig is everything specific to this service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer token configuration
	JWTSecret string        // Secret for signing access tokens (must be strong in production)
	JWTTTL    time.Duration // Access token lifetime

	// Password hashing cost for new accounts
	BcryptCost int

	// Login throttling budgets
	LoginIPLimit     int           // Attempts per client IP per window
	LoginIPWindow    time.Duration // Window for the per-IP budget
	LoginEmailLimit  int           // Attempts per email per window
	LoginEmailWindow time.Duration // Window for the per-email budget

	// AMQP event publishing; blank disables the publisher
	AMQPURL string

	// In-app notification housekeeping
	NotificationRetention       time.Duration // Read notifications older than this are purged
	NotificationCleanupInterval time.Duration // How often the cleanup worker runs
}
