// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports,
// TLS, logging level, CORS, body limits); AppConfig is everything
// specific to the storefront itself. Values are loaded in LoadConfig
// from config files, MULTIVERSO_* environment variables, or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token signing key. Empty means a random per-process key
	// (dev only: tokens die with the process).
	TokenKey string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Outbound email (order confirmations). Empty API key disables
	// sending.
	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	// Base URL for OAuth callbacks (e.g., "https://shop.example.com")
	BaseURL string

	// Directory served as the storefront's static frontend.
	StaticDir string
}
