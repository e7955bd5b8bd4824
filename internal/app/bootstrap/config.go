// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the storefront.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_key, etc.
//   - Environment variables: MULTIVERSO_MONGO_URI, MULTIVERSO_TOKEN_KEY, etc.
//   - Command-line flags: --mongo_uri, --token_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "multiverso", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "token_key", Default: "", Desc: "Bearer-token signing key (random per-process key when empty; set in production)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Outbound email
	{Name: "sendgrid_api_key", Default: "", Desc: "SendGrid API key (empty disables outbound mail)"},
	{Name: "mail_from", Default: "noreply@multiversecave.shop", Desc: "From email address"},
	{Name: "mail_from_name", Default: "La Cueva del Multiverso", Desc: "From display name"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},
	{Name: "static_dir", Default: "public", Desc: "Directory served as the static frontend"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, MULTIVERSO_* for
// app), and command-line flags, merging with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MULTIVERSO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenKey: appValues.String("token_key"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		SendGridAPIKey: appValues.String("sendgrid_api_key"),
		MailFrom:       appValues.String("mail_from"),
		MailFromName:   appValues.String("mail_from_name"),

		BaseURL:   appValues.String("base_url"),
		StaticDir: appValues.String("static_dir"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backend is touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.TokenKey == "" {
		return fmt.Errorf("token_key must be set in production")
	}

	// OAuth is optional, but half a configuration is a mistake.
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}

	return nil
}
