// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB
// connections and schema setup are complete, but before the HTTP
// handler is built. The storefront has no caches to warm; the hook
// only announces the environment.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("storefront starting",
		zap.String("env", coreCfg.Env),
		zap.Bool("google_oauth", appCfg.GoogleClientID != ""),
		zap.Bool("outbound_mail", appCfg.SendGridAPIKey != ""))
	return nil
}
