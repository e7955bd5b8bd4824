// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	accessibilityfeature "github.com/multiversecave/storefront/internal/app/features/accessibility"
	authgooglefeature "github.com/multiversecave/storefront/internal/app/features/authgoogle"
	cartfeature "github.com/multiversecave/storefront/internal/app/features/cart"
	catalogfeature "github.com/multiversecave/storefront/internal/app/features/catalog"
	contactsfeature "github.com/multiversecave/storefront/internal/app/features/contacts"
	healthfeature "github.com/multiversecave/storefront/internal/app/features/health"
	lastviewedfeature "github.com/multiversecave/storefront/internal/app/features/lastviewed"
	notificationsfeature "github.com/multiversecave/storefront/internal/app/features/notifications"
	ordersfeature "github.com/multiversecave/storefront/internal/app/features/orders"
	usersfeature "github.com/multiversecave/storefront/internal/app/features/users"
	accessibilitystore "github.com/multiversecave/storefront/internal/app/store/accessibility"
	cartstore "github.com/multiversecave/storefront/internal/app/store/carts"
	categorystore "github.com/multiversecave/storefront/internal/app/store/categories"
	contactstore "github.com/multiversecave/storefront/internal/app/store/contacts"
	notificationstore "github.com/multiversecave/storefront/internal/app/store/notifications"
	"github.com/multiversecave/storefront/internal/app/store/oauthstate"
	orderstore "github.com/multiversecave/storefront/internal/app/store/orders"
	productstore "github.com/multiversecave/storefront/internal/app/store/products"
	userstore "github.com/multiversecave/storefront/internal/app/store/users"
	viewhistorystore "github.com/multiversecave/storefront/internal/app/store/viewhistory"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/mailer"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the storefront.
//
// WAFFLE calls this after configuration, DB connections, schema setup
// and Startup have completed. It builds the stores, the token
// manager, and the feature routers, and mounts everything on one chi
// router. The static frontend is served from appCfg.StaticDir with
// the JSON API underneath /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	categories := categorystore.New(db)
	products := productstore.New(db)
	carts := cartstore.New(db)
	orders := orderstore.New(db)
	notifications := notificationstore.New(db)
	history := viewhistorystore.New(db)
	contacts := contactstore.New(db)
	accessibility := accessibilitystore.New(db)
	states := oauthstate.New(db)

	tokens := auth.NewTokenManager(appCfg.TokenKey, logger)
	mail := mailer.New(appCfg.SendGridAPIKey, appCfg.MailFrom, appCfg.MailFromName, logger)

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/api/health", healthfeature.Routes(healthHandler))

	// Google OAuth round trip lives outside /api: the browser is
	// redirected here directly.
	googleHandler := authgooglefeature.NewHandler(
		users, states, tokens,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// JSON API
	usersHandler := usersfeature.NewHandler(users, tokens, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))
	r.With(tokens.RequireSignedIn).Get("/api/verify-token", usersHandler.VerifyToken)

	catalogHandler := catalogfeature.NewHandler(categories, products, logger)
	r.Get("/api/categories", catalogHandler.ListCategories)
	r.Mount("/api/products", catalogfeature.ProductRoutes(catalogHandler, tokens))

	cartHandler := cartfeature.NewHandler(carts, users, tokens, logger)
	r.Mount("/api/cart", cartfeature.Routes(cartHandler))

	ordersHandler := ordersfeature.NewHandler(deps.MongoClient, orders, carts, mail, tokens, logger)
	r.Mount("/api/orders", ordersfeature.Routes(ordersHandler))

	notificationsHandler := notificationsfeature.NewHandler(notifications, tokens, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notificationsHandler))

	lastviewedHandler := lastviewedfeature.NewHandler(history, tokens, logger)
	r.Mount("/api/lastviewed", lastviewedfeature.Routes(lastviewedHandler))

	contactsHandler := contactsfeature.NewHandler(contacts, tokens, logger)
	r.Mount("/api/contacts", contactsfeature.Routes(contactsHandler))

	accessibilityHandler := accessibilityfeature.NewHandler(accessibility, logger)
	r.Mount("/api/accessibility", accessibilityfeature.Routes(accessibilityHandler))

	// Static frontend; everything not matched above falls through here.
	r.Handle("/*", fileserver.Handler("/", appCfg.StaticDir))

	return r, nil
}
