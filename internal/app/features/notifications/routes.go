// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"
	"github.com/multiversecave/storefront/internal/app/system/authz"
)

// Routes returns the purchase-feed endpoints, mounted under
// /api/notifications. Creation is public; everything that reads or
// mutates the feed needs the purchase-feed capability.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(h.Tokens.RequireSignedIn)
		r.Use(authz.Require(authz.CanSeePurchaseFeed))

		r.Get("/", h.List)
		r.Put("/markAllRead", h.MarkAllRead)
		r.Put("/{id}", h.MarkRead)
		r.Delete("/{id}", h.Delete)
		r.Delete("/", h.DeleteAll)
	})

	return r
}
