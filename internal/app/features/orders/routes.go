// internal/app/features/orders/routes.go
package orders

import "github.com/go-chi/chi/v5"

// Routes returns the checkout endpoints, mounted under /api/orders.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(h.Tokens.RequireSignedIn)

	r.Post("/", h.Checkout)
	r.Get("/last", h.Last)
	return r
}
