// internal/app/features/cart/routes.go
package cart

import "github.com/go-chi/chi/v5"

// Routes returns the cart endpoints, mounted under /api/cart. All of
// them need a signed-in caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(h.Tokens.RequireSignedIn)

	r.Get("/", h.Get)
	r.Put("/", h.Save)
	r.Delete("/", h.Clear)
	return r
}
