// internal/app/features/accessibility/routes.go
package accessibility

import "github.com/go-chi/chi/v5"

// Routes returns the accessibility endpoints, mounted under
// /api/accessibility.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Put("/", h.Save)
	return r
}
