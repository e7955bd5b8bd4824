// internal/app/features/lastviewed/routes.go
package lastviewed

import "github.com/go-chi/chi/v5"

// Routes returns the view-history endpoints, mounted under
// /api/lastviewed. All three are public; the sync endpoint picks up a
// bearer token when the client sends one so views carry attribution.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.With(h.Tokens.OptionalSignIn).Put("/", h.Record)
	r.Delete("/", h.Clear)
	return r
}
