// internal/app/features/contacts/routes.go
package contacts

import (
	"github.com/go-chi/chi/v5"
	"github.com/multiversecave/storefront/internal/app/system/authz"
)

// Routes returns the contact-form endpoints, mounted under
// /api/contacts. Submitting and reading are public; deletion needs
// the contacts capability.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(h.Tokens.RequireSignedIn)
		r.Use(authz.Require(authz.CanManageContacts))
		r.Delete("/{id}", h.Delete)
	})

	return r
}
