// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/multiversecave/storefront/internal/app/system/authz"
)

// Routes returns the account endpoints, mounted under /api/users.
// The token-introspection endpoint (/api/verify-token) lives outside
// this prefix and is registered by the bootstrap router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.Tokens.RequireSignedIn)

		r.Get("/profile", h.Profile)
		r.Put("/profile", h.UpdateProfile)

		r.Group(func(r chi.Router) {
			r.Use(authz.Require(authz.CanManageUsers))
			r.Get("/", h.AdminList)
			r.Put("/{email}", h.AdminUpdate)
			r.Delete("/{email}", h.AdminDelete)
		})
	})

	return r
}
