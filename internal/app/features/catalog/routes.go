// internal/app/features/catalog/routes.go
package catalog

import (
	"github.com/go-chi/chi/v5"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/authz"
)

// ProductRoutes returns the product endpoints, mounted under
// /api/products. Reads are public; writes need the catalog
// capability. The category listing (/api/categories) is registered by
// the bootstrap router.
func ProductRoutes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListProducts)
	r.Get("/{id}", h.GetProduct)

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireSignedIn)
		r.Use(authz.Require(authz.CanManageCatalog))

		r.Post("/", h.CreateProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	return r
}
