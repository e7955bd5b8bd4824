// internal/app/features/catalog/handler.go
package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	categorystore "github.com/multiversecave/storefront/internal/app/store/categories"
	productstore "github.com/multiversecave/storefront/internal/app/store/products"
	"github.com/multiversecave/storefront/internal/app/system/htmlsanitize"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the catalog endpoints.
type Handler struct {
	Categories *categorystore.Store
	Products   *productstore.Store
	Log        *zap.Logger
}

// NewHandler constructs a catalog Handler.
func NewHandler(categories *categorystore.Store, products *productstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Categories: categories, Products: products, Log: logger}
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		h.Log.Error("list categories", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	httpapi.JSON(w, http.StatusOK, cats)
}

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	products, err := h.Products.List(ctx)
	if err != nil {
		h.Log.Error("list products", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not list products")
		return
	}
	httpapi.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	view, err := h.Products.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.Log.Error("get product", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}
	httpapi.JSON(w, http.StatusOK, view)
}

type productRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	FullDescription string `json:"fullDescription"`
	Category        string `json:"category"`
	Price           string `json:"price"`
	Seller          string `json:"seller"`
	Image           string `json:"image"`
}

// CreateProduct handles POST /api/products. The category is addressed
// by name; an unknown name is the caller's mistake, not a reason to
// invent a category.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		httpapi.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cat, err := h.Categories.GetByName(ctx, req.Category)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusBadRequest, "unknown category: "+req.Category)
		return
	}
	if err != nil {
		h.Log.Error("create product: get category", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}

	p := models.Product{
		Title:           req.Title,
		Description:     htmlsanitize.PlainText(req.Description),
		FullDescription: htmlsanitize.RichText(req.FullDescription),
		CategoryID:      cat.ID,
		Price:           req.Price,
		Seller:          req.Seller,
		Image:           req.Image,
	}
	if err := h.Products.Create(ctx, &p); err != nil {
		h.Log.Error("create product", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}
	httpapi.JSON(w, http.StatusCreated, productstore.View{Product: p, Category: cat.Name})
}

type productUpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	FullDescription *string `json:"fullDescription"`
	Category        *string `json:"category"`
	Price           *string `json:"price"`
	Seller          *string `json:"seller"`
	Image           *string `json:"image"`
}

// UpdateProduct handles PUT /api/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productUpdateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	upd := productstore.Update{
		Title:  req.Title,
		Price:  req.Price,
		Seller: req.Seller,
		Image:  req.Image,
	}
	if req.Description != nil {
		clean := htmlsanitize.PlainText(*req.Description)
		upd.Description = &clean
	}
	if req.FullDescription != nil {
		clean := htmlsanitize.RichText(*req.FullDescription)
		upd.FullDescription = &clean
	}
	if req.Category != nil {
		cat, err := h.Categories.GetByName(ctx, *req.Category)
		if err == mongo.ErrNoDocuments {
			httpapi.Error(w, http.StatusBadRequest, "unknown category: "+*req.Category)
			return
		}
		if err != nil {
			h.Log.Error("update product: get category", zap.Error(err))
			httpapi.Error(w, http.StatusInternalServerError, "could not update product")
			return
		}
		upd.CategoryID = &cat.ID
	}

	if _, err := h.Products.UpdateByID(ctx, id, upd); err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.Error(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("update product", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}

	// Re-read through the join so the response carries the category
	// name, same shape as GetProduct.
	view, err := h.Products.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("update product: reload", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}
	httpapi.JSON(w, http.StatusOK, view)
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Products.DeleteByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.Log.Error("delete product", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	httpapi.Message(w, http.StatusOK, "product deleted")
}
