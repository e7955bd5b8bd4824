// internal/app/features/cart/handler.go
package cart

import (
	"context"
	"net/http"

	cartstore "github.com/multiversecave/storefront/internal/app/store/carts"
	userstore "github.com/multiversecave/storefront/internal/app/store/users"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/authz"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the cart endpoints.
type Handler struct {
	Carts  *cartstore.Store
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a cart Handler.
func NewHandler(carts *cartstore.Store, users *userstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Carts: carts, Users: users, Tokens: tokens, Log: logger}
}

// Get handles GET /api/cart. A caller whose account has disappeared
// gets an empty cart, the same as a caller who never added anything.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.JSON(w, http.StatusOK, []cartstore.LineView{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := h.Carts.ListLines(ctx, userID)
	if err != nil {
		h.Log.Error("get cart", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not load cart")
		return
	}
	httpapi.JSON(w, http.StatusOK, views)
}

// Save handles PUT /api/cart: the submitted items become the entire
// cart (replace-all sync).
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r)

	var items []cartstore.SubmittedItem
	if err := httpapi.Decode(r, &items); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// Saving needs a real account to hang the cart on.
	user, err := h.Users.GetByEmail(ctx, claims.Email)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("save cart: get user", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not save cart")
		return
	}

	views, err := h.Carts.Replace(ctx, user.ID, items)
	if err != nil {
		h.Log.Error("save cart", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not save cart")
		return
	}
	httpapi.JSON(w, http.StatusOK, views)
}

// Clear handles DELETE /api/cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.JSON(w, http.StatusOK, []cartstore.LineView{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Carts.Clear(ctx, userID); err != nil {
		h.Log.Error("clear cart", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not clear cart")
		return
	}
	httpapi.JSON(w, http.StatusOK, []cartstore.LineView{})
}
