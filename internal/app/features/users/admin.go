package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/multiversecave/storefront/internal/app/store/users"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AdminList handles GET /api/users.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("admin list users", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not list users")
		return
	}
	httpapi.JSON(w, http.StatusOK, users)
}

type adminUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Role     *string `json:"type"`
}

// AdminUpdate handles PUT /api/users/{email}. Accounts are addressed
// by email, so a rename has to keep the unique-email invariant; the
// store surfaces a collision as a duplicate error.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req adminUpdateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := userstore.AdminUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.Log.Error("admin update: hash password", zap.Error(err))
			httpapi.Error(w, http.StatusInternalServerError, "could not update user")
			return
		}
		upd.PasswordHash = &hash
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.UpdateByEmail(ctx, email, upd)
	switch {
	case err == mongo.ErrNoDocuments:
		httpapi.Error(w, http.StatusNotFound, "user not found: "+email)
		return
	case err == userstore.ErrDuplicateEmail:
		httpapi.Error(w, http.StatusBadRequest, "email already registered")
		return
	case err != nil:
		h.Log.Error("admin update user", zap.String("email", email), zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not update user")
		return
	}

	httpapi.JSON(w, http.StatusOK, map[string]any{
		"message": "user updated",
		"user":    user,
	})
}

// AdminDelete handles DELETE /api/users/{email}.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Users.DeleteByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "user not found: "+email)
		return
	}
	if err != nil {
		h.Log.Error("admin delete user", zap.String("email", email), zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not delete user")
		return
	}
	httpapi.Message(w, http.StatusOK, "user deleted")
}
