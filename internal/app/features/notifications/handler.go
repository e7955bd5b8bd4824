// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	notificationstore "github.com/multiversecave/storefront/internal/app/store/notifications"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the purchase-feed endpoints.
type Handler struct {
	Notifications *notificationstore.Store
	Tokens        *auth.TokenManager
	Log           *zap.Logger
}

// NewHandler constructs a notifications Handler.
func NewHandler(notifications *notificationstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Notifications: notifications, Tokens: tokens, Log: logger}
}

// Create handles POST /api/notifications. The storefront client posts
// this right after checkout without credentials, so the endpoint
// stays public and tolerates an order it cannot find yet.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in notificationstore.PurchaseInput
	if err := httpapi.Decode(r, &in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Notifications.CreatePurchase(ctx, in)
	if err != nil {
		h.Log.Error("create notification", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not create notification")
		return
	}
	httpapi.JSON(w, http.StatusCreated, n)
}

// List handles GET /api/notifications.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := h.Notifications.ListForAdmins(ctx)
	if err != nil {
		h.Log.Error("list notifications", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not list notifications")
		return
	}
	httpapi.JSON(w, http.StatusOK, views)
}

// MarkRead handles PUT /api/notifications/{id}.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Notifications.MarkRead(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		h.Log.Error("mark notification read", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not update notification")
		return
	}
	httpapi.Message(w, http.StatusOK, "notification marked as read")
}

// MarkAllRead handles PUT /api/notifications/markAllRead.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Notifications.MarkAllRead(ctx); err != nil {
		h.Log.Error("mark all notifications read", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not update notifications")
		return
	}
	httpapi.Message(w, http.StatusOK, "all notifications marked as read")
}

// Delete handles DELETE /api/notifications/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Notifications.Delete(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		h.Log.Error("delete notification", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not delete notification")
		return
	}
	httpapi.Message(w, http.StatusOK, "notification deleted")
}

// DeleteAll handles DELETE /api/notifications.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Notifications.DeleteAll(ctx); err != nil {
		h.Log.Error("delete all notifications", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not delete notifications")
		return
	}
	httpapi.Message(w, http.StatusOK, "all notifications deleted")
}
