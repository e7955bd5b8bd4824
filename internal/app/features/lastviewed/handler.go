// internal/app/features/lastviewed/handler.go
package lastviewed

import (
	"context"
	"net/http"

	viewhistorystore "github.com/multiversecave/storefront/internal/app/store/viewhistory"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/authz"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.uber.org/zap"
)

// Handler holds dependencies for the view-history endpoints.
type Handler struct {
	History *viewhistorystore.Store
	Tokens  *auth.TokenManager
	Log     *zap.Logger
}

// NewHandler constructs a lastviewed Handler.
func NewHandler(history *viewhistorystore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{History: history, Tokens: tokens, Log: logger}
}

type submittedView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Seller      string `json:"seller"`
	Image       string `json:"image"`
}

// Record handles PUT /api/lastviewed. The storefront client syncs its
// whole history at once, keyed by category. Items without a title are
// skipped. The endpoint is public; a valid bearer token is optional
// and makes the new entries remember who looked. Responds with the
// grouped view so the client can reconcile in one round trip.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var history map[string][]submittedView
	if err := httpapi.Decode(r, &history); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, _, userID, signedIn := authz.UserCtx(r)

	for category, items := range history {
		for _, item := range items {
			if item.Title == "" {
				continue
			}
			entry := models.ViewHistoryEntry{
				Title:       item.Title,
				Category:    category,
				Description: item.Description,
				Price:       item.Price,
				Seller:      item.Seller,
				Image:       item.Image,
			}
			if signedIn {
				entry.UserID = &userID
			}
			if err := h.History.Record(ctx, entry); err != nil {
				h.Log.Error("record view",
					zap.String("title", item.Title),
					zap.String("category", category),
					zap.Error(err))
				httpapi.Error(w, http.StatusInternalServerError, "could not record views")
				return
			}
		}
	}

	h.respondGrouped(w, ctx)
}

// List handles GET /api/lastviewed: the history grouped by category,
// capped per category, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	h.respondGrouped(w, ctx)
}

// Clear handles DELETE /api/lastviewed.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.History.ClearAll(ctx); err != nil {
		h.Log.Error("clear view history", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not clear view history")
		return
	}
	httpapi.Message(w, http.StatusOK, "view history cleared")
}

func (h *Handler) respondGrouped(w http.ResponseWriter, ctx context.Context) {
	grouped, err := h.History.ListGrouped(ctx)
	if err != nil {
		h.Log.Error("list view history", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not load view history")
		return
	}
	httpapi.JSON(w, http.StatusOK, grouped)
}
