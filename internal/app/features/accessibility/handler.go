// internal/app/features/accessibility/handler.go
package accessibility

import (
	"context"
	"net/http"

	accessibilitystore "github.com/multiversecave/storefront/internal/app/store/accessibility"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies for the accessibility endpoints.
type Handler struct {
	Config *accessibilitystore.Store
	Log    *zap.Logger
}

// NewHandler constructs an accessibility Handler.
func NewHandler(config *accessibilitystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Config: config, Log: logger}
}

// Get handles GET /api/accessibility.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Config.Get(ctx)
	if err != nil {
		h.Log.Error("get accessibility config", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	httpapi.JSON(w, http.StatusOK, cfg)
}

type updateRequest struct {
	ScreenReader *bool    `json:"screenReader"`
	SpeechRate   *float64 `json:"speechRate"`
	ColorFilter  *string  `json:"colorFilter"`
}

// Save handles PUT /api/accessibility. Omitted fields keep their
// saved values.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Config.Save(ctx, accessibilitystore.Update{
		ScreenReader: req.ScreenReader,
		SpeechRate:   req.SpeechRate,
		ColorFilter:  req.ColorFilter,
	})
	if err != nil {
		h.Log.Error("save accessibility config", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not save settings")
		return
	}
	httpapi.JSON(w, http.StatusOK, cfg)
}
