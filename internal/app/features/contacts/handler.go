// internal/app/features/contacts/handler.go
package contacts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	contactstore "github.com/multiversecave/storefront/internal/app/store/contacts"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/htmlsanitize"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the contact-form endpoints.
type Handler struct {
	Contacts *contactstore.Store
	Tokens   *auth.TokenManager
	Log      *zap.Logger
}

// NewHandler constructs a contacts Handler.
func NewHandler(contacts *contactstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Contacts: contacts, Tokens: tokens, Log: logger}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// Create handles POST /api/contacts. The form is public, so the free
// text is stripped of markup before it is stored.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Message == "" {
		httpapi.Error(w, http.StatusBadRequest, "email and message are required")
		return
	}

	contact := models.Contact{
		Name:    htmlsanitize.PlainText(req.Name),
		Email:   req.Email,
		Message: htmlsanitize.PlainText(req.Message),
		Date:    req.Date,
		Time:    req.Time,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Contacts.Create(ctx, &contact); err != nil {
		h.Log.Error("create contact", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not save message")
		return
	}
	httpapi.JSON(w, http.StatusCreated, contact)
}

// List handles GET /api/contacts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	contacts, err := h.Contacts.List(ctx)
	if err != nil {
		h.Log.Error("list contacts", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not list messages")
		return
	}
	httpapi.JSON(w, http.StatusOK, contacts)
}

// Delete handles DELETE /api/contacts/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Contacts.Delete(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "message not found")
		return
	}
	if err != nil {
		h.Log.Error("delete contact", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not delete message")
		return
	}
	httpapi.Message(w, http.StatusOK, "message deleted")
}
