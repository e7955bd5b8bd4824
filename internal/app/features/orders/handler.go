// internal/app/features/orders/handler.go
package orders

import (
	"context"
	"net/http"

	cartstore "github.com/multiversecave/storefront/internal/app/store/carts"
	orderstore "github.com/multiversecave/storefront/internal/app/store/orders"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/authz"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/mailer"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"github.com/multiversecave/storefront/internal/app/system/txn"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the checkout endpoints.
type Handler struct {
	Client *mongo.Client
	Orders *orderstore.Store
	Carts  *cartstore.Store
	Mail   *mailer.Mailer
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs an orders Handler.
func NewHandler(client *mongo.Client, orders *orderstore.Store, carts *cartstore.Store, mail *mailer.Mailer, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Orders: orders,
		Carts:  carts,
		Mail:   mail,
		Tokens: tokens,
		Log:    logger,
	}
}

type checkoutRequest struct {
	OrderNumber string            `json:"orderNumber"`
	Date        string            `json:"date"`
	Total       float64           `json:"total"`
	Email       string            `json:"email"`
	Customer    models.Customer   `json:"customer"`
	Items       []orderstore.Item `json:"items"`
}

// Checkout handles POST /api/orders. The order insert and the cart
// clear commit together; a half-done checkout must not leave the
// items sitting in the cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req checkoutRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderNumber == "" {
		httpapi.Error(w, http.StatusBadRequest, "orderNumber is required")
		return
	}

	order := models.Order{
		UserID:      userID,
		OrderNumber: req.OrderNumber,
		Date:        req.Date,
		Total:       req.Total,
		Email:       req.Email,
		Customer:    req.Customer,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := txn.WithFallback(ctx, h.Client, h.Log, func(ctx context.Context) error {
		if err := h.Orders.Create(ctx, &order, req.Items); err != nil {
			return err
		}
		return h.Carts.Clear(ctx, userID)
	})
	if err == orderstore.ErrDuplicateOrderNumber {
		httpapi.Error(w, http.StatusConflict, "order number already exists: "+req.OrderNumber)
		return
	}
	if err != nil {
		h.Log.Error("checkout", zap.String("order_number", req.OrderNumber), zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not create order")
		return
	}

	// Confirmation mail is best-effort; the order stands either way.
	if err := h.Mail.SendOrderConfirmation(order.Email, order.Customer.Name, order.OrderNumber, order.Total); err != nil {
		h.Log.Warn("order confirmation mail failed",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}

	httpapi.JSON(w, http.StatusCreated, map[string]any{
		"message": "order created",
		"order":   order,
	})
}

// Last handles GET /api/orders/last.
func (h *Handler) Last(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	view, err := h.Orders.LastForUser(ctx, userID)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "no orders yet")
		return
	}
	if err != nil {
		h.Log.Error("last order", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not load order")
		return
	}
	httpapi.JSON(w, http.StatusOK, view)
}
