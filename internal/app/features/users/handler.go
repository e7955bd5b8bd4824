package users

import (
	"context"
	"net/http"

	userstore "github.com/multiversecave/storefront/internal/app/store/users"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/app/system/normalize"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for account endpoints.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(users *userstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Tokens: tokens, Log: logger}
}

type registerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Password         string `json:"password"`
	RegistrationDate string `json:"registrationDate"`
	RegistrationTime string `json:"registrationTime"`
}

type authResponse struct {
	Message string      `json:"message,omitempty"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

// Register handles POST /api/users/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		httpapi.Error(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("register: hash password", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not register user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     hash,
		Role:             models.RoleUser,
		RegistrationDate: req.RegistrationDate,
		RegistrationTime: req.RegistrationTime,
	})
	if err == userstore.ErrDuplicateEmail {
		httpapi.Error(w, http.StatusBadRequest, "email already registered")
		return
	}
	if err != nil {
		h.Log.Error("register: create user", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not register user")
		return
	}

	token, err := h.Tokens.Issue(&user)
	if err != nil {
		h.Log.Error("register: issue token", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not register user")
		return
	}

	httpapi.JSON(w, http.StatusCreated, authResponse{
		Message: "user registered",
		User:    user,
		Token:   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/users/login. Unknown email and wrong
// password get the same 401 so the response does not leak which
// addresses have accounts; password-less Google accounts get their
// own message.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		h.Log.Error("login: get user", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not log in")
		return
	}

	if user.IsExternal() || user.PasswordHash == "" {
		httpapi.Error(w, http.StatusUnauthorized, "account uses Google sign-in")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httpapi.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		h.Log.Error("login: issue token", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not log in")
		return
	}

	httpapi.JSON(w, http.StatusOK, authResponse{User: *user, Token: token})
}

// VerifyToken handles GET /api/verify-token. Reaching the handler
// means the middleware already accepted the token.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	httpapi.JSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user":  user,
	})
}

// Profile handles GET /api/users/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, claims.Email)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("profile: get user", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	httpapi.JSON(w, http.StatusOK, user)
}

type profileUpdateRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// UpdateProfile handles PUT /api/users/profile. A supplied password
// is re-hashed; the email and role cannot be changed here.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r)

	var req profileUpdateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Users.GetByEmail(ctx, claims.Email)
	if err == mongo.ErrNoDocuments {
		httpapi.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("update profile: get user", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not update profile")
		return
	}

	upd := userstore.ProfileUpdate{}
	if req.Name != nil {
		name := normalize.Name(*req.Name)
		upd.Name = &name
	}
	if req.Phone != nil {
		upd.Phone = req.Phone
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.Log.Error("update profile: hash password", zap.Error(err))
			httpapi.Error(w, http.StatusInternalServerError, "could not update profile")
			return
		}
		upd.PasswordHash = &hash
	}

	user, err := h.Users.UpdateProfile(ctx, current.ID, upd)
	if err != nil {
		h.Log.Error("update profile: save", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "could not update profile")
		return
	}
	httpapi.JSON(w, http.StatusOK, map[string]any{
		"message": "profile updated",
		"user":    user,
	})
}
