// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/multiversecave/storefront/internal/app/store/oauthstate"
	userstore "github.com/multiversecave/storefront/internal/app/store/users"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler handles Google OAuth sign-in.
type Handler struct {
	Users  *userstore.Store
	States *oauthstate.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://shop.example.com/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	users *userstore.Store,
	states *oauthstate.Store,
	tokens *auth.TokenManager,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:        users,
		States:       states,
		Tokens:       tokens,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: stores a one-time state and
// redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		h.redirectFailed(w, r)
		return
	}

	state := uuid.NewString()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.States.Save(ctx, state, r.URL.Query().Get("return"), expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		h.redirectFailed(w, r)
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: verifies the
// state, exchanges the code, fetches the Google profile, finds or
// creates the matching account and hands the storefront client a
// bearer token via the redirect URL.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		h.redirectFailed(w, r)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		h.redirectFailed(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, valid, err := h.States.Validate(ctx, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		h.redirectFailed(w, r)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		h.redirectFailed(w, r)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		h.redirectFailed(w, r)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		h.redirectFailed(w, r)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		h.redirectFailed(w, r)
		return
	}

	user, err := h.Users.FindOrCreateGoogle(ctx, googleUser.ID, googleUser.Email, googleUser.Name)
	if err != nil {
		h.Log.Error("failed to find or create Google user", zap.Error(err))
		h.redirectFailed(w, r)
		return
	}

	bearer, err := h.Tokens.Issue(user)
	if err != nil {
		h.Log.Error("failed to issue token", zap.Error(err))
		h.redirectFailed(w, r)
		return
	}

	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email))

	http.Redirect(w, r, "/?googleAuth=success&token="+url.QueryEscape(bearer), http.StatusSeeOther)
}

func (h *Handler) redirectFailed(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?googleAuth=failed", http.StatusSeeOther)
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}
