// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Token manager                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// TokenTTL is how long an issued identity token stays valid. There is
// no refresh or revocation; clients log in again when it expires.
const TokenTTL = 24 * time.Hour

// TokenUser is the identity a verified bearer token carries. It is
// what handlers see via CurrentUser; role changes take effect on the
// next token, not mid-lifetime.
type TokenUser struct {
	ID    string
	Email string
	Role  string
}

// tokenClaims is the wire layout of the signed token. The user id
// rides in the registered Subject claim; "email" and "type" match the
// claim names the storefront client already expects.
type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 identity tokens.
type TokenManager struct {
	key []byte
	log *zap.Logger
}

// NewTokenManager builds a TokenManager from the configured signing
// key. An empty key gets a random one so local development works out
// of the box, at the cost of invalidating tokens on restart.
func NewTokenManager(key string, logger *zap.Logger) *TokenManager {
	if key == "" {
		logger.Warn("token key not configured; generating a random key (tokens will not survive restarts)")
		return &TokenManager{key: securecookie.GenerateRandomKey(32), log: logger}
	}
	if len(key) < 32 {
		logger.Warn("token key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}
	return &TokenManager{key: []byte(key), log: logger}
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(u *models.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// Verify parses and validates a token string and returns the identity
// it carries.
func (m *TokenManager) Verify(tokenStr string) (*TokenUser, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return &TokenUser{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the token user & “found?” flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing
// token verification. Only for tests.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn verifies the Authorization: Bearer token and loads
// the identity into the request context. A missing token is 401; a
// token that fails verification (bad signature, expired) is 403,
// matching what the storefront client distinguishes on.
func (m *TokenManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Tests inject the user directly.
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, ok := bearerToken(r)
		if !ok {
			httpapi.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := m.Verify(tokenStr)
		if err != nil {
			m.log.Debug("token rejected", zap.Error(err))
			httpapi.Error(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, withUser(r, user))
	})
}

// OptionalSignIn loads the identity into the request context when a
// valid Authorization: Bearer token is present, and lets the request
// through anonymously otherwise. For public endpoints that attribute
// activity to signed-in callers.
func (m *TokenManager) OptionalSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.Verify(tokenStr)
		if err != nil {
			m.log.Debug("token rejected", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, user))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Password helpers                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
