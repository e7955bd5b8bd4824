// internal/testutil/http.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    string
	Email string
	Role  string
}

// AdminUser returns a TestUser with the admin role.
func AdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Email: "admin@test.com",
		Role:  models.RoleAdmin,
	}
}

// ShopperUser returns a TestUser with the regular shopper role.
func ShopperUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Email: "shopper@test.com",
		Role:  models.RoleUser,
	}
}

// UserFor returns a TestUser matching a stored account, so handler
// tests can act as a user created through Fixtures.
func UserFor(u models.User) TestUser {
	return TestUser{ID: u.ID.Hex(), Email: u.Email, Role: u.Role}
}

// WithUser adds a user to the request context for testing
// authenticated handlers, bypassing the bearer-token middleware.
func WithUser(r *http.Request, user TestUser) *http.Request {
	tu := &auth.TokenUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
	return auth.WithTestUser(r, tu)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request carrying a JSON body.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
