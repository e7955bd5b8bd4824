// internal/app/system/authz/authz.go

// Package authz answers "may this request do X". Handlers ask for a
// capability, never for a literal role string, so adding a role only
// touches this package.
package authz

import (
	"net/http"
	"strings"

	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/app/system/httpapi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), email, Mongo ObjectID,
// and a found flag. If no user is present in context or the user ID is
// malformed, it returns "visitor", "", NilObjectID, false, so callers
// can trust that ok=true means a valid, authenticated user.
func UserCtx(r *http.Request) (role string, email string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in a signed token - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Email, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// Capability is a permission check over the current request.
type Capability func(*http.Request) bool

// The storefront's capabilities. Today they all resolve to the admin
// role; they exist so finer-grained roles can be introduced without
// touching every guarded handler.
var (
	CanManageCatalog   Capability = IsAdmin // create/update/delete products
	CanManageUsers     Capability = IsAdmin // list/edit/delete accounts
	CanSeePurchaseFeed Capability = IsAdmin // read and mutate the notification feed
	CanManageContacts  Capability = IsAdmin // delete contact-form messages
)

// Require gates a route on a capability. The request must already have
// passed RequireSignedIn; a signed-in user without the capability gets
// a 403.
func Require(capability Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !capability(r) {
				httpapi.Error(w, http.StatusForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
