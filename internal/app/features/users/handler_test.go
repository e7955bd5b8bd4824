package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/multiversecave/storefront/internal/app/features/users"
	userstore "github.com/multiversecave/storefront/internal/app/store/users"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*users.Handler, *mongo.Database, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := userstore.New(db)
	tokens := auth.NewTokenManager("test-token-key-test-token-key-32", logger)
	return users.NewHandler(store, tokens, logger), db, store
}

func registerBody(name, email, password string) string {
	b, _ := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	return string(b)
}

func TestRegister_Success(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest("POST", "/api/users/register", registerBody("Rick Sanchez", "rick@example.com", "wubba-lubba"))
	rec := testutil.NewRecorder()

	handler.Register(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"token"`)
	rec.AssertContains(t, "rick@example.com")

	user, err := store.GetByEmail(ctx, "rick@example.com")
	if err != nil {
		t.Fatalf("GetByEmail after register: %v", err)
	}
	if user.Role != "user" {
		t.Errorf("new account role = %q, want %q", user.Role, "user")
	}
	if user.PasswordHash == "" || user.PasswordHash == "wubba-lubba" {
		t.Error("password should be stored hashed")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest("POST", "/api/users/register", `{"email":"no-name@example.com"}`)
	rec := testutil.NewRecorder()

	handler.Register(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	first := testutil.NewRecorder()
	handler.Register(first, testutil.NewJSONRequest("POST", "/api/users/register", registerBody("Morty", "morty@example.com", "aw-geez")))
	first.AssertStatus(t, http.StatusCreated)

	second := testutil.NewRecorder()
	handler.Register(second, testutil.NewJSONRequest("POST", "/api/users/register", registerBody("Other Morty", "morty@example.com", "aw-geez-2")))

	second.AssertStatus(t, http.StatusBadRequest)
	second.AssertContains(t, "email already registered")
}

func TestLogin_Success(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	reg := testutil.NewRecorder()
	handler.Register(reg, testutil.NewJSONRequest("POST", "/api/users/register", registerBody("Summer", "summer@example.com", "secret-password")))
	reg.AssertStatus(t, http.StatusCreated)

	rec := testutil.NewRecorder()
	handler.Login(rec, testutil.NewJSONRequest("POST", "/api/users/login", `{"email":"summer@example.com","password":"secret-password"}`))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"token"`)

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login response should carry a token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	reg := testutil.NewRecorder()
	handler.Register(reg, testutil.NewJSONRequest("POST", "/api/users/register", registerBody("Beth", "beth@example.com", "right-password")))
	reg.AssertStatus(t, http.StatusCreated)

	rec := testutil.NewRecorder()
	handler.Login(rec, testutil.NewJSONRequest("POST", "/api/users/login", `{"email":"beth@example.com","password":"wrong-password"}`))

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "invalid email or password")
}

func TestLogin_UnknownEmail_SameMessage(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	handler.Login(rec, testutil.NewJSONRequest("POST", "/api/users/login", `{"email":"nobody@example.com","password":"whatever"}`))

	rec.AssertStatus(t, http.StatusUnauthorized)
	// Same message as a wrong password, so the endpoint does not
	// reveal which addresses have accounts.
	rec.AssertContains(t, "invalid email or password")
}

func TestLogin_GoogleAccount(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.FindOrCreateGoogle(ctx, "google-id-123", "jerry@example.com", "Jerry"); err != nil {
		t.Fatalf("FindOrCreateGoogle: %v", err)
	}

	rec := testutil.NewRecorder()
	handler.Login(rec, testutil.NewJSONRequest("POST", "/api/users/login", `{"email":"jerry@example.com","password":"anything"}`))

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Google sign-in")
}

func TestVerifyToken(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/api/verify-token", testutil.ShopperUser())
	rec := testutil.NewRecorder()

	handler.VerifyToken(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"valid":true`)
}

func TestProfile(t *testing.T) {
	handler, db, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	user := fx.CreateUser(ctx, "profile@example.com")

	req := testutil.NewAuthenticatedRequest("GET", "/api/users/profile", testutil.UserFor(user))
	rec := testutil.NewRecorder()

	handler.Profile(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "profile@example.com")
}

func TestProfile_AccountGone(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/api/users/profile", testutil.ShopperUser())
	rec := testutil.NewRecorder()

	handler.Profile(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestUpdateProfile(t *testing.T) {
	handler, db, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	user := fx.CreateUser(ctx, "rename@example.com")

	req := testutil.NewJSONRequest("PUT", "/api/users/profile", `{"name":"  New Name ","phone":"555-0199"}`)
	req = testutil.WithUser(req, testutil.UserFor(user))
	rec := testutil.NewRecorder()

	handler.UpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	updated, err := store.GetByEmail(ctx, "rename@example.com")
	if err != nil {
		t.Fatalf("GetByEmail after update: %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("name = %q, want %q", updated.Name, "New Name")
	}
	if updated.Phone != "555-0199" {
		t.Errorf("phone = %q, want %q", updated.Phone, "555-0199")
	}
}

func TestAdminUpdate_NotFound(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest("PUT", "/api/users/ghost@example.com", `{"name":"Ghost"}`)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "email", "ghost@example.com")
	rec := testutil.NewRecorder()

	handler.AdminUpdate(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "user not found: ghost@example.com")
}

func TestAdminUpdate_ChangesRole(t *testing.T) {
	handler, db, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateUser(ctx, "promote@example.com")

	req := testutil.NewJSONRequest("PUT", "/api/users/promote@example.com", `{"type":"admin"}`)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "email", "promote@example.com")
	rec := testutil.NewRecorder()

	handler.AdminUpdate(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	updated, err := store.GetByEmail(ctx, "promote@example.com")
	if err != nil {
		t.Fatalf("GetByEmail after admin update: %v", err)
	}
	if updated.Role != "admin" {
		t.Errorf("role = %q, want %q", updated.Role, "admin")
	}
}

func TestAdminDelete(t *testing.T) {
	handler, db, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateUser(ctx, "remove@example.com")

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/users/remove@example.com", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "email", "remove@example.com")
	rec := testutil.NewRecorder()

	handler.AdminDelete(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	if _, err := store.GetByEmail(ctx, "remove@example.com"); err != mongo.ErrNoDocuments {
		t.Errorf("GetByEmail after delete: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestRoutes_AdminEndpointsRejectShoppers(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	router := users.Routes(handler)

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.ShopperUser())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("shopper listing users: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRoutes_MissingTokenIs401(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	router := users.Routes(handler)

	req := testutil.NewRequest("GET", "/profile")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
