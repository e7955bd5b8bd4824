package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  models.RoleUser,
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())
	user := testUser()

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != user.ID.Hex() {
		t.Errorf("ID = %q, want %q", got.ID, user.ID.Hex())
	}
	if got.Email != user.Email {
		t.Errorf("Email = %q, want %q", got.Email, user.Email)
	}
	if got.Role != user.Role {
		t.Errorf("Role = %q, want %q", got.Role, user.Role)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	issuer := auth.NewTokenManager("key-one-key-one-key-one-key-one-", zap.NewNop())
	verifier := auth.NewTokenManager("key-two-key-two-key-two-key-two-", zap.NewNop())

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Error("token signed with another key should not verify")
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())
	if _, err := tm.Verify("not-a-token"); err == nil {
		t.Error("garbage should not verify")
	}
}

func TestNewTokenManager_EmptyKeyGetsRandom(t *testing.T) {
	a := auth.NewTokenManager("", zap.NewNop())
	b := auth.NewTokenManager("", zap.NewNop())

	token, err := a.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := a.Verify(token); err != nil {
		t.Errorf("issuer should verify its own token: %v", err)
	}
	if _, err := b.Verify(token); err == nil {
		t.Error("a second manager with its own random key should reject the token")
	}
}

func TestRequireSignedIn_MissingToken(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	})

	rec := httptest.NewRecorder()
	tm.RequireSignedIn(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSignedIn_InvalidToken(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with a bad token")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	tm.RequireSignedIn(next).ServeHTTP(rec, req)

	// A present-but-bad token is 403, distinct from the missing-token 401.
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireSignedIn_ValidToken(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())
	user := testUser()

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var seen *auth.TokenUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	tm.RequireSignedIn(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if seen == nil || seen.Email != user.Email {
		t.Errorf("handler saw user %+v, want email %q", seen, user.Email)
	}
}

func TestRequireSignedIn_TestUserPassthrough(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.TokenUser{
		ID:    primitive.NewObjectID().Hex(),
		Email: "injected@example.com",
		Role:  models.RoleUser,
	})
	rec := httptest.NewRecorder()
	tm.RequireSignedIn(next).ServeHTTP(rec, req)

	if !called {
		t.Error("injected test user should pass the middleware")
	}
}

func TestOptionalSignIn_AnonymousPassesThrough(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())

	var seen bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	})

	// No header and a bad token both proceed anonymously.
	for _, bearer := range []string{"", "Bearer garbage"} {
		req := httptest.NewRequest("GET", "/", nil)
		if bearer != "" {
			req.Header.Set("Authorization", bearer)
		}
		rec := httptest.NewRecorder()
		tm.OptionalSignIn(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("bearer %q: status = %d, want %d", bearer, rec.Code, http.StatusOK)
		}
		if seen {
			t.Errorf("bearer %q: handler saw a user", bearer)
		}
	}
}

func TestOptionalSignIn_ValidTokenAttaches(t *testing.T) {
	tm := auth.NewTokenManager("test-token-key-test-token-key-32", zap.NewNop())
	user := testUser()

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var seen *auth.TokenUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	tm.OptionalSignIn(next).ServeHTTP(rec, req)

	if seen == nil || seen.Email != user.Email {
		t.Errorf("handler saw user %+v, want email %q", seen, user.Email)
	}
}

func TestHashCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash should not equal the plaintext")
	}
	if !auth.CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password should check")
	}
	if auth.CheckPassword(hash, "wrong password") {
		t.Error("wrong password should not check")
	}
}
