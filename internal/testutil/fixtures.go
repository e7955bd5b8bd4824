// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a shopper account with the given email.
func (f *Fixtures) CreateUser(ctx context.Context, email string) models.User {
	return f.createUser(ctx, email, models.RoleUser)
}

// CreateAdmin creates an admin account with the given email.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	return f.createUser(ctx, email, models.RoleAdmin)
}

func (f *Fixtures) createUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:               primitive.NewObjectID(),
		Name:             "Test User",
		Email:            email,
		Role:             role,
		PasswordHash:     "$2a$10$fixturefixturefixturefixturefixturefixturefixture",
		RegistrationDate: now.Format("2006-01-02"),
		RegistrationTime: now.Format("15:04:05"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCategory creates a catalog category with the given name.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	cat := models.Category{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Emoji: "🎬",
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateProduct creates a product with the given title in the given
// category.
func (f *Fixtures) CreateProduct(ctx context.Context, title string, categoryID primitive.ObjectID) models.Product {
	f.t.Helper()

	p := models.Product{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "A test product",
		CategoryID:  categoryID,
		Price:       "$10.99",
		Seller:      "Test Seller",
		Image:       "/img/test.png",
	}
	if _, err := f.db.Collection("products").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test product: %v", err)
	}
	return p
}

// CreateOrder creates an order with the given number for the given
// user, with no lines.
func (f *Fixtures) CreateOrder(ctx context.Context, userID primitive.ObjectID, orderNumber string) models.Order {
	f.t.Helper()

	order := models.Order{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		OrderNumber: orderNumber,
		Date:        time.Now().UTC().Format("2006-01-02"),
		Total:       10.99,
		Email:       "buyer@test.com",
	}
	if _, err := f.db.Collection("orders").InsertOne(ctx, order); err != nil {
		f.t.Fatalf("failed to create test order: %v", err)
	}
	return order
}
