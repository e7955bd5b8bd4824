package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/multiversecave/storefront/internal/app/features/catalog"
	categorystore "github.com/multiversecave/storefront/internal/app/store/categories"
	productstore "github.com/multiversecave/storefront/internal/app/store/products"
	"github.com/multiversecave/storefront/internal/app/system/auth"
	"github.com/multiversecave/storefront/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*catalog.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return catalog.NewHandler(categorystore.New(db), productstore.New(db), logger), db
}

func TestListCategories_Seeded(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := categorystore.New(db).Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	req := testutil.NewRequest("GET", "/api/categories")
	rec := testutil.NewRecorder()

	handler.ListCategories(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "peliculas")
}

func TestListProducts_JoinsCategoryName(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	cat := fx.CreateCategory(ctx, "comics")
	fx.CreateProduct(ctx, "Issue #1", cat.ID)

	req := testutil.NewRequest("GET", "/api/products")
	rec := testutil.NewRecorder()

	handler.ListProducts(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var views []productstore.View
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("listing has %d products, want 1", len(views))
	}
	if views[0].Category != "comics" {
		t.Errorf("category = %q, want %q", views[0].Category, "comics")
	}
}

func TestGetProduct_InvalidID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/api/products/not-a-hex-id")
	req = testutil.WithChiURLParam(req, "id", "not-a-hex-id")
	rec := testutil.NewRecorder()

	handler.GetProduct(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestGetProduct_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewRequest("GET", "/api/products/"+id)
	req = testutil.WithChiURLParam(req, "id", id)
	rec := testutil.NewRecorder()

	handler.GetProduct(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestCreateProduct(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateCategory(ctx, "funkos")

	body := `{
		"title": "Funko Birdperson",
		"description": "Tall <script>alert(1)</script>bird",
		"category": "funkos",
		"price": "$14.99",
		"seller": "La Cueva"
	}`
	req := testutil.NewJSONRequest("POST", "/api/products", body)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()

	handler.CreateProduct(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Funko Birdperson")

	p, err := productstore.New(db).GetByTitle(ctx, "Funko Birdperson")
	if err != nil {
		t.Fatalf("GetByTitle after create: %v", err)
	}
	if p.Description != "Tall bird" {
		t.Errorf("description = %q, want script tag stripped", p.Description)
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"title":"Orphan Product","category":"no-such-category","price":"$1.00"}`
	req := testutil.NewJSONRequest("POST", "/api/products", body)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()

	handler.CreateProduct(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "unknown category: no-such-category")
}

func TestUpdateProduct_Partial(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	cat := fx.CreateCategory(ctx, "posters")
	p := fx.CreateProduct(ctx, "Old Poster", cat.ID)

	req := testutil.NewJSONRequest("PUT", "/api/products/"+p.ID.Hex(), `{"price":"$4.99"}`)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()

	handler.UpdateProduct(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	// The response is the joined view, same shape as a single GET.
	var view productstore.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if view.Category != "posters" {
		t.Errorf("response category = %q, want %q", view.Category, "posters")
	}
	if view.Price != "$4.99" {
		t.Errorf("response price = %q, want %q", view.Price, "$4.99")
	}

	updated, err := productstore.New(db).GetByTitle(ctx, "Old Poster")
	if err != nil {
		t.Fatalf("GetByTitle after update: %v", err)
	}
	if updated.Price != "$4.99" {
		t.Errorf("price = %q, want %q", updated.Price, "$4.99")
	}
	if updated.Seller != "Test Seller" {
		t.Errorf("seller = %q, should be untouched", updated.Seller)
	}
}

func TestDeleteProduct(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	cat := fx.CreateCategory(ctx, "comics")
	p := fx.CreateProduct(ctx, "Doomed Comic", cat.ID)

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/products/"+p.ID.Hex(), testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()

	handler.DeleteProduct(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	if _, err := productstore.New(db).GetByTitle(ctx, "Doomed Comic"); err != mongo.ErrNoDocuments {
		t.Errorf("GetByTitle after delete: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestProductRoutes_WritesRejectShoppers(t *testing.T) {
	handler, _ := newTestHandler(t)
	logger := zap.NewNop()
	tokens := auth.NewTokenManager("test-token-key-test-token-key-32", logger)
	router := catalog.ProductRoutes(handler, tokens)

	req := testutil.NewJSONRequest("POST", "/", `{"title":"Nope"}`)
	req = testutil.WithUser(req, testutil.ShopperUser())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("shopper creating product: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestProductRoutes_ReadsArePublic(t *testing.T) {
	handler, _ := newTestHandler(t)
	logger := zap.NewNop()
	tokens := auth.NewTokenManager("test-token-key-test-token-key-32", logger)
	router := catalog.ProductRoutes(handler, tokens)

	req := testutil.NewRequest("GET", "/")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("public listing: status = %d, want %d", rec.Code, http.StatusOK)
	}
}
