package cartstore_test

import (
	"testing"

	cartstore "github.com/multiversecave/storefront/internal/app/store/carts"
	"github.com/multiversecave/storefront/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_ListLines_NoCart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cartstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "empty@example.com")

	views, err := store.ListLines(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListLines failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(views))
	}
}

func TestStore_Replace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cartstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "shopper@example.com")
	cat := fixtures.CreateCategory(ctx, "peliculas")
	fixtures.CreateProduct(ctx, "Dune", cat.ID)
	fixtures.CreateProduct(ctx, "Arrival", cat.ID)

	views, err := store.Replace(ctx, user.ID, []cartstore.SubmittedItem{
		{Title: "Dune", Price: "$12.50", Quantity: 2},
		{Title: "Arrival", Price: "$8.00", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(views))
	}

	byTitle := map[string]cartstore.LineView{}
	for _, v := range views {
		byTitle[v.Title] = v
	}
	dune := byTitle["Dune"]
	if dune.Quantity != 2 {
		t.Errorf("Dune quantity: got %d, want 2", dune.Quantity)
	}
	// The submitted price snapshot wins over the catalog price.
	if dune.Price != "$12.50" {
		t.Errorf("Dune price: got %q, want submitted snapshot", dune.Price)
	}
}

func TestStore_Replace_IsWholeCartSync(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cartstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "sync@example.com")
	cat := fixtures.CreateCategory(ctx, "series")
	fixtures.CreateProduct(ctx, "Dark", cat.ID)
	fixtures.CreateProduct(ctx, "Severance", cat.ID)

	both := []cartstore.SubmittedItem{
		{Title: "Dark", Price: "$5", Quantity: 1},
		{Title: "Severance", Price: "$6", Quantity: 1},
	}
	if _, err := store.Replace(ctx, user.ID, both); err != nil {
		t.Fatalf("first Replace failed: %v", err)
	}

	// A save with a subset removes everything not in the payload.
	views, err := store.Replace(ctx, user.ID, both[:1])
	if err != nil {
		t.Fatalf("subset Replace failed: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Dark" {
		t.Errorf("expected only Dark to remain, got %+v", views)
	}

	// An empty payload empties the cart.
	views, err = store.Replace(ctx, user.ID, nil)
	if err != nil {
		t.Fatalf("empty Replace failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(views))
	}
}

func TestStore_Replace_DropsUnknownTitles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cartstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "drop@example.com")
	cat := fixtures.CreateCategory(ctx, "anime")
	fixtures.CreateProduct(ctx, "Akira", cat.ID)

	views, err := store.Replace(ctx, user.ID, []cartstore.SubmittedItem{
		{Title: "Akira", Price: "$9", Quantity: 1},
		{Title: "No Such Product", Price: "$1", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Akira" {
		t.Errorf("expected the unknown title to be dropped, got %+v", views)
	}
}

func TestStore_Replace_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cartstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "idem@example.com")
	cat := fixtures.CreateCategory(ctx, "videojuegos")
	fixtures.CreateProduct(ctx, "Hades", cat.ID)

	items := []cartstore.SubmittedItem{{Title: "Hades", Price: "$20", Quantity: 1}}
	first, err := store.Replace(ctx, user.ID, items)
	if err != nil {
		t.Fatalf("first Replace failed: %v", err)
	}
	second, err := store.Replace(ctx, user.ID, items)
	if err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one line after each save, got %d and %d", len(first), len(second))
	}
	if second[0].Quantity != 1 || second[0].Price != "$20" {
		t.Errorf("repeat save changed the line: %+v", second[0])
	}

	// Still one active cart document.
	count, err := db.Collection("carts").CountDocuments(ctx, bson.M{"user_id": user.ID, "active": true})
	if err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single active cart, got %d", count)
	}
}

func TestStore_Clear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cartstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "clear@example.com")
	cat := fixtures.CreateCategory(ctx, "peliculas")
	fixtures.CreateProduct(ctx, "Alien", cat.ID)

	if _, err := store.Replace(ctx, user.ID, []cartstore.SubmittedItem{{Title: "Alien", Price: "$7", Quantity: 1}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := store.Clear(ctx, user.ID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	views, err := store.ListLines(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListLines failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected empty cart after clear, got %d lines", len(views))
	}

	// The cart document survives a clear.
	count, err := db.Collection("carts").CountDocuments(ctx, bson.M{"user_id": user.ID, "active": true})
	if err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if count != 1 {
		t.Errorf("expected the cart document to remain, got %d", count)
	}
}

func TestStore_Clear_NoCart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cartstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "nocart@example.com")
	if err := store.Clear(ctx, user.ID); err != nil {
		t.Errorf("Clear without a cart should be a no-op, got %v", err)
	}
}
