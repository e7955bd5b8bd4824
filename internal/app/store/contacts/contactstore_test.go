package contactstore_test

import (
	"testing"

	contactstore "github.com/multiversecave/storefront/internal/app/store/contacts"
	"github.com/multiversecave/storefront/internal/domain/models"
	"github.com/multiversecave/storefront/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := models.Contact{Name: " Ana ", Email: "Ana@Example.com", Message: "hola"}
	if err := store.Create(ctx, &first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.Name != "Ana" || first.Email != "ana@example.com" {
		t.Errorf("expected normalized fields, got %+v", first)
	}

	second := models.Contact{Name: "Luis", Email: "luis@example.com", Message: "pregunta"}
	if err := store.Create(ctx, &second); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	contacts, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].Name != "Luis" {
		t.Errorf("expected newest first, got %q", contacts[0].Name)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := models.Contact{Name: "Ana", Email: "ana@example.com", Message: "hola"}
	if err := store.Create(ctx, &c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}
