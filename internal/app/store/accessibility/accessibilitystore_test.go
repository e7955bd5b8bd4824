package accessibilitystore_test

import (
	"testing"

	accessibilitystore "github.com/multiversecave/storefront/internal/app/store/accessibility"
	"github.com/multiversecave/storefront/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Get_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accessibilitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cfg, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cfg.ScreenReader {
		t.Error("expected screen reader off by default")
	}
	if cfg.SpeechRate != 1 {
		t.Errorf("expected default speech rate 1, got %v", cfg.SpeechRate)
	}
	if cfg.ColorFilter != "none" {
		t.Errorf("expected default color filter none, got %q", cfg.ColorFilter)
	}
}

func TestStore_Save_PartialUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accessibilitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	on := true
	cfg, err := store.Save(ctx, accessibilitystore.Update{ScreenReader: &on})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !cfg.ScreenReader {
		t.Error("expected screen reader on")
	}
	// Unspecified fields come from the defaults on first save.
	if cfg.SpeechRate != 1 || cfg.ColorFilter != "none" {
		t.Errorf("unexpected config %+v", cfg)
	}

	// A later partial save leaves the earlier setting alone.
	filter := "protanopia"
	cfg, err = store.Save(ctx, accessibilitystore.Update{ColorFilter: &filter})
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if !cfg.ScreenReader {
		t.Error("partial save clobbered screen reader")
	}
	if cfg.ColorFilter != "protanopia" {
		t.Errorf("expected updated color filter, got %q", cfg.ColorFilter)
	}
}

func TestStore_Save_Singleton(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accessibilitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rate := 1.5
	if _, err := store.Save(ctx, accessibilitystore.Update{SpeechRate: &rate}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	rate = 2.0
	if _, err := store.Save(ctx, accessibilitystore.Update{SpeechRate: &rate}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	count, err := db.Collection("accessibility_config").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single config document, got %d", count)
	}
}
