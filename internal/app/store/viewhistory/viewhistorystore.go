// internal/app/store/viewhistory/viewhistorystore.go
package viewhistorystore

import (
	"context"
	"time"

	"github.com/multiversecave/storefront/internal/app/system/normalize"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxPerCategory caps how many entries a category shows in the
// grouped view. Older entries stay stored; the cap is read-time only.
const MaxPerCategory = 5

// FallbackCategory buckets entries recorded without a category.
const FallbackCategory = "otros"

// Store provides access to the view_history collection, reading the
// products collection to resolve a viewed title to a product.
type Store struct {
	c        *mongo.Collection
	products *mongo.Collection
}

// New creates a new view-history store.
func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("view_history"),
		products: db.Collection("products"),
	}
}

// Record notes that a product was looked at. An entry already present
// for the same (title, category) only gets its viewed_at bumped; the
// stored snapshot fields are not refreshed. The product reference is
// resolved by title on insert; a title that matches no product is
// stored without one.
func (s *Store) Record(ctx context.Context, entry models.ViewHistoryEntry) error {
	entry.Title = normalize.Title(entry.Title)

	if entry.ProductID == nil {
		var product models.Product
		err := s.products.FindOne(ctx, bson.M{"title": entry.Title}).Decode(&product)
		if err == nil {
			entry.ProductID = &product.ID
		} else if err != mongo.ErrNoDocuments {
			return err
		}
	}

	filter := bson.M{"title": entry.Title, "category": entry.Category}
	update := bson.M{
		"$set": bson.M{"viewed_at": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"_id":         primitive.NewObjectID(),
			"user_id":     entry.UserID,
			"product_id":  entry.ProductID,
			"category":    entry.Category,
			"title":       entry.Title,
			"description": entry.Description,
			"price":       entry.Price,
			"seller":      entry.Seller,
			"image":       entry.Image,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// ListGrouped returns the history bucketed by category, each bucket
// holding at most MaxPerCategory entries, newest first.
func (s *Store) ListGrouped(ctx context.Context) (map[string][]models.ViewHistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "viewed_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.ViewHistoryEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return Group(entries), nil
}

// ClearAll deletes the entire history. An empty history is a no-op.
func (s *Store) ClearAll(ctx context.Context) error {
	_, err := s.c.DeleteMany(ctx, bson.M{})
	return err
}

// Group buckets entries by category, keeping at most MaxPerCategory
// distinct titles per bucket. Entries must arrive newest-first;
// within a bucket that order is preserved. Entries with an empty
// category land in FallbackCategory, so a repeated title is possible
// there and only its newest entry is kept.
func Group(entries []models.ViewHistoryEntry) map[string][]models.ViewHistoryEntry {
	grouped := make(map[string][]models.ViewHistoryEntry)
	for _, e := range entries {
		cat := e.Category
		if cat == "" {
			cat = FallbackCategory
		}
		if len(grouped[cat]) >= MaxPerCategory {
			continue
		}
		seen := false
		for _, g := range grouped[cat] {
			if g.Title == e.Title {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		grouped[cat] = append(grouped[cat], e)
	}
	return grouped
}
