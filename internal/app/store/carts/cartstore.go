// internal/app/store/carts/cartstore.go
package cartstore

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

// SubmittedItem is one cart line as sent by the client. Products are
// referenced by exact title; the price is the client's snapshot and
// is stored as-is rather than re-read from the catalog.
type SubmittedItem struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// LineView is a cart line joined with its product for API responses.
type LineView struct {
	ID          primitive.ObjectID `json:"_id"`
	ProductID   primitive.ObjectID `json:"productId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       string             `json:"price"`
	Image       string             `json:"image"`
	Seller      string             `json:"seller"`
	Quantity    int                `json:"quantity"`
}

// Store provides access to the carts and cart_lines collections.
type Store struct {
	carts    *mongo.Collection
	lines    *mongo.Collection
	products *mongo.Collection
}

// New creates a new cart store.
func New(db *mongo.Database) *Store {
	return &Store{
		carts:    db.Collection("carts"),
		lines:    db.Collection("cart_lines"),
		products: db.Collection("products"),
	}
}

// active returns the user's active cart, or mongo.ErrNoDocuments.
func (s *Store) active(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.carts.FindOne(ctx, bson.M{"user_id": userID, "active": true}).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ensureActive finds or creates the user's single active cart. The
// partial unique index on (user_id, active:true) makes the upsert
// race-safe: concurrent callers converge on one document.
func (s *Store) ensureActive(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID, "active": true}
	update := bson.M{
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    userID,
			"active":     true,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	if err := s.carts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListLines returns the user's active cart as line views. A user
// without an active cart gets an empty slice, not an error.
func (s *Store) ListLines(ctx context.Context, userID primitive.ObjectID) ([]LineView, error) {
	cart, err := s.active(ctx, userID)
	if err == mongo.ErrNoDocuments {
		return []LineView{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.viewsFor(ctx, cart.ID)
}

// Replace implements the replace-all cart sync: the submitted items
// become the entire cart. Every line is deleted and one line is
// inserted per item whose title resolves to a catalog product; items
// with unknown titles are silently dropped. Returns the post-replace
// views. Concurrent saves are last-writer-wins.
func (s *Store) Replace(ctx context.Context, userID primitive.ObjectID, items []SubmittedItem) ([]LineView, error) {
	cart, err := s.ensureActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.lines.DeleteMany(ctx, bson.M{"cart_id": cart.ID}); err != nil {
		return nil, err
	}

	var docs []interface{}
	for _, item := range items {
		var p models.Product
		err := s.products.FindOne(ctx, bson.M{"title": normalize.Title(item.Title)}).Decode(&p)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.CartLine{
			ID:        primitive.NewObjectID(),
			CartID:    cart.ID,
			ProductID: p.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	if len(docs) > 0 {
		if _, err := s.lines.InsertMany(ctx, docs); err != nil {
			return nil, err
		}
	}
	return s.viewsFor(ctx, cart.ID)
}

// Clear removes every line from the user's active cart. The cart
// document itself is kept. A user without an active cart is a no-op.
func (s *Store) Clear(ctx context.Context, userID primitive.ObjectID) error {
	cart, err := s.active(ctx, userID)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.lines.DeleteMany(ctx, bson.M{"cart_id": cart.ID})
	return err
}

// viewsFor loads a cart's lines joined with their products. Lines
// whose product has since been deleted are skipped.
func (s *Store) viewsFor(ctx context.Context, cartID primitive.ObjectID) ([]LineView, error) {
	cur, err := s.lines.Find(ctx, bson.M{"cart_id": cartID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var lines []models.CartLine
	if err := cur.All(ctx, &lines); err != nil {
		return nil, err
	}

	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		var p models.Product
		err := s.products.FindOne(ctx, bson.M{"_id": line.ProductID}).Decode(&p)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return nil, err
		}
		views = append(views, LineView{
			ID:          line.ID,
			ProductID:   p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       line.Price,
			Image:       p.Image,
			Seller:      p.Seller,
			Quantity:    line.Quantity,
		})
	}
	return views, nil
}
