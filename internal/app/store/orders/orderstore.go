// internal/app/store/orders/orderstore.go
package orderstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/multiversecave/storefront/internal/app/system/normalize"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateOrderNumber is returned when an order with the same
// order number already exists. The conflict is surfaced to the
// client, never retried with a fresh number.
var ErrDuplicateOrderNumber = errors.New("order number already exists")

// Item is one purchased line as sent in the checkout payload. Lines
// are snapshots; they are never reconciled against the catalog.
type Item struct {
	Title    string `json:"title"`
	Seller   string `json:"seller"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// View is an order joined with its lines for API responses.
type View struct {
	models.Order `bson:",inline"`
	Items        []models.OrderLine `json:"items"`
}

// Store provides access to the orders and order_lines collections.
type Store struct {
	orders *mongo.Collection
	lines  *mongo.Collection
}

// New creates a new order store.
func New(db *mongo.Database) *Store {
	return &Store{
		orders: db.Collection("orders"),
		lines:  db.Collection("order_lines"),
	}
}

// Create inserts an order and one line per payload item. Callers that
// need the insert and other writes (cart clearing) to commit together
// run this inside txn.WithFallback.
func (s *Store) Create(ctx context.Context, order *models.Order, items []Item) error {
	order.Email = normalize.Email(order.Email)
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	_, err := s.orders.InsertOne(ctx, order)
	if wafflemongo.IsDup(err) {
		return ErrDuplicateOrderNumber
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, models.OrderLine{
			ID:       primitive.NewObjectID(),
			OrderID:  order.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Title:    item.Title,
			Seller:   item.Seller,
		})
	}
	_, err = s.lines.InsertMany(ctx, docs)
	return err
}

// LastForUser returns the user's most recent order with its lines.
// Recency is insertion order (_id descending). Returns
// mongo.ErrNoDocuments when the user has never ordered.
func (s *Store) LastForUser(ctx context.Context, userID primitive.ObjectID) (*View, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&order)
	if err != nil {
		return nil, err
	}

	items, err := s.linesFor(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &View{Order: order, Items: items}, nil
}

// GetByNumber returns the order with the given order number, or
// mongo.ErrNoDocuments.
func (s *Store) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) linesFor(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderLine, error) {
	cur, err := s.lines.Find(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.OrderLine{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
