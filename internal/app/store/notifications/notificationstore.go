// internal/app/store/notifications/notificationstore.go
package notificationstore

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

// PurchaseInput is the payload for a new purchase notification.
type PurchaseInput struct {
	OrderNumber   string  `json:"orderNumber"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Total         float64 `json:"total"`
	Date          string  `json:"date"`
}

// View is a notification enriched with its order's line items for the
// admin feed. Items is empty when the notification carries no order
// reference.
type View struct {
	models.Notification `bson:",inline"`
	Items               []models.OrderLine `json:"items"`
}

// Store provides access to the notifications collection, reading the
// order collections to enrich the feed.
type Store struct {
	c          *mongo.Collection
	orders     *mongo.Collection
	orderLines *mongo.Collection
}

// New creates a new notification store.
func New(db *mongo.Database) *Store {
	return &Store{
		c:          db.Collection("notifications"),
		orders:     db.Collection("orders"),
		orderLines: db.Collection("order_lines"),
	}
}

// CreatePurchase records a purchase notification addressed to the
// admin role. The order is looked up by number on a best-effort
// basis; when it cannot be found the notification is stored without a
// reference rather than rejected.
func (s *Store) CreatePurchase(ctx context.Context, in PurchaseInput) (*models.Notification, error) {
	n := models.Notification{
		ID:            primitive.NewObjectID(),
		Audience:      models.AudienceAdmins,
		Type:          models.NotificationPurchase,
		OrderNumber:   in.OrderNumber,
		CustomerName:  in.CustomerName,
		CustomerEmail: normalize.Email(in.CustomerEmail),
		Total:         in.Total,
		Date:          in.Date,
		Read:          false,
		Timestamp:     time.Now().UTC().UnixMilli(),
	}

	if in.OrderNumber != "" {
		var order models.Order
		err := s.orders.FindOne(ctx, bson.M{"order_number": in.OrderNumber}).Decode(&order)
		if err == nil {
			n.OrderID = &order.ID
		} else if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListForAdmins returns the admin feed newest-first, each entry
// enriched with its order's line items.
func (s *Store) ListForAdmins(ctx context.Context) ([]View, error) {
	filter := bson.M{"audience": models.AudienceAdmins}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notes []models.Notification
	if err := cur.All(ctx, &notes); err != nil {
		return nil, err
	}

	views := make([]View, 0, len(notes))
	for _, n := range notes {
		view := View{Notification: n, Items: []models.OrderLine{}}
		if n.OrderID != nil {
			lineCur, err := s.orderLines.Find(ctx, bson.M{"order_id": *n.OrderID})
			if err != nil {
				return nil, err
			}
			if err := lineCur.All(ctx, &view.Items); err != nil {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// MarkRead marks one notification as read. Returns
// mongo.ErrNoDocuments for an unknown id.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllRead marks the whole admin feed as read. A feed with nothing
// unread is a no-op, not an error.
func (s *Store) MarkAllRead(ctx context.Context) error {
	filter := bson.M{"audience": models.AudienceAdmins, "read": false}
	_, err := s.c.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	return err
}

// Delete removes one notification. Returns mongo.ErrNoDocuments for
// an unknown id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteAll empties the admin feed. An empty feed is a no-op.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"audience": models.AudienceAdmins})
	return err
}
