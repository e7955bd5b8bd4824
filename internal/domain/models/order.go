// internal/domain/models/order.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Customer is the checkout address snapshot embedded on an order.
type Customer struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	Zip     string `bson:"zip,omitempty" json:"zip,omitempty"`
}

// Order is an immutable purchase record. OrderNumber is supplied by
// the client and globally unique; a collision is surfaced as a
// conflict, never retried.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"-"`
	OrderNumber string             `bson:"order_number" json:"orderNumber"`
	Date        string             `bson:"date,omitempty" json:"date"`
	Total       float64            `bson:"total" json:"total"`
	Email       string             `bson:"email" json:"email"`
	Customer    Customer           `bson:"customer" json:"customer"`
}

// OrderLine is one purchased item. The product reference may be nil:
// lines are created from the checkout payload's snapshots (title,
// seller, price) and are never reconciled against the catalog.
type OrderLine struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	OrderID   primitive.ObjectID  `bson:"order_id" json:"-"`
	ProductID *primitive.ObjectID `bson:"product_id,omitempty" json:"productId,omitempty"`
	Quantity  int                 `bson:"quantity" json:"quantity"`
	Price     string              `bson:"price" json:"price"`
	Title     string              `bson:"title,omitempty" json:"title"`
	Seller    string              `bson:"seller,omitempty" json:"seller"`
}
