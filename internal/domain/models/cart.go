// internal/domain/models/cart.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is a user's shopping cart. Each user has at most one active
// cart at a time; the invariant is enforced by a partial unique index
// on (user_id, active) rather than application-level checks.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Active bool               `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// CartLine is one line of a cart. The whole line set is deleted and
// reinserted on every cart save (replace-all sync); there are no
// per-line updates. Price is the snapshot submitted by the client at
// add time, which may differ from the product's current price.
type CartLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CartID    primitive.ObjectID `bson:"cart_id" json:"-"`
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     string             `bson:"price" json:"price"`
}
