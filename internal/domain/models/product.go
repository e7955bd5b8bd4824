// internal/domain/models/product.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalog item. Price is a formatted currency string
// (e.g. "$10.99") supplied by admins and copied verbatim into cart
// and order lines as a snapshot; it is never parsed or re-derived.
//
// Several flows (cart sync, view history) reference products by exact
// title instead of id, so titles act as a soft natural key.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	FullDescription string             `bson:"full_description,omitempty" json:"fullDescription,omitempty"`
	CategoryID      primitive.ObjectID `bson:"category_id" json:"-"`
	Price           string             `bson:"price" json:"price"`
	Seller          string             `bson:"seller" json:"seller"`
	Image           string             `bson:"image" json:"image"`
}
