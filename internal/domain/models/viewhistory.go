// internal/domain/models/viewhistory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViewHistoryEntry records that a product was looked at. Entries are
// deduplicated by (title, category): a repeat view only bumps
// ViewedAt, the content snapshot is never refreshed from the catalog.
// Storage is unbounded; the most-recent-5-per-category cap is applied
// at read time.
//
// History is currently global, not per viewer; UserID is recorded
// when known so the scope can be narrowed later without a migration.
type ViewHistoryEntry struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID      *primitive.ObjectID `bson:"user_id,omitempty" json:"-"`
	ProductID   *primitive.ObjectID `bson:"product_id,omitempty" json:"-"`
	Category    string              `bson:"category" json:"category"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description"`
	Price       string              `bson:"price,omitempty" json:"price"`
	Seller      string              `bson:"seller,omitempty" json:"seller"`
	Image       string              `bson:"image,omitempty" json:"image"`
	ViewedAt    time.Time           `bson:"viewed_at" json:"-"`
}
