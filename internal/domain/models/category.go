// internal/domain/models/category.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is one of the fixed catalog sections. The set is seeded at
// startup and the name is unique.
type Category struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Emoji string             `bson:"emoji,omitempty" json:"emoji"`
}

// DefaultCategories is the catalog section set the storefront ships
// with. Seeding is idempotent; existing categories are left alone.
var DefaultCategories = []Category{
	{Name: "peliculas", Emoji: "🎬"},
	{Name: "series", Emoji: "📺"},
	{Name: "anime", Emoji: "🍥"},
	{Name: "videojuegos", Emoji: "🎮"},
}
