// internal/app/store/categories/categorystore.go
package categorystore

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

// ErrDuplicateName is returned when a category with the same name already exists.
var ErrDuplicateName = errors.New("category name already exists")

// Store provides access to the categories collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new category store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// Seed inserts the default catalog categories if they are not present yet.
// Safe to call on every startup.
func (s *Store) Seed(ctx context.Context) error {
	for _, cat := range models.DefaultCategories {
		filter := bson.M{"name": cat.Name}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":   primitive.NewObjectID(),
				"name":  cat.Name,
				"emoji": cat.Emoji,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := s.c.UpdateOne(ctx, filter, update, opts); err != nil {
			return err
		}
	}
	return nil
}

// List returns all categories sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// GetByName returns the category with the given name.
// Returns mongo.ErrNoDocuments when no such category exists.
func (s *Store) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	err := s.c.FindOne(ctx, bson.M{"name": normalize.Title(name)}).Decode(&cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Create adds a new category.
func (s *Store) Create(ctx context.Context, cat *models.Category) error {
	cat.Name = normalize.Title(cat.Name)
	if cat.ID.IsZero() {
		cat.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, cat)
	if wafflemongo.IsDup(err) {
		return ErrDuplicateName
	}
	return err
}
