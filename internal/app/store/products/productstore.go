// internal/app/store/products/productstore.go
package productstore

import (
	"context"

	"github.com/multiversecave/storefront/internal/app/system/normalize"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// View is a product joined with its category name for API responses.
type View struct {
	models.Product `bson:",inline"`
	Category       string `json:"category"`
}

// Store provides access to the products collection.
type Store struct {
	c          *mongo.Collection
	categories *mongo.Collection
}

// New creates a new product store.
func New(db *mongo.Database) *Store {
	return &Store{
		c:          db.Collection("products"),
		categories: db.Collection("categories"),
	}
}

// List returns all products with their category names resolved.
// Products whose category has been removed get an empty category name.
func (s *Store) List(ctx context.Context) ([]View, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return s.joinCategories(ctx, products)
}

// GetByID returns a single product with its category name resolved.
// Returns mongo.ErrNoDocuments when the product does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*View, error) {
	var p models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	views, err := s.joinCategories(ctx, []models.Product{p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetByTitle returns the product with the given exact title. Titles
// act as a soft natural key for cart sync and view history.
// Returns mongo.ErrNoDocuments when no product matches.
func (s *Store) GetByTitle(ctx context.Context, title string) (*models.Product, error) {
	var p models.Product
	err := s.c.FindOne(ctx, bson.M{"title": normalize.Title(title)}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a new product.
func (s *Store) Create(ctx context.Context, p *models.Product) error {
	p.Title = normalize.Title(p.Title)
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, p)
	return err
}

// Update describes the fields an admin can change on a product.
// Nil pointers mean "leave unchanged".
type Update struct {
	Title           *string
	Description     *string
	FullDescription *string
	CategoryID      *primitive.ObjectID
	Price           *string
	Seller          *string
	Image           *string
}

// UpdateByID applies a partial update and returns the updated product.
// Returns mongo.ErrNoDocuments when the product does not exist.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Product, error) {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = normalize.Title(*upd.Title)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.FullDescription != nil {
		set["full_description"] = *upd.FullDescription
	}
	if upd.CategoryID != nil {
		set["category_id"] = *upd.CategoryID
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Seller != nil {
		set["seller"] = *upd.Seller
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if len(set) == 0 {
		var p models.Product
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
			return nil, err
		}
		return &p, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteByID removes a product. Returns mongo.ErrNoDocuments when the
// product does not exist.
func (s *Store) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// joinCategories resolves category names for a batch of products with
// a single category read.
func (s *Store) joinCategories(ctx context.Context, products []models.Product) ([]View, error) {
	cur, err := s.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	views := make([]View, 0, len(products))
	for _, p := range products {
		views = append(views, View{Product: p, Category: names[p.CategoryID]})
	}
	return views, nil
}
