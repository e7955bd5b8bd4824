// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"

	"github.com/multiversecave/storefront/internal/app/system/normalize"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the contacts collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new contact store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contacts")}
}

// Create stores a contact-form submission.
func (s *Store) Create(ctx context.Context, contact *models.Contact) error {
	contact.Name = normalize.Name(contact.Name)
	contact.Email = normalize.Email(contact.Email)
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, contact)
	return err
}

// List returns every submission, newest first.
func (s *Store) List(ctx context.Context) ([]models.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var contacts []models.Contact
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Delete removes one submission. Returns mongo.ErrNoDocuments for an
// unknown id.
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
