package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/multiversecave/storefront/internal/app/system/normalize"
	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "user"|"admin"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every account, registration order.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user after normalizing & validating fields.
// Self-registration always produces the "user" role; admin accounts
// are promoted through UpdateByEmail.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	switch u.Role {
	case models.RoleUser, models.RoleAdmin:
		// ok
	default:
		return models.User{}, errBadRole
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// FindOrCreateGoogle finds the account for an external Google
// identity, creating it on first login. Matching is by email so an
// existing password account is reused (and gains the GoogleID marker)
// rather than duplicated.
func (s *Store) FindOrCreateGoogle(ctx context.Context, googleID, email, name string) (*models.User, error) {
	email = normalize.Email(email)

	u, err := s.GetByEmail(ctx, email)
	if err == nil {
		if u.GoogleID == "" {
			_, err = s.c.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": bson.M{
				"google_id":  googleID,
				"updated_at": time.Now(),
			}})
			if err != nil {
				return nil, err
			}
			u.GoogleID = googleID
		}
		return u, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	created, err := s.Create(ctx, models.User{
		Name:     name,
		Email:    email,
		GoogleID: googleID,
		Role:     models.RoleUser,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ProfileUpdate holds the fields a user can change on their own
// account. Nil fields are left untouched; PasswordHash must already
// be hashed.
type ProfileUpdate struct {
	Name         *string
	Phone        *string
	PasswordHash *string
}

// UpdateProfile applies a self-service profile edit and returns the
// updated user. Returns mongo.ErrNoDocuments for an unknown id.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminUpdate holds the fields an admin can change on any account.
// Pointer fields distinguish "not submitted" from "set to empty".
type AdminUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	PasswordHash *string // nil = keep current password
	Role         *string
}

// UpdateByEmail applies an admin edit to the account currently holding
// oldEmail. A rename to an email held by another account returns
// ErrDuplicateEmail; an unknown oldEmail returns mongo.ErrNoDocuments.
func (s *Store) UpdateByEmail(ctx context.Context, oldEmail string, upd AdminUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}
	if upd.Role != nil {
		role := normalize.Role(*upd.Role)
		if role != models.RoleUser && role != models.RoleAdmin {
			return nil, errBadRole
		}
		set["role"] = role
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": normalize.Email(oldEmail)},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// DeleteByEmail removes the account with the given email. Returns
// mongo.ErrNoDocuments when no account holds it.
func (s *Store) DeleteByEmail(ctx context.Context, email string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EmailExists checks whether any account holds the given email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}
