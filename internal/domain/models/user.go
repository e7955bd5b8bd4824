// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Authorization decisions should go through the
// authz package rather than comparing these strings directly.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a storefront account: shoppers and admins.
//
// PasswordHash is empty for accounts created through Google sign-in;
// those accounts carry a GoogleID instead and cannot log in with a
// password. The role is exposed on the wire as "type" for
// compatibility with the storefront client.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // lowercase, unique
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"type"` // user | admin
	GoogleID     string             `bson:"google_id,omitempty" json:"-"`

	// Client-supplied registration stamps, kept as the client sent them.
	RegistrationDate string `bson:"registration_date,omitempty" json:"registrationDate,omitempty"`
	RegistrationTime string `bson:"registration_time,omitempty" json:"registrationTime,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// IsExternal reports whether the account authenticates through an
// external identity provider instead of a stored password.
func (u *User) IsExternal() bool {
	return u.PasswordHash == "" && u.GoogleID != ""
}
