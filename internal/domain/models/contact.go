// internal/domain/models/contact.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Message string             `bson:"message" json:"message"`
	Date    string             `bson:"date,omitempty" json:"date,omitempty"`
	Time    string             `bson:"time,omitempty" json:"time,omitempty"`
}
