// internal/domain/models/notification.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification audiences. Notifications are addressed to a role, not
// to a resolved user id, so a deployment with several admins shows
// every admin the same feed.
const AudienceAdmins = "admin"

// Notification types.
const NotificationPurchase = "purchase"

// Notification is one entry of the purchase feed shown to admins.
// The order reference is best-effort: the storefront client posts the
// notification right after checkout and the order may not be visible
// yet, in which case OrderID stays nil and the feed simply shows no
// line items for it.
type Notification struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Audience      string              `bson:"audience" json:"audience"`
	Type          string              `bson:"type" json:"type"`
	OrderID       *primitive.ObjectID `bson:"order_id,omitempty" json:"orderId,omitempty"`
	OrderNumber   string              `bson:"order_number,omitempty" json:"orderNumber"`
	CustomerName  string              `bson:"customer_name,omitempty" json:"customerName"`
	CustomerEmail string              `bson:"customer_email,omitempty" json:"customerEmail"`
	Total         float64             `bson:"total" json:"total"`
	Date          string              `bson:"date,omitempty" json:"date"`
	Read          bool                `bson:"read" json:"read"`
	Timestamp     int64               `bson:"timestamp" json:"timestamp"` // Unix millis, server-assigned
}
