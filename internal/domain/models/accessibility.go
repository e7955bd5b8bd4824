// internal/domain/models/accessibility.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AccessibilityConfig is the storefront-wide accessibility settings
// document (screen reader, speech rate, color filter). There is at
// most one; reads fall back to defaults when it does not exist.
type AccessibilityConfig struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ScreenReader bool               `bson:"screen_reader" json:"screenReader"`
	SpeechRate   float64            `bson:"speech_rate" json:"speechRate"`
	ColorFilter  string             `bson:"color_filter" json:"colorFilter"`
}

// DefaultAccessibility returns the settings used before anyone has
// saved a configuration.
func DefaultAccessibility() AccessibilityConfig {
	return AccessibilityConfig{ScreenReader: false, SpeechRate: 1, ColorFilter: "none"}
}
