// internal/app/store/accessibility/accessibilitystore.go
package accessibilitystore

import (
	"context"

	"github.com/multiversecave/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the accessibility_config collection, which
// holds at most one document.
type Store struct {
	c *mongo.Collection
}

// New creates a new accessibility store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accessibility_config")}
}

// Get returns the saved configuration, or the defaults when nothing
// has been saved yet.
func (s *Store) Get(ctx context.Context) (models.AccessibilityConfig, error) {
	var cfg models.AccessibilityConfig
	err := s.c.FindOne(ctx, bson.M{}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return models.DefaultAccessibility(), nil
	}
	if err != nil {
		return models.AccessibilityConfig{}, err
	}
	return cfg, nil
}

// Update describes the fields a save can change. Nil pointers mean
// "leave unchanged", so partial saves do not clobber other settings.
type Update struct {
	ScreenReader *bool
	SpeechRate   *float64
	ColorFilter  *string
}

// Save applies a partial update, creating the document from the
// defaults on first save, and returns the resulting configuration.
func (s *Store) Save(ctx context.Context, upd Update) (models.AccessibilityConfig, error) {
	defaults := models.DefaultAccessibility()
	set := bson.M{}
	if upd.ScreenReader != nil {
		set["screen_reader"] = *upd.ScreenReader
	}
	if upd.SpeechRate != nil {
		set["speech_rate"] = *upd.SpeechRate
	}
	if upd.ColorFilter != nil {
		set["color_filter"] = *upd.ColorFilter
	}

	setOnInsert := bson.M{"_id": primitive.NewObjectID()}
	if upd.ScreenReader == nil {
		setOnInsert["screen_reader"] = defaults.ScreenReader
	}
	if upd.SpeechRate == nil {
		setOnInsert["speech_rate"] = defaults.SpeechRate
	}
	if upd.ColorFilter == nil {
		setOnInsert["color_filter"] = defaults.ColorFilter
	}

	update := bson.M{"$setOnInsert": setOnInsert}
	if len(set) > 0 {
		update["$set"] = set
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cfg models.AccessibilityConfig
	if err := s.c.FindOneAndUpdate(ctx, bson.M{}, update, opts).Decode(&cfg); err != nil {
		return models.AccessibilityConfig{}, err
	}
	return cfg, nil
}
