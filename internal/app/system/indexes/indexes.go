// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here are load-bearing: email uniqueness, order
number uniqueness, the single-active-cart-per-user invariant, and the
(title, category) view-history dedupe key are all enforced at the
persistence boundary rather than by best-effort application checks.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}
	if err := ensureProducts(ctx, db); err != nil {
		problems = append(problems, "products: "+err.Error())
	}
	if err := ensureCarts(ctx, db); err != nil {
		problems = append(problems, "carts: "+err.Error())
	}
	if err := ensureCartLines(ctx, db); err != nil {
		problems = append(problems, "cart_lines: "+err.Error())
	}
	if err := ensureOrders(ctx, db); err != nil {
		problems = append(problems, "orders: "+err.Error())
	}
	if err := ensureOrderLines(ctx, db); err != nil {
		problems = append(problems, "order_lines: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}
	if err := ensureViewHistory(ctx, db); err != nil {
		problems = append(problems, "view_history: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_role"),
		},
	})
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "categories", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_name"),
		},
	})
}

func ensureProducts(ctx context.Context, db *mongo.Database) error {
	// Cart sync and view history look products up by exact title.
	return create(ctx, db, "products", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName("idx_title"),
		},
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	})
}

func ensureCarts(ctx context.Context, db *mongo.Database) error {
	// At most one active cart per user, enforced by the server.
	return create(ctx, db, "carts", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}).
				SetName("uniq_active_cart"),
		},
	})
}

func ensureCartLines(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "cart_lines", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cart_id", Value: 1}},
			Options: options.Index().SetName("idx_cart"),
		},
	})
}

func ensureOrders(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "orders", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_order_number"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_user_recent"),
		},
	})
}

func ensureOrderLines(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "order_lines", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetName("idx_order"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "notifications", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "audience", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_feed"),
		},
	})
}

func ensureViewHistory(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "view_history", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}, {Key: "category", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_title_category"),
		},
		{
			Keys:    bson.D{{Key: "viewed_at", Value: -1}},
			Options: options.Index().SetName("idx_recent"),
		},
	})
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "oauth_states", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_state"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_ttl"),
		},
	})
}
