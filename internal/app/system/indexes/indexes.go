// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates the indexes the application depends on. CreateMany is
// idempotent: identical existing indexes are left alone.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{
			// Uniqueness is enforced on the folded form so case variants of
			// an email cannot register twice.
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email_ci"),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return err
	}
	zap.L().Info("indexes ensured", zap.String("collection", "users"))

	projects := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("by_owner"),
		},
		{
			Keys:    bson.D{{Key: "cause", Value: 1}},
			Options: options.Index().SetName("by_cause"),
		},
		{
			// Backs the owner-or-collaborator list query.
			Keys:    bson.D{{Key: "sharing.shared_with", Value: 1}},
			Options: options.Index().SetName("by_collaborator"),
		},
		{
			Keys:    bson.D{{Key: "start_date", Value: 1}},
			Options: options.Index().SetName("by_start_date"),
		},
	}
	if _, err := db.Collection("projects").Indexes().CreateMany(ctx, projects); err != nil {
		return err
	}
	zap.L().Info("indexes ensured", zap.String("collection", "projects"))

	return nil
}
